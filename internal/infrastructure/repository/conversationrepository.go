package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/chat"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/mappers"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/shared/db"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ChatMapper
}

func NewConversationRepository(gormDB *gorm.DB) chat.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewChatMapper(),
	}
}

func (r *ConversationRepositoryImpl) Save(ctx context.Context, c *chat.Conversation) error {
	model := r.mapper.ConversationToModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create conversation: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set conversation ID: %w", err)
	}

	return nil
}

func (r *ConversationRepositoryImpl) Update(ctx context.Context, c *chat.Conversation) error {
	model := r.mapper.ConversationToModel(c)

	result := db.GetTxFromContext(ctx, r.db).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update conversation: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("conversation not found")
	}

	return nil
}

func (r *ConversationRepositoryImpl) FindByID(ctx context.Context, id uint) (*chat.Conversation, error) {
	var model models.ConversationModel

	if err := db.GetTxFromContext(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("conversation not found")
		}
		return nil, fmt.Errorf("failed to find conversation by ID: %w", err)
	}

	return r.mapper.ConversationToDomain(&model)
}

func (r *ConversationRepositoryImpl) FindBySessionID(ctx context.Context, sessionID string) (*chat.Conversation, error) {
	var model models.ConversationModel

	if err := db.GetTxFromContext(ctx, r.db).Where("session_id = ?", sessionID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFoundError("conversation not found")
		}
		return nil, fmt.Errorf("failed to find conversation by session ID: %w", err)
	}

	return r.mapper.ConversationToDomain(&model)
}
