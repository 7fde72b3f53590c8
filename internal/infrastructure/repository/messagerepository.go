package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/chat"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/mappers"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/shared/db"
)

type MessageRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.ChatMapper
}

func NewMessageRepository(gormDB *gorm.DB) chat.MessageRepository {
	return &MessageRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewChatMapper(),
	}
}

func (r *MessageRepositoryImpl) Save(ctx context.Context, m *chat.Message) error {
	model := r.mapper.MessageToModel(m)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}

	if err := m.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set message ID: %w", err)
	}

	return nil
}

func (r *MessageRepositoryImpl) ListByConversation(ctx context.Context, conversationID uint) ([]*chat.Message, error) {
	var modelList []*models.MessageModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	messages := make([]*chat.Message, 0, len(modelList))
	for _, model := range modelList {
		message, err := r.mapper.MessageToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map message: %w", err)
		}
		messages = append(messages, message)
	}

	return messages, nil
}
