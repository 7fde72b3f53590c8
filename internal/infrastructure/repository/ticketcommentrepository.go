package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/mappers"
	"github.com/loopdesk/loopdesk/internal/infrastructure/persistence/models"
	"github.com/loopdesk/loopdesk/internal/shared/db"
)

// TicketCommentRepositoryImpl persists ticket comments. Duplicate webhook
// deliveries intentionally produce duplicate rows; there is no dedup key.
type TicketCommentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketCommentRepository(gormDB *gorm.DB) ticket.CommentRepository {
	return &TicketCommentRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketCommentRepositoryImpl) Save(ctx context.Context, c *ticket.Comment) error {
	model := r.mapper.CommentToModel(c)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket comment: %w", err)
	}

	if err := c.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set ticket comment ID: %w", err)
	}

	return nil
}

func (r *TicketCommentRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	var modelList []*models.TicketCommentModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket comments: %w", err)
	}

	comments := make([]*ticket.Comment, 0, len(modelList))
	for _, model := range modelList {
		comment, err := r.mapper.CommentToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map ticket comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, nil
}
