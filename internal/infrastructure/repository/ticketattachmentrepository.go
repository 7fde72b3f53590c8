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

type TicketAttachmentRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketAttachmentRepository(gormDB *gorm.DB) ticket.AttachmentRepository {
	return &TicketAttachmentRepositoryImpl{
		db:     gormDB,
		mapper: mappers.NewTicketMapper(),
	}
}

func (r *TicketAttachmentRepositoryImpl) Save(ctx context.Context, a *ticket.Attachment) error {
	model := r.mapper.AttachmentToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create ticket attachment: %w", err)
	}

	if err := a.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set ticket attachment ID: %w", err)
	}

	return nil
}

func (r *TicketAttachmentRepositoryImpl) ListByTicket(ctx context.Context, ticketID uint) ([]*ticket.Attachment, error) {
	var modelList []*models.TicketAttachmentModel

	err := db.GetTxFromContext(ctx, r.db).
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ticket attachments: %w", err)
	}

	attachments := make([]*ticket.Attachment, 0, len(modelList))
	for _, model := range modelList {
		attachment, err := r.mapper.AttachmentToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("failed to map ticket attachment: %w", err)
		}
		attachments = append(attachments, attachment)
	}

	return attachments, nil
}
