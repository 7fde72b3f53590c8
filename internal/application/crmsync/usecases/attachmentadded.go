package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// AttachmentAddedUseCase mirrors a Dev-side attachment reference onto the
// local ticket. Only the metadata travels; the file stays on the peer's
// storage and the URL points at it.
type AttachmentAddedUseCase struct {
	ticketRepo     ticket.Repository
	attachmentRepo ticket.AttachmentRepository
	userRepo       user.Repository
	orgRepo        organization.Repository
	notifier       common.Notifier
	logger         logger.Interface
}

func NewAttachmentAddedUseCase(
	ticketRepo ticket.Repository,
	attachmentRepo ticket.AttachmentRepository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *AttachmentAddedUseCase {
	return &AttachmentAddedUseCase{
		ticketRepo:     ticketRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		orgRepo:        orgRepo,
		notifier:       notifier,
		logger:         log,
	}
}

func (uc *AttachmentAddedUseCase) Execute(ctx context.Context, request dto.AttachmentAddedRequest) (*dto.AttachmentAddedResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.Attachment.Name == "" {
		return nil, apperrors.NewValidationError("attachment.name is required")
	}
	if request.Attachment.URL == "" {
		return nil, apperrors.NewValidationError("attachment.url is required")
	}

	t, err := uc.ticketRepo.FindBySID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	uploaderID := mirrorAuthor(ctx, uc.userRepo, t, uc.logger)

	attachment, err := ticket.NewAttachment(
		t.ID(),
		uploaderID,
		request.Attachment.Name,
		request.Attachment.URL,
		request.Attachment.Type,
		request.Attachment.Size,
		true,
	)
	if err != nil {
		return nil, err
	}
	if err := uc.attachmentRepo.Save(ctx, attachment); err != nil {
		return nil, fmt.Errorf("failed to save mirrored attachment: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"ticketSid":     t.SID(),
		"attachmentSid": attachment.SID(),
		"name":          attachment.Name(),
	}
	notifyUser(ctx, uc.notifier, uc.userRepo, org, notifyTargetID(t),
		notification.TypeTicketUpdated,
		"New attachment from development",
		attachment.Name(),
		data,
		uc.logger,
	)
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeTicketUpdated, data)

	uc.logger.Infow("dev attachment mirrored onto ticket",
		"ticket_sid", t.SID(),
		"attachment_sid", attachment.SID(),
	)

	return &dto.AttachmentAddedResponse{
		Success:      true,
		AttachmentID: attachment.SID(),
	}, nil
}
