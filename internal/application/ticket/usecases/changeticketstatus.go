package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/ticket/dto"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// ChangeTicketStatusUseCase applies a local status edit. The change is
// pushed to the Dev platform only as an informational event, and only for
// user-originated mutations; sync-originated writes never re-dispatch.
type ChangeTicketStatusUseCase struct {
	ticketRepo ticket.Repository
	orgRepo    organization.Repository
	dispatcher common.Dispatcher
	notifier   common.Notifier
	logger     logger.Interface
}

func NewChangeTicketStatusUseCase(
	ticketRepo ticket.Repository,
	orgRepo organization.Repository,
	dispatcher common.Dispatcher,
	notifier common.Notifier,
	log logger.Interface,
) *ChangeTicketStatusUseCase {
	return &ChangeTicketStatusUseCase{
		ticketRepo: ticketRepo,
		orgRepo:    orgRepo,
		dispatcher: dispatcher,
		notifier:   notifier,
		logger:     log,
	}
}

func (uc *ChangeTicketStatusUseCase) Execute(ctx context.Context, ticketSID string, request dto.ChangeTicketStatusRequest, origin sync.Origin) (*dto.TicketResponse, error) {
	newStatus := ticket.Status(request.NewStatus)
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError("invalid ticket status", request.NewStatus)
	}

	t, err := uc.ticketRepo.FindBySID(ctx, ticketSID)
	if err != nil {
		return nil, err
	}

	if err := t.ChangeStatus(newStatus); err != nil {
		return nil, apperrors.NewValidationError("status change rejected", err.Error())
	}
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update ticket: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	if origin.ShouldDispatch() && t.LinkedTaskSID() != nil {
		uc.dispatcher.Dispatch(sync.EventTicketStatusChanged, map[string]interface{}{
			"ticketId":  t.SID(),
			"newStatus": newStatus.String(),
		})
	}

	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeTicketUpdated, map[string]interface{}{
		"ticketSid": t.SID(),
		"newStatus": newStatus.String(),
	})

	uc.logger.Infow("ticket status changed",
		"ticket_sid", t.SID(),
		"new_status", newStatus,
		"origin", origin,
	)

	return toTicketResponse(t), nil
}

func toTicketResponse(t *ticket.Ticket) *dto.TicketResponse {
	return &dto.TicketResponse{
		ID:            t.SID(),
		Title:         t.Title(),
		Description:   t.Description(),
		Status:        t.Status().String(),
		LinkedTaskSID: t.LinkedTaskSID(),
		ResolvedAt:    t.ResolvedAt(),
		CreatedAt:     t.CreatedAt(),
		UpdatedAt:     t.UpdatedAt(),
	}
}
