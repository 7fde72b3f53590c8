package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/crmsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// TaskStatusChangedUseCase applies the task-to-ticket status mapping. Task
// statuses with no mapping leave the ticket untouched and still succeed;
// the peer is told the status was not mapped.
type TaskStatusChangedUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	orgRepo    organization.Repository
	notifier   common.Notifier
	logger     logger.Interface
}

func NewTaskStatusChangedUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *TaskStatusChangedUseCase {
	return &TaskStatusChangedUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		notifier:   notifier,
		logger:     log,
	}
}

func (uc *TaskStatusChangedUseCase) Execute(ctx context.Context, request dto.TaskStatusChangedRequest) (*dto.TaskStatusChangedResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.NewStatus == "" {
		return nil, apperrors.NewValidationError("newStatus is required")
	}

	t, err := uc.ticketRepo.FindBySID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	mapped, ok := sync.MapTaskStatus(task.Status(request.NewStatus))
	if !ok {
		uc.logger.Debugw("task status has no ticket mapping",
			"ticket_sid", t.SID(),
			"task_status", request.NewStatus,
		)
		return &dto.TaskStatusChangedResponse{
			Success: true,
			Message: "Status not mapped",
		}, nil
	}

	if err := t.ChangeStatus(mapped); err != nil {
		return nil, err
	}
	if err := uc.ticketRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update ticket status: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"ticketSid": t.SID(),
		"newStatus": mapped.String(),
	}
	notifyUser(ctx, uc.notifier, uc.userRepo, org, notifyTargetID(t),
		notification.TypeTicketUpdated,
		"Ticket status updated",
		fmt.Sprintf("Development moved the linked task to %s", request.NewStatus),
		data,
		uc.logger,
	)
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeTicketUpdated, data)

	uc.logger.Infow("ticket status synced from task",
		"ticket_sid", t.SID(),
		"task_status", request.NewStatus,
		"ticket_status", mapped,
	)

	return &dto.TaskStatusChangedResponse{
		Success:   true,
		TicketID:  t.SID(),
		NewStatus: mapped.String(),
	}, nil
}
