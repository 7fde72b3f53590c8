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

// TaskCompletedUseCase resolves the local ticket when the linked Dev task is
// done. The status write and the system comment share one transaction; the
// notifications ride behind it best-effort.
type TaskCompletedUseCase struct {
	ticketRepo  ticket.Repository
	commentRepo ticket.CommentRepository
	userRepo    user.Repository
	orgRepo     organization.Repository
	notifier    common.Notifier
	txManager   common.TxManager
	logger      logger.Interface
}

func NewTaskCompletedUseCase(
	ticketRepo ticket.Repository,
	commentRepo ticket.CommentRepository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	txManager common.TxManager,
	log logger.Interface,
) *TaskCompletedUseCase {
	return &TaskCompletedUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		orgRepo:     orgRepo,
		notifier:    notifier,
		txManager:   txManager,
		logger:      log,
	}
}

func (uc *TaskCompletedUseCase) Execute(ctx context.Context, request dto.TaskCompletedRequest) (*dto.TaskCompletedResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.TaskID == "" {
		return nil, apperrors.NewValidationError("taskId is required")
	}

	t, err := uc.ticketRepo.FindBySID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	activity := "Task completed on the Dev platform"
	if request.CompletedBy != "" {
		activity = fmt.Sprintf("Task completed on the Dev platform by %s", request.CompletedBy)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := t.ChangeStatus(ticket.StatusResolved); err != nil {
			return err
		}
		if err := uc.ticketRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to resolve ticket: %w", err)
		}

		record, err := ticket.NewComment(t.ID(), nil, activity, true)
		if err != nil {
			return err
		}
		if err := uc.commentRepo.Save(txCtx, record); err != nil {
			return fmt.Errorf("failed to record completion activity: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"ticketSid": t.SID(),
		"taskSid":   request.TaskID,
		"newStatus": ticket.StatusResolved.String(),
	}
	notifyUser(ctx, uc.notifier, uc.userRepo, org, notifyTargetID(t),
		notification.TypeTicketResolved,
		"Ticket resolved",
		activity,
		data,
		uc.logger,
	)
	if t.AssigneeID() != nil && *t.AssigneeID() != t.CreatorID() {
		notifyUser(ctx, uc.notifier, uc.userRepo, org, t.CreatorID(),
			notification.TypeTicketResolved,
			"Ticket resolved",
			activity,
			data,
			uc.logger,
		)
	}
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeTicketUpdated, data)

	uc.logger.Infow("ticket resolved by task completion",
		"ticket_sid", t.SID(),
		"task_sid", request.TaskID,
	)

	return &dto.TaskCompletedResponse{
		Success:   true,
		TicketID:  t.SID(),
		NewStatus: ticket.StatusResolved.String(),
	}, nil
}
