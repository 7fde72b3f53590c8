package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	"github.com/loopdesk/loopdesk/internal/application/identity"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// TaskCreateUseCase turns a CRM "send to development" call into a local
// task. One ticket maps to at most one task, best effort: a second delivery
// for the same ticket returns the existing task instead of creating another.
// On success the CRM is acked back through the dispatcher so it can record
// the task link on its side.
type TaskCreateUseCase struct {
	resolver     *identity.OrganizationResolver
	taskRepo     task.Repository
	activityRepo task.ActivityRepository
	userRepo     user.Repository
	notifier     common.Notifier
	dispatcher   common.Dispatcher
	txManager    common.TxManager
	logger       logger.Interface
}

func NewTaskCreateUseCase(
	resolver *identity.OrganizationResolver,
	taskRepo task.Repository,
	activityRepo task.ActivityRepository,
	userRepo user.Repository,
	notifier common.Notifier,
	dispatcher common.Dispatcher,
	txManager common.TxManager,
	log logger.Interface,
) *TaskCreateUseCase {
	return &TaskCreateUseCase{
		resolver:     resolver,
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		notifier:     notifier,
		dispatcher:   dispatcher,
		txManager:    txManager,
		logger:       log,
	}
}

func (uc *TaskCreateUseCase) Execute(ctx context.Context, request dto.TaskCreateRequest) (*dto.TaskCreateResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.Title == "" {
		return nil, apperrors.NewValidationError("title is required")
	}

	existing, err := uc.taskRepo.FindByCRMTicketSID(ctx, request.TicketID)
	if err == nil {
		uc.logger.Infow("ticket already has a task, reusing",
			"ticket_sid", request.TicketID,
			"task_sid", existing.SID(),
		)
		uc.ackTicketReceived(request.TicketID, existing.SID())
		return &dto.TaskCreateResponse{Success: true, TaskID: existing.SID()}, nil
	}
	if !apperrors.IsNotFoundError(err) {
		return nil, err
	}

	org, err := uc.resolver.Resolve(ctx, request.OrganizationID)
	if err != nil {
		return nil, err
	}

	admin, err := uc.userRepo.FindAdminByOrganization(ctx, org.ID())
	if err != nil {
		if apperrors.IsNotFoundError(err) {
			return nil, apperrors.NewInternalError("organization has no user to own the incoming task")
		}
		return nil, err
	}

	ticketSID := request.TicketID
	t, err := task.NewTask(org.ID(), request.Title, request.Description, admin.ID(), &ticketSID)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid task", err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.taskRepo.Save(txCtx, t); err != nil {
			return fmt.Errorf("failed to create task: %w", err)
		}

		activity, err := task.NewActivity(t.ID(), task.ActivityTaskCreated,
			fmt.Sprintf("Created from CRM ticket %s", request.TicketID))
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		return nil, err
	}

	uc.ackTicketReceived(request.TicketID, t.SID())

	data := map[string]interface{}{
		"taskSid":   t.SID(),
		"ticketSid": request.TicketID,
	}
	err = uc.notifier.Notify(ctx, common.NotifyCommand{
		UserID:  admin.ID(),
		UserSID: admin.SID(),
		OrgID:   org.ID(),
		OrgSID:  org.SID(),
		Type:    notification.TypeTaskAssigned,
		Title:   "New task from CRM",
		Body:    t.Title(),
		Data:    data,
	})
	if err != nil {
		uc.logger.Warnw("task creation notification failed", "task_sid", t.SID(), "error", err)
	}
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeInboxUpdate, data)

	uc.logger.Infow("task created from CRM ticket",
		"task_sid", t.SID(),
		"ticket_sid", request.TicketID,
	)

	return &dto.TaskCreateResponse{Success: true, TaskID: t.SID()}, nil
}

// ackTicketReceived completes the handshake: the CRM's ticket-received
// handler records the task link and notifies the ticket's assignee. This is
// the one place an inbound handler fires the dispatcher on purpose; the
// loop terminates because ticket-received never dispatches anything.
func (uc *TaskCreateUseCase) ackTicketReceived(ticketSID, taskSID string) {
	uc.dispatcher.Dispatch(sync.EventTicketReceived, map[string]interface{}{
		"ticketId": ticketSID,
		"taskId":   taskSID,
	})
}
