package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/task/dto"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// CompleteTaskUseCase marks a task done and, for user-originated writes on a
// ticket-linked task, tells the CRM so it can resolve the ticket.
type CompleteTaskUseCase struct {
	taskRepo     task.Repository
	activityRepo task.ActivityRepository
	userRepo     user.Repository
	dispatcher   common.Dispatcher
	txManager    common.TxManager
	logger       logger.Interface
}

func NewCompleteTaskUseCase(
	taskRepo task.Repository,
	activityRepo task.ActivityRepository,
	userRepo user.Repository,
	dispatcher common.Dispatcher,
	txManager common.TxManager,
	log logger.Interface,
) *CompleteTaskUseCase {
	return &CompleteTaskUseCase{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		userRepo:     userRepo,
		dispatcher:   dispatcher,
		txManager:    txManager,
		logger:       log,
	}
}

func (uc *CompleteTaskUseCase) Execute(ctx context.Context, taskSID string, completedByID uint, origin sync.Origin) (*dto.TaskResponse, error) {
	t, err := uc.taskRepo.FindBySID(ctx, taskSID)
	if err != nil {
		return nil, err
	}

	completedBy, err := uc.userRepo.FindByID(ctx, completedByID)
	if err != nil {
		return nil, err
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := t.Complete(); err != nil {
			return err
		}
		if err := uc.taskRepo.Update(txCtx, t); err != nil {
			return fmt.Errorf("failed to complete task: %w", err)
		}

		activity, err := task.NewActivity(t.ID(), task.ActivityTaskCompleted,
			fmt.Sprintf("Completed by %s", completedBy.Name()))
		if err != nil {
			return err
		}
		return uc.activityRepo.Save(txCtx, activity)
	})
	if err != nil {
		return nil, err
	}

	if origin.ShouldDispatch() && t.CRMTicketSID() != nil {
		uc.dispatcher.Dispatch(sync.EventTaskCompleted, map[string]interface{}{
			"ticketId":    *t.CRMTicketSID(),
			"taskId":      t.SID(),
			"completedBy": completedBy.Name(),
		})
	}

	uc.logger.Infow("task completed",
		"task_sid", t.SID(),
		"origin", origin,
	)

	return toTaskResponse(t), nil
}

func toTaskResponse(t *task.Task) *dto.TaskResponse {
	return &dto.TaskResponse{
		ID:           t.SID(),
		Title:        t.Title(),
		Description:  t.Description(),
		Status:       t.Status().String(),
		CRMTicketSID: t.CRMTicketSID(),
		CompletedAt:  t.CompletedAt(),
		CreatedAt:    t.CreatedAt(),
		UpdatedAt:    t.UpdatedAt(),
	}
}
