package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/task/dto"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// ChangeTaskStatusUseCase moves a task on the board. User-originated moves
// on a linked task are pushed to the CRM, which applies its own mapping and
// may ignore statuses it has no equivalent for.
type ChangeTaskStatusUseCase struct {
	taskRepo     task.Repository
	activityRepo task.ActivityRepository
	dispatcher   common.Dispatcher
	logger       logger.Interface
}

func NewChangeTaskStatusUseCase(
	taskRepo task.Repository,
	activityRepo task.ActivityRepository,
	dispatcher common.Dispatcher,
	log logger.Interface,
) *ChangeTaskStatusUseCase {
	return &ChangeTaskStatusUseCase{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		dispatcher:   dispatcher,
		logger:       log,
	}
}

func (uc *ChangeTaskStatusUseCase) Execute(ctx context.Context, taskSID string, request dto.ChangeTaskStatusRequest, origin sync.Origin) (*dto.TaskResponse, error) {
	newStatus := task.Status(request.NewStatus)
	if !newStatus.IsValid() {
		return nil, apperrors.NewValidationError("invalid task status", request.NewStatus)
	}

	t, err := uc.taskRepo.FindBySID(ctx, taskSID)
	if err != nil {
		return nil, err
	}

	if err := t.ChangeStatus(newStatus); err != nil {
		return nil, apperrors.NewValidationError("status change rejected", err.Error())
	}
	if err := uc.taskRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	activity, err := task.NewActivity(t.ID(), task.ActivityStatusChanged,
		fmt.Sprintf("Status changed to %s", newStatus))
	if err == nil {
		if err := uc.activityRepo.Save(ctx, activity); err != nil {
			uc.logger.Warnw("failed to record status activity", "task_sid", t.SID(), "error", err)
		}
	}

	if origin.ShouldDispatch() && t.CRMTicketSID() != nil {
		uc.dispatcher.Dispatch(sync.EventTaskStatusChanged, map[string]interface{}{
			"ticketId":  *t.CRMTicketSID(),
			"newStatus": newStatus.String(),
		})
	}

	uc.logger.Infow("task status changed",
		"task_sid", t.SID(),
		"new_status", newStatus,
		"origin", origin,
	)

	return toTaskResponse(t), nil
}
