package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/application/devsync/dto"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/task"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// TicketStatusChangedUseCase records a CRM ticket status change against the
// linked task. The event is informational: an activity row is written and
// the board is refreshed, but the task status is never touched. Mapping
// ticket statuses back into task statuses would close the propagation loop
// the status asymmetry exists to break.
type TicketStatusChangedUseCase struct {
	taskRepo     task.Repository
	activityRepo task.ActivityRepository
	orgRepo      organization.Repository
	notifier     common.Notifier
	logger       logger.Interface
}

func NewTicketStatusChangedUseCase(
	taskRepo task.Repository,
	activityRepo task.ActivityRepository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *TicketStatusChangedUseCase {
	return &TicketStatusChangedUseCase{
		taskRepo:     taskRepo,
		activityRepo: activityRepo,
		orgRepo:      orgRepo,
		notifier:     notifier,
		logger:       log,
	}
}

func (uc *TicketStatusChangedUseCase) Execute(ctx context.Context, request dto.TicketStatusChangedRequest) (*dto.AckResponse, error) {
	if request.TicketID == "" {
		return nil, apperrors.NewValidationError("ticketId is required")
	}
	if request.NewStatus == "" {
		return nil, apperrors.NewValidationError("newStatus is required")
	}

	t, err := uc.taskRepo.FindByCRMTicketSID(ctx, request.TicketID)
	if err != nil {
		return nil, err
	}

	activity, err := task.NewActivity(t.ID(), task.ActivityTicketStatusChanged,
		fmt.Sprintf("CRM ticket moved to %s", request.NewStatus))
	if err != nil {
		return nil, err
	}
	if err := uc.activityRepo.Save(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to record ticket status activity: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeInboxUpdate, map[string]interface{}{
		"taskSid":      t.SID(),
		"ticketSid":    request.TicketID,
		"ticketStatus": request.NewStatus,
	})

	uc.logger.Infow("crm ticket status recorded on task",
		"task_sid", t.SID(),
		"ticket_status", request.NewStatus,
	)

	return &dto.AckResponse{Success: true}, nil
}
