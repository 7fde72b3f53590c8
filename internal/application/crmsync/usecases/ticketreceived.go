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

// TicketReceivedUseCase handles the Dev platform's acknowledgement that a
// ticket sent to development was accepted. It records the task link on the
// ticket and tells the assignee. The link is never cleared once set.
type TicketReceivedUseCase struct {
	ticketRepo ticket.Repository
	userRepo   user.Repository
	orgRepo    organization.Repository
	notifier   common.Notifier
	logger     logger.Interface
}

func NewTicketReceivedUseCase(
	ticketRepo ticket.Repository,
	userRepo user.Repository,
	orgRepo organization.Repository,
	notifier common.Notifier,
	log logger.Interface,
) *TicketReceivedUseCase {
	return &TicketReceivedUseCase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		orgRepo:    orgRepo,
		notifier:   notifier,
		logger:     log,
	}
}

func (uc *TicketReceivedUseCase) Execute(ctx context.Context, request dto.TicketReceivedRequest) (*dto.AckResponse, error) {
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

	if err := t.LinkTask(request.TaskID); err != nil {
		// A conflicting link is kept as-is; the ack is still valid.
		uc.logger.Warnw("ticket already linked to a different task",
			"ticket_sid", t.SID(),
			"existing", t.LinkedTaskSID(),
			"incoming", request.TaskID,
		)
	} else if err := uc.ticketRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to record task link: %w", err)
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"ticketSid": t.SID(),
		"taskSid":   request.TaskID,
	}
	notifyUser(ctx, uc.notifier, uc.userRepo, org, notifyTargetID(t),
		notification.TypeTicketReceived,
		"Ticket received by development",
		t.Title(),
		data,
		uc.logger,
	)
	_ = uc.notifier.Broadcast(ctx, org.SID(), sync.RealtimeTicketReceived, data)

	uc.logger.Infow("ticket acknowledged by dev platform",
		"ticket_sid", t.SID(),
		"task_sid", request.TaskID,
	)

	return &dto.AckResponse{Success: true}, nil
}
