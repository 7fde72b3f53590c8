package usecases

import (
	"context"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// SendTicketToDevUseCase hands a ticket over to the Dev platform. The
// dispatch is fire-and-forget; the task link lands later, when the peer's
// task-create handler acks back with ticket-received. The local write never
// waits on the peer.
type SendTicketToDevUseCase struct {
	ticketRepo ticket.Repository
	orgRepo    organization.Repository
	dispatcher common.Dispatcher
	logger     logger.Interface
}

func NewSendTicketToDevUseCase(
	ticketRepo ticket.Repository,
	orgRepo organization.Repository,
	dispatcher common.Dispatcher,
	log logger.Interface,
) *SendTicketToDevUseCase {
	return &SendTicketToDevUseCase{
		ticketRepo: ticketRepo,
		orgRepo:    orgRepo,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (uc *SendTicketToDevUseCase) Execute(ctx context.Context, ticketSID string) error {
	t, err := uc.ticketRepo.FindBySID(ctx, ticketSID)
	if err != nil {
		return err
	}

	if t.LinkedTaskSID() != nil {
		return apperrors.NewConflictError("ticket is already linked to a task", *t.LinkedTaskSID())
	}

	org, err := uc.orgRepo.FindByID(ctx, t.OrganizationID())
	if err != nil {
		return err
	}

	uc.dispatcher.Dispatch(sync.EventTaskCreate, map[string]interface{}{
		"ticketId":       t.SID(),
		"title":          t.Title(),
		"description":    t.Description(),
		"organizationId": org.SID(),
	})

	uc.logger.Infow("ticket sent to dev platform",
		"ticket_sid", t.SID(),
	)

	return nil
}
