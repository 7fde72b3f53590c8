package usecases

import (
	"context"

	"github.com/loopdesk/loopdesk/internal/application/common"
	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/organization"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// mirrorAuthor runs the attribution cascade for content mirrored from the
// peer: the ticket's assignee if present, else any organization admin, else
// nobody. A synthetic system account is never substituted; an unattributable
// comment simply has no author.
func mirrorAuthor(ctx context.Context, users user.Repository, t *ticket.Ticket, log logger.Interface) *uint {
	if t.AssigneeID() != nil {
		return t.AssigneeID()
	}

	admin, err := users.FindAdminByOrganization(ctx, t.OrganizationID())
	if err != nil {
		if !apperrors.IsNotFoundError(err) {
			log.Warnw("author attribution lookup failed",
				"ticket_sid", t.SID(),
				"error", err,
			)
		}
		return nil
	}

	adminID := admin.ID()
	return &adminID
}

// notifyTargetID picks the user a ticket event is delivered to: the assignee
// when one exists, otherwise the creator.
func notifyTargetID(t *ticket.Ticket) uint {
	if t.AssigneeID() != nil {
		return *t.AssigneeID()
	}
	return t.CreatorID()
}

// notifyUser persists and emits a notification for one user. Fan-out
// failures after a successful mutation are logged, never surfaced; the
// webhook response reflects the mutation, not the courtesy push.
func notifyUser(
	ctx context.Context,
	notifier common.Notifier,
	users user.Repository,
	org *organization.Organization,
	userID uint,
	ntype notification.Type,
	title, body string,
	data map[string]interface{},
	log logger.Interface,
) {
	target, err := users.FindByID(ctx, userID)
	if err != nil {
		log.Warnw("notification target lookup failed",
			"user_id", userID,
			"error", err,
		)
		return
	}

	err = notifier.Notify(ctx, common.NotifyCommand{
		UserID:  target.ID(),
		UserSID: target.SID(),
		OrgID:   org.ID(),
		OrgSID:  org.SID(),
		Type:    ntype,
		Title:   title,
		Body:    body,
		Data:    data,
	})
	if err != nil {
		log.Warnw("notification delivery failed",
			"user_id", userID,
			"type", ntype,
			"error", err,
		)
	}
}
