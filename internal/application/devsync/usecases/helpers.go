package usecases

import (
	"context"

	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/user"
	apperrors "github.com/loopdesk/loopdesk/internal/shared/errors"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// mirrorAuthor runs the attribution cascade on the Dev side: the task's
// assignee if present, else any organization admin, else nobody.
func mirrorAuthor(ctx context.Context, users user.Repository, t *task.Task, log logger.Interface) *uint {
	if t.AssigneeID() != nil {
		return t.AssigneeID()
	}

	admin, err := users.FindAdminByOrganization(ctx, t.OrganizationID())
	if err != nil {
		if !apperrors.IsNotFoundError(err) {
			log.Warnw("author attribution lookup failed",
				"task_sid", t.SID(),
				"error", err,
			)
		}
		return nil
	}

	adminID := admin.ID()
	return &adminID
}

func notifyTargetID(t *task.Task) uint {
	if t.AssigneeID() != nil {
		return *t.AssigneeID()
	}
	return t.CreatorID()
}
