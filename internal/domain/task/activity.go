package task

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
)

// ActivityKind classifies the system activity records written alongside
// sync-driven mutations.
type ActivityKind string

const (
	ActivityTaskCreated         ActivityKind = "task_created"
	ActivityTaskCompleted       ActivityKind = "task_completed"
	ActivityStatusChanged       ActivityKind = "status_changed"
	ActivityTicketStatusChanged ActivityKind = "ticket_status_changed"
	ActivityCommentMirrored     ActivityKind = "comment_mirrored"
	ActivityAttachmentMirrored  ActivityKind = "attachment_mirrored"
)

// Activity is an append-only audit line on a task. It is how informational
// peer events (e.g. a CRM ticket status change) are recorded without touching
// the task status itself.
type Activity struct {
	id        uint
	taskID    uint
	kind      ActivityKind
	message   string
	createdAt time.Time
}

func NewActivity(taskID uint, kind ActivityKind, message string) (*Activity, error) {
	if taskID == 0 {
		return nil, fmt.Errorf("task ID is required")
	}
	if len(kind) == 0 {
		return nil, fmt.Errorf("activity kind is required")
	}
	if len(message) == 0 {
		return nil, fmt.Errorf("activity message is required")
	}

	return &Activity{
		taskID:    taskID,
		kind:      kind,
		message:   message,
		createdAt: biztime.NowUTC(),
	}, nil
}

func ReconstructActivity(
	activityID uint,
	taskID uint,
	kind ActivityKind,
	message string,
	createdAt time.Time,
) (*Activity, error) {
	if activityID == 0 {
		return nil, fmt.Errorf("activity ID cannot be zero")
	}
	return &Activity{
		id:        activityID,
		taskID:    taskID,
		kind:      kind,
		message:   message,
		createdAt: createdAt,
	}, nil
}

func (a *Activity) ID() uint             { return a.id }
func (a *Activity) TaskID() uint         { return a.taskID }
func (a *Activity) Kind() ActivityKind   { return a.kind }
func (a *Activity) Message() string      { return a.message }
func (a *Activity) CreatedAt() time.Time { return a.createdAt }

func (a *Activity) SetID(activityID uint) error {
	if a.id != 0 {
		return fmt.Errorf("activity ID is already set")
	}
	if activityID == 0 {
		return fmt.Errorf("activity ID cannot be zero")
	}
	a.id = activityID
	return nil
}
