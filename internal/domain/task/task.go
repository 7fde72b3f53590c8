package task

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

// Task is the Dev-side synchronized entity. A task created from a CRM ticket
// carries the ticket SID as a back-reference; at most one task references a
// given ticket at a time (best effort, not enforced by a constraint).
type Task struct {
	id             uint
	sid            string
	organizationID uint
	title          string
	description    string
	status         Status
	creatorID      uint
	assigneeID     *uint
	crmTicketSID   *string
	completedAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewTask(
	organizationID uint,
	title string,
	description string,
	creatorID uint,
	crmTicketSID *string,
) (*Task, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}
	if crmTicketSID != nil && len(*crmTicketSID) == 0 {
		return nil, fmt.Errorf("CRM ticket SID cannot be empty")
	}

	now := biztime.NowUTC()
	return &Task{
		sid:            id.MustGenerateWithPrefix(id.PrefixTask, id.DefaultLength),
		organizationID: organizationID,
		title:          title,
		description:    description,
		status:         StatusBacklog,
		creatorID:      creatorID,
		crmTicketSID:   crmTicketSID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructTask(
	taskID uint,
	sid string,
	organizationID uint,
	title string,
	description string,
	status Status,
	creatorID uint,
	assigneeID *uint,
	crmTicketSID *string,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Task, error) {
	if taskID == 0 {
		return nil, fmt.Errorf("task ID cannot be zero")
	}
	if len(sid) == 0 {
		return nil, fmt.Errorf("task SID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Task{
		id:             taskID,
		sid:            sid,
		organizationID: organizationID,
		title:          title,
		description:    description,
		status:         status,
		creatorID:      creatorID,
		assigneeID:     assigneeID,
		crmTicketSID:   crmTicketSID,
		completedAt:    completedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Task) ID() uint                { return t.id }
func (t *Task) SID() string             { return t.sid }
func (t *Task) OrganizationID() uint    { return t.organizationID }
func (t *Task) Title() string           { return t.title }
func (t *Task) Description() string     { return t.description }
func (t *Task) Status() Status          { return t.status }
func (t *Task) CreatorID() uint         { return t.creatorID }
func (t *Task) AssigneeID() *uint       { return t.assigneeID }
func (t *Task) CRMTicketSID() *string   { return t.crmTicketSID }
func (t *Task) CompletedAt() *time.Time { return t.completedAt }
func (t *Task) CreatedAt() time.Time    { return t.createdAt }
func (t *Task) UpdatedAt() time.Time    { return t.updatedAt }

func (t *Task) SetID(taskID uint) error {
	if t.id != 0 {
		return fmt.Errorf("task ID is already set")
	}
	if taskID == 0 {
		return fmt.Errorf("task ID cannot be zero")
	}
	t.id = taskID
	return nil
}

func (t *Task) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	t.assigneeID = &assigneeID
	t.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeStatus moves the task to a new status. The completion timestamp is
// stamped exactly once, on the first transition into DONE.
func (t *Task) ChangeStatus(newStatus Status) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return nil
	}

	t.status = newStatus
	now := biztime.NowUTC()
	t.updatedAt = now

	if newStatus == StatusDone && t.completedAt == nil {
		t.completedAt = &now
	}

	return nil
}

// Complete is the shorthand for moving straight to DONE.
func (t *Task) Complete() error {
	return t.ChangeStatus(StatusDone)
}
