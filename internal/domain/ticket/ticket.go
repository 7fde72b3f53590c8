package ticket

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

// Ticket is the CRM-side synchronized entity. The CRM deployment is its sole
// writer; the Dev platform only reaches it through the inbound webhook
// handlers.
type Ticket struct {
	id             uint
	sid            string
	organizationID uint
	title          string
	description    string
	status         Status
	creatorID      uint
	assigneeID     *uint
	// linkedTaskSID is the opaque reference into the Dev platform. It is set
	// only after a successful outbound "ticket created" call and is never
	// cleared automatically.
	linkedTaskSID *string
	resolvedAt    *time.Time
	createdAt     time.Time
	updatedAt     time.Time
}

func NewTicket(
	organizationID uint,
	title string,
	description string,
	creatorID uint,
) (*Ticket, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if len(description) > 5000 {
		return nil, fmt.Errorf("description exceeds maximum length of 5000 characters")
	}
	if creatorID == 0 {
		return nil, fmt.Errorf("creator ID is required")
	}

	now := biztime.NowUTC()
	return &Ticket{
		sid:            id.MustGenerateWithPrefix(id.PrefixTicket, id.DefaultLength),
		organizationID: organizationID,
		title:          title,
		description:    description,
		status:         StatusOpen,
		creatorID:      creatorID,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructTicket(
	ticketID uint,
	sid string,
	organizationID uint,
	title string,
	description string,
	status Status,
	creatorID uint,
	assigneeID *uint,
	linkedTaskSID *string,
	resolvedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Ticket, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID cannot be zero")
	}
	if len(sid) == 0 {
		return nil, fmt.Errorf("ticket SID is required")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}

	return &Ticket{
		id:             ticketID,
		sid:            sid,
		organizationID: organizationID,
		title:          title,
		description:    description,
		status:         status,
		creatorID:      creatorID,
		assigneeID:     assigneeID,
		linkedTaskSID:  linkedTaskSID,
		resolvedAt:     resolvedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (t *Ticket) ID() uint               { return t.id }
func (t *Ticket) SID() string            { return t.sid }
func (t *Ticket) OrganizationID() uint   { return t.organizationID }
func (t *Ticket) Title() string          { return t.title }
func (t *Ticket) Description() string    { return t.description }
func (t *Ticket) Status() Status         { return t.status }
func (t *Ticket) CreatorID() uint        { return t.creatorID }
func (t *Ticket) AssigneeID() *uint      { return t.assigneeID }
func (t *Ticket) LinkedTaskSID() *string { return t.linkedTaskSID }
func (t *Ticket) ResolvedAt() *time.Time { return t.resolvedAt }
func (t *Ticket) CreatedAt() time.Time   { return t.createdAt }
func (t *Ticket) UpdatedAt() time.Time   { return t.updatedAt }

func (t *Ticket) SetID(ticketID uint) error {
	if t.id != 0 {
		return fmt.Errorf("ticket ID is already set")
	}
	if ticketID == 0 {
		return fmt.Errorf("ticket ID cannot be zero")
	}
	t.id = ticketID
	return nil
}

func (t *Ticket) AssignTo(assigneeID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID cannot be zero")
	}
	t.assigneeID = &assigneeID
	t.updatedAt = biztime.NowUTC()
	return nil
}

// LinkTask records the Dev platform task reference after the peer has
// acknowledged creation. Relinking to a different task is rejected; the link
// is never cleared automatically.
func (t *Ticket) LinkTask(taskSID string) error {
	if len(taskSID) == 0 {
		return fmt.Errorf("task SID cannot be empty")
	}
	if t.linkedTaskSID != nil && *t.linkedTaskSID != taskSID {
		return fmt.Errorf("ticket is already linked to task %s", *t.linkedTaskSID)
	}
	t.linkedTaskSID = &taskSID
	t.updatedAt = biztime.NowUTC()
	return nil
}

// ChangeStatus moves the ticket to a new status. The resolved timestamp is
// stamped exactly once, on the first transition into RESOLVED.
func (t *Ticket) ChangeStatus(newStatus Status) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if t.status == newStatus {
		return nil
	}

	t.status = newStatus
	now := biztime.NowUTC()
	t.updatedAt = now

	if newStatus == StatusResolved && t.resolvedAt == nil {
		t.resolvedAt = &now
	}

	return nil
}
