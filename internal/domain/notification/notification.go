package notification

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

type Type string

const (
	TypeTicketReceived     Type = "ticket.received-by-dev"
	TypeTicketResolved     Type = "ticket.resolved"
	TypeTicketUpdated      Type = "ticket.updated"
	TypeCommentMirrored    Type = "comment.mirrored"
	TypeAttachmentMirrored Type = "attachment.mirrored"
	TypeNewMessage         Type = "new_message"
	TypeTaskAssigned       Type = "task.assigned"
	TypeTaskUpdated        Type = "task.updated"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeTicketReceived, TypeTicketResolved, TypeTicketUpdated,
		TypeCommentMirrored, TypeAttachmentMirrored, TypeNewMessage,
		TypeTaskAssigned, TypeTaskUpdated:
		return true
	}
	return false
}

// Notification is the durable record behind every real-time emit. It is
// persisted before the emit so a client that was offline can fetch it later;
// the websocket delivery itself is at-most-once with no replay.
type Notification struct {
	id             uint
	sid            string
	userID         uint
	organizationID uint
	notifType      Type
	title          string
	body           string
	data           map[string]interface{}
	read           bool
	createdAt      time.Time
	updatedAt      time.Time
}

func NewNotification(
	userID uint,
	organizationID uint,
	notifType Type,
	title string,
	body string,
	data map[string]interface{},
) (*Notification, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if !notifType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notifType)
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 200 {
		return nil, fmt.Errorf("title exceeds maximum length of 200 characters")
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	now := biztime.NowUTC()
	return &Notification{
		sid:            id.MustGenerateWithPrefix(id.PrefixNotification, id.DefaultLength),
		userID:         userID,
		organizationID: organizationID,
		notifType:      notifType,
		title:          title,
		body:           body,
		data:           data,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructNotification(
	notificationID uint,
	sid string,
	userID uint,
	organizationID uint,
	notifType Type,
	title string,
	body string,
	data map[string]interface{},
	read bool,
	createdAt, updatedAt time.Time,
) (*Notification, error) {
	if notificationID == 0 {
		return nil, fmt.Errorf("notification ID cannot be zero")
	}
	if !notifType.IsValid() {
		return nil, fmt.Errorf("invalid notification type: %s", notifType)
	}
	if data == nil {
		data = make(map[string]interface{})
	}

	return &Notification{
		id:             notificationID,
		sid:            sid,
		userID:         userID,
		organizationID: organizationID,
		notifType:      notifType,
		title:          title,
		body:           body,
		data:           data,
		read:           read,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (n *Notification) ID() uint             { return n.id }
func (n *Notification) SID() string          { return n.sid }
func (n *Notification) UserID() uint         { return n.userID }
func (n *Notification) OrganizationID() uint { return n.organizationID }
func (n *Notification) NotifType() Type      { return n.notifType }
func (n *Notification) Title() string        { return n.title }
func (n *Notification) Body() string         { return n.body }
func (n *Notification) Read() bool           { return n.read }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }
func (n *Notification) UpdatedAt() time.Time { return n.updatedAt }

func (n *Notification) Data() map[string]interface{} {
	dataCopy := make(map[string]interface{}, len(n.data))
	for k, v := range n.data {
		dataCopy[k] = v
	}
	return dataCopy
}

func (n *Notification) MarkRead() {
	if !n.read {
		n.read = true
		n.updatedAt = biztime.NowUTC()
	}
}

func (n *Notification) SetID(notificationID uint) error {
	if n.id != 0 {
		return fmt.Errorf("notification ID is already set")
	}
	if notificationID == 0 {
		return fmt.Errorf("notification ID cannot be zero")
	}
	n.id = notificationID
	return nil
}
