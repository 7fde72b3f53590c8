package chat

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

// sessionNamespace seeds the deterministic session id derivation so that the
// same remote user always lands in the same conversation.
var sessionNamespace = uuid.MustParse("7c9e6679-7425-40de-944b-e07fc1f90ae7")

// SessionIDForRemoteUser derives the deterministic conversation session id
// for a peer-side user reference.
func SessionIDForRemoteUser(remoteUserID string) string {
	return uuid.NewSHA1(sessionNamespace, []byte(remoteUserID)).String()
}

type ConversationStatus string

const (
	ConversationActive ConversationStatus = "active"
	ConversationClosed ConversationStatus = "closed"
)

// Conversation groups chat messages relayed from the peer platform. It is
// keyed by a deterministic session id so repeated messages from the same
// remote user reuse one conversation.
type Conversation struct {
	id             uint
	sid            string
	organizationID uint
	sessionID      string
	remoteUserID   string
	remoteUserName string
	status         ConversationStatus
	createdAt      time.Time
	updatedAt      time.Time
}

func NewConversation(organizationID uint, remoteUserID, remoteUserName string) (*Conversation, error) {
	if organizationID == 0 {
		return nil, fmt.Errorf("organization ID is required")
	}
	if len(remoteUserID) == 0 {
		return nil, fmt.Errorf("remote user ID is required")
	}

	now := biztime.NowUTC()
	return &Conversation{
		sid:            id.MustGenerateWithPrefix(id.PrefixConversation, id.DefaultLength),
		organizationID: organizationID,
		sessionID:      SessionIDForRemoteUser(remoteUserID),
		remoteUserID:   remoteUserID,
		remoteUserName: remoteUserName,
		status:         ConversationActive,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

func ReconstructConversation(
	conversationID uint,
	sid string,
	organizationID uint,
	sessionID string,
	remoteUserID, remoteUserName string,
	status ConversationStatus,
	createdAt, updatedAt time.Time,
) (*Conversation, error) {
	if conversationID == 0 {
		return nil, fmt.Errorf("conversation ID cannot be zero")
	}
	if len(sessionID) == 0 {
		return nil, fmt.Errorf("session ID is required")
	}

	return &Conversation{
		id:             conversationID,
		sid:            sid,
		organizationID: organizationID,
		sessionID:      sessionID,
		remoteUserID:   remoteUserID,
		remoteUserName: remoteUserName,
		status:         status,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (c *Conversation) ID() uint                   { return c.id }
func (c *Conversation) SID() string                { return c.sid }
func (c *Conversation) OrganizationID() uint       { return c.organizationID }
func (c *Conversation) SessionID() string          { return c.sessionID }
func (c *Conversation) RemoteUserID() string       { return c.remoteUserID }
func (c *Conversation) RemoteUserName() string     { return c.remoteUserName }
func (c *Conversation) Status() ConversationStatus { return c.status }
func (c *Conversation) CreatedAt() time.Time       { return c.createdAt }
func (c *Conversation) UpdatedAt() time.Time       { return c.updatedAt }

func (c *Conversation) IsClosed() bool {
	return c.status == ConversationClosed
}

// Reactivate reopens a previously closed conversation when a new message
// arrives for it.
func (c *Conversation) Reactivate() {
	if c.status != ConversationActive {
		c.status = ConversationActive
		c.updatedAt = biztime.NowUTC()
	}
}

func (c *Conversation) Close() {
	if c.status != ConversationClosed {
		c.status = ConversationClosed
		c.updatedAt = biztime.NowUTC()
	}
}

func (c *Conversation) SetID(conversationID uint) error {
	if c.id != 0 {
		return fmt.Errorf("conversation ID is already set")
	}
	if conversationID == 0 {
		return fmt.Errorf("conversation ID cannot be zero")
	}
	c.id = conversationID
	return nil
}
