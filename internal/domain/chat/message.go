package chat

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

type MessageDirection string

const (
	DirectionInbound  MessageDirection = "inbound"
	DirectionOutbound MessageDirection = "outbound"
)

// Message is a single chat line within a conversation. Inbound messages come
// from the peer platform and carry the remote sender's display name.
type Message struct {
	id             uint
	sid            string
	conversationID uint
	senderName     string
	content        string
	direction      MessageDirection
	createdAt      time.Time
}

func NewMessage(conversationID uint, senderName, content string, direction MessageDirection) (*Message, error) {
	if conversationID == 0 {
		return nil, fmt.Errorf("conversation ID is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > 10000 {
		return nil, fmt.Errorf("content exceeds maximum length of 10000 characters")
	}
	if direction != DirectionInbound && direction != DirectionOutbound {
		return nil, fmt.Errorf("invalid message direction: %s", direction)
	}

	return &Message{
		sid:            id.MustGenerateWithPrefix(id.PrefixMessage, id.DefaultLength),
		conversationID: conversationID,
		senderName:     senderName,
		content:        content,
		direction:      direction,
		createdAt:      biztime.NowUTC(),
	}, nil
}

func ReconstructMessage(
	messageID uint,
	sid string,
	conversationID uint,
	senderName, content string,
	direction MessageDirection,
	createdAt time.Time,
) (*Message, error) {
	if messageID == 0 {
		return nil, fmt.Errorf("message ID cannot be zero")
	}
	if conversationID == 0 {
		return nil, fmt.Errorf("conversation ID is required")
	}

	return &Message{
		id:             messageID,
		sid:            sid,
		conversationID: conversationID,
		senderName:     senderName,
		content:        content,
		direction:      direction,
		createdAt:      createdAt,
	}, nil
}

func (m *Message) ID() uint                    { return m.id }
func (m *Message) SID() string                 { return m.sid }
func (m *Message) ConversationID() uint        { return m.conversationID }
func (m *Message) SenderName() string          { return m.senderName }
func (m *Message) Content() string             { return m.content }
func (m *Message) Direction() MessageDirection { return m.direction }
func (m *Message) CreatedAt() time.Time        { return m.createdAt }

func (m *Message) SetID(messageID uint) error {
	if m.id != 0 {
		return fmt.Errorf("message ID is already set")
	}
	if messageID == 0 {
		return fmt.Errorf("message ID cannot be zero")
	}
	m.id = messageID
	return nil
}
