package chat

import "context"

type ConversationRepository interface {
	Save(ctx context.Context, c *Conversation) error
	Update(ctx context.Context, c *Conversation) error
	FindByID(ctx context.Context, id uint) (*Conversation, error)
	// FindBySessionID looks up the conversation for a deterministic session
	// id. Returns a not found error when none exists yet.
	FindBySessionID(ctx context.Context, sessionID string) (*Conversation, error)
}

type MessageRepository interface {
	Save(ctx context.Context, m *Message) error
	ListByConversation(ctx context.Context, conversationID uint) ([]*Message, error)
}
