// Package common declares the ports shared by the application use cases so
// the sync packages on both sides depend on interfaces, not infrastructure.
package common

import (
	"context"

	"github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
)

// Dispatcher fires a webhook event at the peer deployment without blocking
// the caller. Implementations must swallow delivery failures.
type Dispatcher interface {
	Dispatch(kind sync.EventKind, payload interface{})
}

// NotifyCommand describes one durable notification plus its private realtime
// emit.
type NotifyCommand struct {
	UserID  uint
	UserSID string
	OrgID   uint
	OrgSID  string
	Type    notification.Type
	Title   string
	Body    string
	Data    map[string]interface{}
}

// Notifier persists a notification row and pushes realtime events. Notify
// targets one user's private channel; Broadcast targets the whole
// organization channel and persists nothing.
type Notifier interface {
	Notify(ctx context.Context, cmd NotifyCommand) error
	Broadcast(ctx context.Context, orgSID string, event string, data map[string]interface{}) error
}

// TxManager wraps a mutation sequence in one database transaction.
type TxManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
