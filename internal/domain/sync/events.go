package sync

// EventKind names a webhook event on the wire. The CRM-facing kinds are
// received by the CRM deployment and dispatched by the Dev deployment; the
// Dev-facing kinds go the other way.
type EventKind string

const (
	// Dev -> CRM
	EventTicketReceived    EventKind = "ticket-received"
	EventTaskCompleted     EventKind = "task-completed"
	EventTaskStatusChanged EventKind = "task-status-changed"
	EventCommentAdded      EventKind = "comment-added"
	EventAttachmentAdded   EventKind = "attachment-added"
	EventChatMessage       EventKind = "chat-message"

	// CRM -> Dev
	EventTaskCreate            EventKind = "task-create"
	EventTicketStatusChanged   EventKind = "ticket-status-changed"
	EventTicketCommentAdded    EventKind = "ticket-comment-added"
	EventTicketAttachmentAdded EventKind = "ticket-attachment-added"
)

// Path returns the webhook path the event is delivered to, relative to the
// receiving deployment's base URL.
func (k EventKind) Path(peerPrefix string) string {
	return peerPrefix + "/" + string(k)
}

// Realtime event names pushed to browser sessions.
const (
	RealtimeNotification   = "notification"
	RealtimeTicketUpdated  = "ticket.updated"
	RealtimeTicketReceived = "ticket.received-by-dev"
	RealtimeInboxUpdate    = "inbox_update"
	RealtimeNewMessage     = "new_message"
	RealtimeTaskUpdated    = "task.updated"
)

// Channel naming shared by the fan-out side and the realtime gateway.
func UserChannel(userSID string) string {
	return "user_" + userSID
}

func OrgChannel(orgSID string) string {
	return "org_" + orgSID
}
