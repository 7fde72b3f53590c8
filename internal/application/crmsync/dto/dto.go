// Package dto defines the wire shapes of the CRM-facing webhook endpoints.
// The success bodies are flat, matching what the Dev platform's dispatcher
// expects, not the envelope used by browser-facing routes.
package dto

type TicketReceivedRequest struct {
	TicketID string `json:"ticketId"`
	TaskID   string `json:"taskId"`
}

type AckResponse struct {
	Success bool `json:"success"`
}

type TaskCompletedRequest struct {
	TicketID    string `json:"ticketId"`
	TaskID      string `json:"taskId"`
	CompletedBy string `json:"completedBy,omitempty"`
}

type TaskCompletedResponse struct {
	Success   bool   `json:"success"`
	TicketID  string `json:"ticketId"`
	NewStatus string `json:"newStatus"`
}

type TaskStatusChangedRequest struct {
	TicketID  string `json:"ticketId"`
	NewStatus string `json:"newStatus"`
}

type TaskStatusChangedResponse struct {
	Success   bool   `json:"success"`
	TicketID  string `json:"ticketId,omitempty"`
	NewStatus string `json:"newStatus,omitempty"`
	Message   string `json:"message,omitempty"`
}

type CommentPayload struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

type CommentAddedRequest struct {
	TicketID string         `json:"ticketId"`
	Comment  CommentPayload `json:"comment"`
}

type CommentAddedResponse struct {
	Success   bool   `json:"success"`
	CommentID string `json:"commentId"`
}

type AttachmentPayload struct {
	Name string `json:"name"`
	URL  string `json:"url"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type AttachmentAddedRequest struct {
	TicketID   string            `json:"ticketId"`
	Attachment AttachmentPayload `json:"attachment"`
}

type AttachmentAddedResponse struct {
	Success      bool   `json:"success"`
	AttachmentID string `json:"attachmentId"`
}

type ChatMessageRequest struct {
	UserID         string `json:"userId"`
	UserName       string `json:"userName"`
	Content        string `json:"content"`
	OrganizationID string `json:"organizationId"`
}

type ChatMessageResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}
