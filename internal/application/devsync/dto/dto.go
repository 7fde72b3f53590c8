// Package dto defines the wire shapes of the Dev-facing webhook endpoints,
// the half of the protocol the CRM's dispatcher talks to.
package dto

type TaskCreateRequest struct {
	TicketID       string `json:"ticketId"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	OrganizationID string `json:"organizationId,omitempty"`
}

type TaskCreateResponse struct {
	Success bool   `json:"success"`
	TaskID  string `json:"taskId"`
}

type CommentPayload struct {
	Content    string `json:"content"`
	AuthorName string `json:"authorName"`
}

type TicketCommentAddedRequest struct {
	TicketID string         `json:"ticketId"`
	Comment  CommentPayload `json:"comment"`
}

type TicketCommentAddedResponse struct {
	Success   bool   `json:"success"`
	CommentID string `json:"commentId"`
}

type AttachmentPayload struct {
	Name         string `json:"name"`
	URL          string `json:"url"`
	Size         int64  `json:"size,omitempty"`
	UploaderName string `json:"uploaderName,omitempty"`
}

type TicketAttachmentAddedRequest struct {
	TicketID   string            `json:"ticketId"`
	Attachment AttachmentPayload `json:"attachment"`
}

type TicketStatusChangedRequest struct {
	TicketID  string `json:"ticketId"`
	NewStatus string `json:"newStatus"`
}

type AckResponse struct {
	Success bool `json:"success"`
}
