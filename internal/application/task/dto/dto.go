package dto

import "time"

type TaskResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description,omitempty"`
	Status       string     `json:"status"`
	CRMTicketSID *string    `json:"crm_ticket_id,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type ChangeTaskStatusRequest struct {
	NewStatus string `json:"new_status"`
}

type AddTaskCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	FromPeer  bool      `json:"from_peer"`
	CreatedAt time.Time `json:"created_at"`
}
