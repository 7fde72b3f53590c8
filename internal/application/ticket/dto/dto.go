package dto

import "time"

type TicketResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Description   string     `json:"description,omitempty"`
	Status        string     `json:"status"`
	LinkedTaskSID *string    `json:"linked_task_id,omitempty"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type ChangeTicketStatusRequest struct {
	NewStatus string `json:"new_status"`
}

type AddTicketCommentRequest struct {
	Content string `json:"content"`
}

type CommentResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	FromPeer  bool      `json:"from_peer"`
	CreatedAt time.Time `json:"created_at"`
}
