package dto

import "time"

type NotificationResponse struct {
	ID        string                 `json:"id"`
	Type      string                 `json:"type"`
	Title     string                 `json:"title"`
	Body      string                 `json:"body,omitempty"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Read      bool                   `json:"read"`
	CreatedAt time.Time              `json:"created_at"`
}

type ListNotificationsRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}
