package usecases

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/notification/dto"
	domainnotification "github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// ListNotificationsUseCase returns a user's notification history, newest
// first. This is the catch-up path for clients that were offline when the
// realtime emit happened.
type ListNotificationsUseCase struct {
	repo   domainnotification.Repository
	logger logger.Interface
}

func NewListNotificationsUseCase(repo domainnotification.Repository, log logger.Interface) *ListNotificationsUseCase {
	return &ListNotificationsUseCase{repo: repo, logger: log}
}

func (uc *ListNotificationsUseCase) Execute(ctx context.Context, userID uint, request dto.ListNotificationsRequest) ([]*dto.NotificationResponse, int64, error) {
	notifications, total, err := uc.repo.ListByUser(ctx, userID, request.Page, request.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list notifications", "user_id", userID, "error", err)
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, toResponse(n))
	}

	return responses, total, nil
}

func toResponse(n *domainnotification.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:        n.SID(),
		Type:      string(n.NotifType()),
		Title:     n.Title(),
		Body:      n.Body(),
		Data:      n.Data(),
		Read:      n.Read(),
		CreatedAt: n.CreatedAt(),
	}
}
