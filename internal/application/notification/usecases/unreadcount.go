package usecases

import (
	"context"
	"fmt"

	domainnotification "github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

type UnreadCountUseCase struct {
	repo   domainnotification.Repository
	logger logger.Interface
}

func NewUnreadCountUseCase(repo domainnotification.Repository, log logger.Interface) *UnreadCountUseCase {
	return &UnreadCountUseCase{repo: repo, logger: log}
}

func (uc *UnreadCountUseCase) Execute(ctx context.Context, userID uint) (int64, error) {
	count, err := uc.repo.CountUnread(ctx, userID)
	if err != nil {
		uc.logger.Errorw("failed to count unread notifications", "user_id", userID, "error", err)
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return count, nil
}
