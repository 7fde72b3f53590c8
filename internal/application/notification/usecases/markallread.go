package usecases

import (
	"context"
	"fmt"

	domainnotification "github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

type MarkAllReadUseCase struct {
	repo   domainnotification.Repository
	logger logger.Interface
}

func NewMarkAllReadUseCase(repo domainnotification.Repository, log logger.Interface) *MarkAllReadUseCase {
	return &MarkAllReadUseCase{repo: repo, logger: log}
}

func (uc *MarkAllReadUseCase) Execute(ctx context.Context, userID uint) error {
	if err := uc.repo.MarkAllRead(ctx, userID); err != nil {
		uc.logger.Errorw("failed to mark notifications read", "user_id", userID, "error", err)
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}

	return nil
}
