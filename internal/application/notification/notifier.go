package notification

import (
	"context"
	"fmt"

	"github.com/loopdesk/loopdesk/internal/application/common"
	domainnotification "github.com/loopdesk/loopdesk/internal/domain/notification"
	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/infrastructure/pubsub"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// FanoutNotifier persists the notification row first, then emits the
// realtime events. The row is the durable record; the emits are at-most-once
// and a publish failure is logged, never propagated.
type FanoutNotifier struct {
	repo      domainnotification.Repository
	publisher pubsub.RealtimePublisher
	logger    logger.Interface
}

func NewFanoutNotifier(
	repo domainnotification.Repository,
	publisher pubsub.RealtimePublisher,
	log logger.Interface,
) *FanoutNotifier {
	return &FanoutNotifier{
		repo:      repo,
		publisher: publisher,
		logger:    log,
	}
}

func (n *FanoutNotifier) Notify(ctx context.Context, cmd common.NotifyCommand) error {
	entity, err := domainnotification.NewNotification(
		cmd.UserID,
		cmd.OrgID,
		cmd.Type,
		cmd.Title,
		cmd.Body,
		cmd.Data,
	)
	if err != nil {
		return fmt.Errorf("failed to build notification: %w", err)
	}

	if err := n.repo.Save(ctx, entity); err != nil {
		return fmt.Errorf("failed to persist notification: %w", err)
	}

	event := pubsub.Event{
		Name: sync.RealtimeNotification,
		Data: map[string]interface{}{
			"id":    entity.SID(),
			"type":  string(cmd.Type),
			"title": cmd.Title,
			"body":  cmd.Body,
			"data":  cmd.Data,
		},
	}
	if err := n.publisher.Publish(ctx, sync.UserChannel(cmd.UserSID), event); err != nil {
		n.logger.Warnw("realtime notification emit failed",
			"user_sid", cmd.UserSID,
			"type", cmd.Type,
			"error", err,
		)
	}

	return nil
}

func (n *FanoutNotifier) Broadcast(ctx context.Context, orgSID string, event string, data map[string]interface{}) error {
	err := n.publisher.Publish(ctx, sync.OrgChannel(orgSID), pubsub.Event{
		Name: event,
		Data: data,
	})
	if err != nil {
		n.logger.Warnw("realtime broadcast emit failed",
			"org_sid", orgSID,
			"event", event,
			"error", err,
		)
	}

	return nil
}
