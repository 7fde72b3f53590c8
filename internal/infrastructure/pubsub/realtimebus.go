package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/goroutine"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// channelPrefix namespaces realtime channels inside Redis so logical channel
// names like user_usr_abc stay short on the websocket side.
const channelPrefix = "loopdesk:rt:"

// Event is a single realtime push. Delivery is at-most-once: events published
// while a client is disconnected are not replayed, the durable notification
// row is the catch-up path.
type Event struct {
	Name      string                 `json:"name"`
	Data      map[string]interface{} `json:"data,omitempty"`
	Timestamp int64                  `json:"timestamp"`
}

// RealtimePublisher pushes events toward connected browser sessions.
type RealtimePublisher interface {
	Publish(ctx context.Context, channel string, event Event) error
}

// RealtimeSubscriber delivers events for a set of logical channels until the
// context is cancelled.
type RealtimeSubscriber interface {
	Subscribe(ctx context.Context, channels []string, handler func(channel string, event Event)) error
}

// RealtimeBus combines both sides for wiring convenience.
type RealtimeBus interface {
	RealtimePublisher
	RealtimeSubscriber
}

// RedisRealtimeBus implements RealtimeBus on Redis Pub/Sub so fan-out works
// across server instances.
type RedisRealtimeBus struct {
	client *redis.Client
	logger logger.Interface
}

func NewRedisRealtimeBus(client *redis.Client, logger logger.Interface) *RedisRealtimeBus {
	return &RedisRealtimeBus{
		client: client,
		logger: logger,
	}
}

func (b *RedisRealtimeBus) Publish(ctx context.Context, channel string, event Event) error {
	if event.Timestamp == 0 {
		event.Timestamp = biztime.NowUTC().UnixMilli()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime event: %w", err)
	}

	if err := b.client.Publish(ctx, channelPrefix+channel, data).Err(); err != nil {
		b.logger.Errorw("failed to publish realtime event",
			"channel", channel,
			"event", event.Name,
			"error", err,
		)
		return fmt.Errorf("failed to publish realtime event: %w", err)
	}

	b.logger.Debugw("realtime event published",
		"channel", channel,
		"event", event.Name,
	)
	return nil
}

// Subscribe blocks until ctx is cancelled, reconnecting with exponential
// backoff when the Redis subscription drops.
func (b *RedisRealtimeBus) Subscribe(ctx context.Context, channels []string, handler func(channel string, event Event)) error {
	backoff := time.Second
	maxBackoff := 30 * time.Second

	for {
		err := b.subscribe(ctx, channels, handler)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		b.logger.Warnw("realtime subscription disconnected, reconnecting",
			"channels", channels,
			"error", err,
			"backoff", backoff,
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff = min(backoff*2, maxBackoff)
	}
}

func (b *RedisRealtimeBus) subscribe(ctx context.Context, channels []string, handler func(channel string, event Event)) error {
	prefixed := make([]string, len(channels))
	for i, c := range channels {
		prefixed[i] = channelPrefix + c
	}

	pubsub := b.client.Subscribe(ctx, prefixed...)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to realtime channels: %w", err)
	}

	b.logger.Debugw("subscribed to realtime channels",
		"channels", channels,
	)

	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				return nil
			}

			logical := msg.Channel
			if len(logical) > len(channelPrefix) {
				logical = logical[len(channelPrefix):]
			}

			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				b.logger.Warnw("failed to unmarshal realtime event",
					"channel", logical,
					"error", err,
				)
				continue
			}

			goroutine.SafeGo(b.logger, "realtime-event-handler", func() {
				handler(logical, event)
			})
		}
	}
}
