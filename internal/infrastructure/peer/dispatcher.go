package peer

import (
	"context"
	"time"

	"github.com/loopdesk/loopdesk/internal/domain/sync"
	"github.com/loopdesk/loopdesk/internal/shared/goroutine"
	"github.com/loopdesk/loopdesk/internal/shared/logger"
)

// RetryStrategy decides whether a failed delivery gets another attempt and
// how long to wait before it. attempt starts at 1 for the first failure.
type RetryStrategy interface {
	NextDelay(attempt int) (time.Duration, bool)
}

// NoRetry is the default strategy: a failed delivery is logged and dropped.
// The peer systems reconcile through their own durable state, so a lost
// webhook degrades freshness, not correctness.
type NoRetry struct{}

func (NoRetry) NextDelay(int) (time.Duration, bool) { return 0, false }

// FixedBackoff retries up to MaxAttempts extra deliveries with a constant
// delay between them.
type FixedBackoff struct {
	Delay       time.Duration
	MaxAttempts int
}

func (s FixedBackoff) NextDelay(attempt int) (time.Duration, bool) {
	if attempt > s.MaxAttempts {
		return 0, false
	}
	return s.Delay, true
}

// Dispatcher fires webhook events at the peer without blocking the caller.
// Local mutations must never fail because the counterpart is down.
type Dispatcher struct {
	client Client
	retry  RetryStrategy
	logger logger.Interface
}

func NewDispatcher(client Client, retry RetryStrategy, log logger.Interface) *Dispatcher {
	if retry == nil {
		retry = NoRetry{}
	}
	return &Dispatcher{
		client: client,
		retry:  retry,
		logger: log,
	}
}

// Dispatch sends the event on a background goroutine and returns immediately.
// Failures are logged and swallowed.
func (d *Dispatcher) Dispatch(kind sync.EventKind, payload interface{}) {
	goroutine.SafeGo(d.logger, "peer-dispatch-"+string(kind), func() {
		d.deliver(kind, payload)
	})
}

func (d *Dispatcher) deliver(kind sync.EventKind, payload interface{}) {
	attempt := 0
	for {
		err := d.client.Post(context.Background(), kind, payload)
		if err == nil {
			d.logger.Debugw("peer event delivered",
				"event", kind,
				"attempt", attempt+1,
			)
			return
		}

		attempt++
		delay, again := d.retry.NextDelay(attempt)
		if !again {
			d.logger.Warnw("peer event delivery failed, dropping",
				"event", kind,
				"attempts", attempt,
				"error", err,
			)
			return
		}

		d.logger.Debugw("peer event delivery failed, retrying",
			"event", kind,
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
		time.Sleep(delay)
	}
}
