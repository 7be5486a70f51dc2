package engine

import (
	"context"

	"github.com/taskwire/taskwire/internal/event"
)

// retryDriver is the built-in subscriber that drives the outbox retry
// policy. It subscribes itself on the first tracked enqueue and, once
// tracking has been idle for graceTicks consecutive ticks, unsubscribes.
// It only stands down while it is the sole remaining timer subscription,
// so it never tears down timer infrastructure other tasks still use.
type retryDriver struct {
	engine    *Engine
	grace     int
	idleTicks int
}

func (d *retryDriver) Name() string { return "retry-driver" }

func (d *retryDriver) HandleEvent(ctx context.Context, typ event.Type, data event.Data) (event.Result, error) {
	e := d.engine

	if e.out.TrackedCount() == 0 {
		d.idleTicks++
		if d.idleTicks >= d.grace && e.timerSubscriptionCount() == 1 {
			e.logger.Debug("retry driver idle, unsubscribing", "idle_ticks", d.idleTicks)
			e.Unsubscribe(d)
			e.releaseRetryDriver(d)
		}
		return event.Result{OK: true}, nil
	}
	d.idleTicks = 0

	// Retries wait until the pending queue has drained.
	if e.out.Empty() {
		e.out.RetryUnacknowledged()
	}
	return event.Result{OK: true}, nil
}

// ensureRetryDriver subscribes the built-in retry driver if it is not
// already running. The engine keeps the only strong reference to it; the
// weak registry entry alone would not keep it alive.
func (e *Engine) ensureRetryDriver() {
	e.mu.Lock()
	if e.retryDriver != nil {
		e.mu.Unlock()
		return
	}
	d := &retryDriver{engine: e, grace: e.graceTicks}
	e.retryDriver = d
	interval := e.retryInterval
	e.mu.Unlock()

	if err := Subscribe(e, d, 0, interval); err != nil {
		// Only reachable with a negative configured interval; drop the
		// driver rather than carry a dead reservation.
		e.logger.Error("retry driver subscription failed", "error", err)
		e.releaseRetryDriver(d)
	}
}

// releaseRetryDriver clears the engine's strong reference so a later
// tracked enqueue can start a fresh driver.
func (e *Engine) releaseRetryDriver(d *retryDriver) {
	e.mu.Lock()
	if e.retryDriver == d {
		e.retryDriver = nil
	}
	e.mu.Unlock()
}
