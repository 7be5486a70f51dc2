package engine

import (
	"context"
	"time"

	"github.com/taskwire/taskwire/internal/event"
)

// timerLoop is the engine's single background scheduler goroutine. It wakes
// every quantum and fires a timer event for each timer subscription whose
// interval has elapsed since its last tick. Precision is bounded by the
// quantum; jitter of one quantum is acceptable.
func (e *Engine) timerLoop(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(e.quantum)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			e.fireDueTimers(ctx)
		}
	}
}

// fireDueTimers dispatches a tick for every due timer subscription. Each
// tick carries the periodic-timer base bit ORed with the owning
// subscription's identity bit, so only that subscription's handler fires. A
// panic from one tick is contained here so the loop survives for later
// ticks.
func (e *Engine) fireDueTimers(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("timer tick panicked", "panic", r)
		}
	}()

	type tick struct {
		mask     event.Type
		interval time.Duration
	}

	now := time.Now()

	e.mu.Lock()
	var due []tick
	kept := e.subs[:0]
	for _, s := range e.subs {
		if s.resolve() == nil {
			continue
		}
		kept = append(kept, s)
		if s.timerBit == 0 {
			continue
		}
		if now.Sub(s.lastFired) >= s.interval {
			due = append(due, tick{mask: event.TypeTimer | s.timerBit, interval: s.interval})
			s.lastFired = now
		}
	}
	for i := len(kept); i < len(e.subs); i++ {
		e.subs[i] = nil
	}
	e.subs = kept
	e.mu.Unlock()

	for _, t := range due {
		if ctx.Err() != nil {
			return
		}
		e.DispatchEvent(ctx, t.mask, event.Data{"interval": t.interval})
	}
}
