package engine

import (
	"context"
	"fmt"

	"github.com/taskwire/taskwire/internal/event"
)

// DispatchEvent routes one event to every live subscription whose mask
// intersects typ, invokes each matching subscriber in registration order,
// and merges their results. An event matching no subscription is silently
// acknowledged: absence of interest is normal, not an error.
//
// Handler failures never escape: a returned error or a panic becomes a
// failure result for that subscriber alone, and the remaining subscribers
// still run.
func (e *Engine) DispatchEvent(ctx context.Context, typ event.Type, data event.Data) event.Outcome {
	type target struct {
		task Task
		name string
	}

	// Snapshot matching live subscribers under the lock, purging dead
	// entries as a side effect. Handlers run after the lock is released so
	// they may subscribe or unsubscribe without deadlocking.
	e.mu.Lock()
	var targets []target
	kept := e.subs[:0]
	for _, s := range e.subs {
		resolved := s.resolve()
		if resolved == nil {
			continue
		}
		kept = append(kept, s)
		if !s.types.Intersects(typ) {
			continue
		}
		targets = append(targets, target{task: resolved, name: s.name})
	}
	for i := len(kept); i < len(e.subs); i++ {
		e.subs[i] = nil
	}
	e.subs = kept
	e.mu.Unlock()

	if len(targets) == 0 {
		return event.Outcome{OK: true}
	}

	results := make([]event.Result, 0, len(targets))
	for _, tg := range targets {
		results = append(results, e.invoke(ctx, tg.task, tg.name, typ, data))
	}
	return event.Aggregate(results)
}

// invoke calls one subscriber's handler, folding errors and panics into a
// failure result for that subscriber.
func (e *Engine) invoke(ctx context.Context, task Task, name string, typ event.Type, data event.Data) (res event.Result) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("subscriber panicked",
				"task", name, "event", typ.String(), "panic", r)
			res = event.Failure(fmt.Sprintf("%s: panic: %v", name, r))
		}
	}()

	result, err := task.HandleEvent(ctx, typ, data)
	if err != nil {
		e.logger.Warn("subscriber failed",
			"task", name, "event", typ.String(), "error", err)
		return event.Failure(err.Error())
	}
	return result
}
