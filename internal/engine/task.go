package engine

import (
	"context"

	"github.com/taskwire/taskwire/internal/event"
)

// Task is a subscriber registered with the engine. Implementations must be
// pointer types; the registry identifies a task by pointer identity.
type Task interface {
	// Name returns a short stable identifier used in logs.
	Name() string

	// HandleEvent processes one event. Returning an error (or panicking)
	// is folded into a failure result for this task only; other tasks in
	// the same dispatch still run.
	HandleEvent(ctx context.Context, typ event.Type, data event.Data) (event.Result, error)
}

// Initializer is an optional interface for tasks that need one-time setup.
// OnInit runs during Subscribe, before the subscription is recorded; an
// error aborts the registration.
type Initializer interface {
	OnInit(e *Engine) error
}

// FlagSource resolves named boolean capabilities for RequiresFlag. It is
// implemented by the config package; tasks use flags to self-unsubscribe
// when a feature is disabled.
type FlagSource interface {
	FlagEnabled(name string) bool
}
