package engine

import (
	"time"

	"github.com/taskwire/taskwire/internal/logging"
	"github.com/taskwire/taskwire/internal/outbox"
)

// Option configures an Engine.
type Option func(*Engine)

// WithLogger attaches a logger. The default discards all output.
func WithLogger(logger *logging.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithFlagSource sets the resolver behind RequiresFlag. Without one every
// flag reads as disabled.
func WithFlagSource(fs FlagSource) Option {
	return func(e *Engine) { e.flags = fs }
}

// WithOutbox substitutes the outbound instruction queue. Intended for tests
// that need a clock-injected outbox.
func WithOutbox(o *outbox.Outbox) Option {
	return func(e *Engine) {
		if o != nil {
			e.out = o
		}
	}
}

// WithTimerQuantum sets the scheduler wake interval. Finer quanta honor
// shorter timer intervals at the cost of more wakeups. Non-positive values
// are ignored.
func WithTimerQuantum(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.quantum = d
		}
	}
}

// WithRetryCheckInterval sets the timer interval of the built-in retry
// driver. Non-positive values are ignored.
func WithRetryCheckInterval(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.retryInterval = d
		}
	}
}

// WithRetryGraceTicks sets how many consecutive idle ticks the retry driver
// waits before unsubscribing itself. Non-positive values are ignored.
func WithRetryGraceTicks(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.graceTicks = n
		}
	}
}
