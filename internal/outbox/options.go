package outbox

import (
	"time"

	"github.com/taskwire/taskwire/internal/logging"
)

// Option configures an Outbox.
type Option func(*Outbox)

// WithLogger attaches a logger. The default discards all output.
func WithLogger(logger *logging.Logger) Option {
	return func(o *Outbox) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithClock overrides the time source used for tracking timestamps and
// retry spacing. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(o *Outbox) {
		if now != nil {
			o.now = now
		}
	}
}
