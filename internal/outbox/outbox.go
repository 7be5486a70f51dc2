package outbox

import (
	"sync"
	"time"

	"github.com/taskwire/taskwire/internal/logging"
)

// Outbox holds instructions awaiting delivery to the remote peer.
// All methods are safe for concurrent use via an internal mutex.
type Outbox struct {
	mu      sync.Mutex
	pending []string
	tracked map[string]*Tracked // id -> tracked instruction
	byBody  map[string]string   // content -> id, for idempotent tracked enqueue

	logger *logging.Logger
	now    func() time.Time
}

// New creates an empty Outbox.
func New(opts ...Option) *Outbox {
	o := &Outbox{
		tracked: make(map[string]*Tracked),
		byBody:  make(map[string]string),
		logger:  logging.NopLogger(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Queue appends content to the pending list unless an identical string is
// already waiting. Fire-and-forget: no tracking, no return value.
func (o *Outbox) Queue(content string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.enqueueLocked(content)
}

// enqueueLocked appends content if absent. Caller must hold o.mu.
func (o *Outbox) enqueueLocked(content string) {
	for _, existing := range o.pending {
		if existing == content {
			return
		}
	}
	o.pending = append(o.pending, content)
}

// Drain returns every pending instruction in queue order and clears the
// list. The transport layer calls this to discover what to send next.
func (o *Outbox) Drain() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := o.pending
	o.pending = nil
	return out
}

// Pending returns a copy of the pending list without clearing it.
func (o *Outbox) Pending() []string {
	o.mu.Lock()
	defer o.mu.Unlock()

	out := make([]string, len(o.pending))
	copy(out, o.pending)
	return out
}

// Empty reports whether no instructions are waiting for delivery.
func (o *Outbox) Empty() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.pending) == 0
}

// ClearPending drops all pending instructions without touching tracking
// state. Tracked instructions will resurface through the retry policy.
func (o *Outbox) ClearPending() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.pending = nil
}
