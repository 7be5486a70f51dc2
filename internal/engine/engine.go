package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/taskwire/taskwire/internal/event"
	"github.com/taskwire/taskwire/internal/logging"
	"github.com/taskwire/taskwire/internal/outbox"
)

// Defaults for engine tuning. All are overridable via options.
const (
	defaultTimerQuantum       = 25 * time.Millisecond
	defaultRetryCheckInterval = 30 * time.Second
	defaultRetryGraceTicks    = 3
)

// Sentinel errors returned by engine operations.
var (
	ErrInvalidInterval = errors.New("engine: timer interval must be positive")
	ErrNilSubscriber   = errors.New("engine: subscriber must not be nil")
)

// Engine is the coordination core for one agent session. It owns the
// subscription registry, the timer scheduler, the outbound instruction
// queue, and a small cache tasks use to share state. Create one with New;
// the zero value is not usable.
type Engine struct {
	mu           sync.Mutex
	subs         []*subscription
	nextTimerBit event.Type

	started bool
	cancel  context.CancelFunc
	stopped chan struct{}

	// retryDriver holds the engine's own strong reference to the built-in
	// retry task while it is subscribed. Everything else in subs is weak.
	retryDriver *retryDriver

	cacheMu sync.RWMutex
	cache   map[string]any

	out    *outbox.Outbox
	logger *logging.Logger
	flags  FlagSource

	quantum       time.Duration
	retryInterval time.Duration
	graceTicks    int
}

// New creates an Engine with an empty registry and outbox.
func New(opts ...Option) *Engine {
	e := &Engine{
		nextTimerBit:  event.TimerIdentityBase,
		cache:         make(map[string]any),
		logger:        logging.NopLogger(),
		quantum:       defaultTimerQuantum,
		retryInterval: defaultRetryCheckInterval,
		graceTicks:    defaultRetryGraceTicks,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.out == nil {
		e.out = outbox.New(outbox.WithLogger(e.logger))
	}
	return e
}

// Start launches the timer scheduler. Returns an error if already started.
// Call Stop to shut the scheduler down.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return errors.New("engine: already started")
	}
	ctx, cancel := context.WithCancel(ctx)
	e.started = true
	e.cancel = cancel
	e.stopped = make(chan struct{})
	stopped := e.stopped
	e.mu.Unlock()

	go e.timerLoop(ctx, stopped)
	return nil
}

// Stop cancels the timer scheduler and waits for it to exit. No timer
// events are dispatched after Stop returns. Safe to call when not started.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started {
		e.mu.Unlock()
		return
	}
	e.started = false
	cancel := e.cancel
	stopped := e.stopped
	e.mu.Unlock()

	cancel()
	<-stopped
}

// QueueInstruction appends a fire-and-forget instruction for the remote
// peer, skipping insertion if the identical string is already pending.
func (e *Engine) QueueInstruction(content string) {
	e.out.Queue(content)
}

// QueueInstructionWithAck queues an instruction that the remote peer must
// acknowledge, returning its tracking id. Duplicate content returns the
// existing id. The built-in retry driver is subscribed on first use so
// unacknowledged instructions are eventually resent.
func (e *Engine) QueueInstructionWithAck(content string) string {
	id := e.out.QueueWithAck(content, 0)
	e.ensureRetryDriver()
	return id
}

// AcknowledgeInstruction marks a tracked instruction as delivered. Unknown
// ids are ignored; acknowledgments may arrive after the engine gave up.
func (e *Engine) AcknowledgeInstruction(id string) {
	e.out.Acknowledge(id)
}

// QueueEmpty reports whether no instructions are pending delivery.
func (e *Engine) QueueEmpty() bool {
	return e.out.Empty()
}

// Outbox exposes the outbound instruction queue for the transport layer.
func (e *Engine) Outbox() *outbox.Outbox {
	return e.out
}

// SetCachedData stores a value tasks can share with other tasks or with
// context-building collaborators. Values are treated opaquely.
func (e *Engine) SetCachedData(key string, value any) {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.cache[key] = value
}

// CachedData returns the value stored under key, if any.
func (e *Engine) CachedData(key string) (any, bool) {
	e.cacheMu.RLock()
	defer e.cacheMu.RUnlock()
	v, ok := e.cache[key]
	return v, ok
}

// ClearCachedData drops every cached entry.
func (e *Engine) ClearCachedData() {
	e.cacheMu.Lock()
	defer e.cacheMu.Unlock()
	e.cache = make(map[string]any)
}

// RequiresFlag reports whether the named capability is enabled. Without a
// configured FlagSource every flag reads as disabled.
func (e *Engine) RequiresFlag(name string) bool {
	if e.flags == nil {
		return false
	}
	return e.flags.FlagEnabled(name)
}
