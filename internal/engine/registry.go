package engine

import (
	"fmt"
	"time"
	"weak"

	"github.com/taskwire/taskwire/internal/event"
)

// subscription is one registration in the registry. The subscriber is held
// through a weak resolve func so the registry never extends its lifetime;
// resolve returns nil once the subscriber has been collected, and such dead
// entries are purged lazily during any full scan.
//
// Invariant: interval > 0 if and only if timerBit != 0.
type subscription struct {
	name    string
	resolve func() Task

	// types is the effective routing mask: the caller's mask plus, for
	// timer subscriptions, the periodic-timer bit and the identity bit.
	types event.Type

	// originalTypes is the mask the caller asked for, used to test
	// interest in non-timer events on a timer-bearing subscription.
	originalTypes event.Type

	timerBit  event.Type
	interval  time.Duration
	lastFired time.Time
}

// Subscribe registers subscriber for every event category in types. A
// positive interval additionally schedules a periodic timer for this
// subscription: the registry allocates the next timer-identity bit and ORs
// it, together with the periodic-timer base bit, into the stored mask, so
// the subscription receives only its own ticks. A negative interval is
// rejected; zero means no timer.
//
// Subscribe is a package-level generic function because it needs the
// subscriber's concrete pointer type to build a weak reference.
func Subscribe[S any, PT interface {
	Task
	*S
}](e *Engine, subscriber PT, types event.Type, interval time.Duration) error {
	if subscriber == nil {
		return ErrNilSubscriber
	}
	if interval < 0 {
		return ErrInvalidInterval
	}

	if init, ok := any(subscriber).(Initializer); ok {
		if err := init.OnInit(e); err != nil {
			return fmt.Errorf("engine: init %s: %w", subscriber.Name(), err)
		}
	}

	ref := weak.Make((*S)(subscriber))
	resolve := func() Task {
		if p := ref.Value(); p != nil {
			return PT(p)
		}
		return nil
	}

	e.addSubscription(subscriber.Name(), resolve, types, interval)
	return nil
}

func (e *Engine) addSubscription(name string, resolve func() Task, types event.Type, interval time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()

	sub := &subscription{
		name:          name,
		resolve:       resolve,
		types:         types,
		originalTypes: types,
		interval:      interval,
	}
	if interval > 0 {
		bit := e.nextTimerBit
		e.nextTimerBit <<= 1
		sub.timerBit = bit
		sub.types = types | event.TypeTimer | bit
		sub.lastFired = time.Now()
		e.logger.Debug("timer subscription registered",
			"task", name, "interval", interval, "identity_bit", uint64(bit))
	} else {
		e.logger.Debug("subscription registered", "task", name)
	}
	e.subs = append(e.subs, sub)
}

// Unsubscribe removes every subscription whose resolved subscriber is
// identical to subscriber (pointer identity, not equality). Dead entries
// encountered during the scan are dropped as well. A subscriber with no
// matching subscription is a no-op.
func (e *Engine) Unsubscribe(subscriber Task) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.subs[:0]
	for _, s := range e.subs {
		resolved := s.resolve()
		if resolved == nil || resolved == subscriber {
			continue
		}
		kept = append(kept, s)
	}
	// Zero trailing slots so removed entries do not pin their closures.
	for i := len(kept); i < len(e.subs); i++ {
		e.subs[i] = nil
	}
	e.subs = kept
}

// SubscriptionCount returns the number of live subscriptions, purging any
// whose subscriber has been collected.
func (e *Engine) SubscriptionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.purgeLocked()
	return len(e.subs)
}

// timerSubscriptionCount returns the number of live timer-bearing
// subscriptions.
func (e *Engine) timerSubscriptionCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.purgeLocked()

	n := 0
	for _, s := range e.subs {
		if s.timerBit != 0 {
			n++
		}
	}
	return n
}

// purgeLocked drops subscriptions whose subscriber has been collected.
// Caller must hold e.mu.
func (e *Engine) purgeLocked() {
	kept := e.subs[:0]
	for _, s := range e.subs {
		if s.resolve() == nil {
			continue
		}
		kept = append(kept, s)
	}
	for i := len(kept); i < len(e.subs); i++ {
		e.subs[i] = nil
	}
	e.subs = kept
}

// TaskOfType returns the first live subscriber whose dynamic type is
// exactly T. Registering several instances of a nominally singleton task
// type is almost always a bug, so multiple matches log a warning; the first
// match is still returned.
func TaskOfType[T Task](e *Engine) (T, bool) {
	var first T

	e.mu.Lock()
	e.purgeLocked()
	tasks := make([]Task, 0, len(e.subs))
	for _, s := range e.subs {
		if t := s.resolve(); t != nil {
			tasks = append(tasks, t)
		}
	}
	e.mu.Unlock()

	// A task registered under several subscriptions resolves to the same
	// pointer each time; count distinct instances, not subscriptions.
	matches := 0
	seen := make(map[Task]struct{}, len(tasks))
	for _, t := range tasks {
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		if v, ok := t.(T); ok {
			if matches == 0 {
				first = v
			}
			matches++
		}
	}

	if matches == 0 {
		return first, false
	}
	if matches > 1 {
		e.logger.Warn("multiple subscribers of the same task type",
			"type", fmt.Sprintf("%T", first), "count", matches)
	}
	return first, true
}
