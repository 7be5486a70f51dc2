package outbox

import (
	"time"

	"github.com/google/uuid"
)

// DefaultMaxRetries is the retry budget for tracked instructions when the
// caller does not specify one.
const DefaultMaxRetries = 3

// minRetryInterval is the minimum spacing between sends of the same tracked
// instruction. Never resend faster than this, regardless of tick cadence.
const minRetryInterval = 30 * time.Second

// Urgency prefixes applied by the retry policy. The first retry resends the
// instruction verbatim; later retries escalate.
const (
	prefixImportant = "IMPORTANT: "
	prefixUrgent    = "URGENT: "
)

// Tracked is an instruction awaiting acknowledgment from the remote peer.
type Tracked struct {
	ID         string
	Content    string
	QueuedAt   time.Time
	LastSentAt time.Time
	RetryCount int
	MaxRetries int
}

// QueueWithAck queues content for delivery and tracks it until the remote
// peer acknowledges. Exactly one tracked entry exists per distinct content
// string: if the same content is already tracked, the existing id is
// returned and nothing is re-queued, so callers may safely retry their own
// enqueue. maxRetries <= 0 selects [DefaultMaxRetries].
func (o *Outbox) QueueWithAck(content string, maxRetries int) string {
	o.mu.Lock()
	defer o.mu.Unlock()

	if id, ok := o.byBody[content]; ok {
		return id
	}

	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	now := o.now()
	tr := &Tracked{
		ID:         uuid.NewString(),
		Content:    content,
		QueuedAt:   now,
		LastSentAt: now,
		MaxRetries: maxRetries,
	}
	o.tracked[tr.ID] = tr
	o.byBody[content] = tr.ID
	o.enqueueLocked(content)

	o.logger.Debug("instruction tracked", "id", tr.ID, "max_retries", maxRetries)
	return tr.ID
}

// Acknowledge removes the tracked entry for id. Unknown ids are a no-op:
// the peer may acknowledge after the retry policy already gave up.
func (o *Outbox) Acknowledge(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	tr, ok := o.tracked[id]
	if !ok {
		return
	}
	delete(o.tracked, id)
	delete(o.byBody, tr.Content)
	o.logger.Debug("instruction acknowledged", "id", id, "retries", tr.RetryCount)
}

// TrackedCount returns the number of instructions awaiting acknowledgment.
func (o *Outbox) TrackedCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.tracked)
}

// TrackedByID returns a copy of the tracked entry for id, if present.
func (o *Outbox) TrackedByID(id string) (Tracked, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	tr, ok := o.tracked[id]
	if !ok {
		return Tracked{}, false
	}
	return *tr, true
}

// RetryUnacknowledged re-queues tracked instructions that have gone
// unacknowledged, with escalating urgency. Entries sent within the last
// minRetryInterval are left alone. Entries that exceed their retry budget
// are dropped from tracking; the caller is not notified synchronously.
func (o *Outbox) RetryUnacknowledged() {
	o.mu.Lock()
	defer o.mu.Unlock()

	now := o.now()
	for id, tr := range o.tracked {
		if now.Sub(tr.LastSentAt) < minRetryInterval {
			continue
		}

		tr.RetryCount++
		if tr.RetryCount > tr.MaxRetries {
			delete(o.tracked, id)
			delete(o.byBody, tr.Content)
			o.logger.Warn("instruction dropped after max retries",
				"id", id, "retries", tr.RetryCount-1)
			continue
		}

		o.enqueueLocked(urgencyVariant(tr.Content, tr.RetryCount))
		tr.LastSentAt = now
		o.logger.Debug("instruction re-queued", "id", id, "retry", tr.RetryCount)
	}
}

// urgencyVariant returns the content to resend for the given retry attempt.
// The first retry is verbatim; the second adds a moderate urgency marker;
// the third and beyond add a high urgency marker.
func urgencyVariant(content string, retry int) string {
	switch {
	case retry <= 1:
		return content
	case retry == 2:
		return prefixImportant + content
	default:
		return prefixUrgent + content
	}
}
