package outbox

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a controllable time source for retry spacing tests.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestOutbox() (*Outbox, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	return New(WithClock(clock.Now)), clock
}

func TestQueueWithAck_Idempotent(t *testing.T) {
	o, _ := newTestOutbox()

	id1 := o.QueueWithAck("check build status", 0)
	id2 := o.QueueWithAck("check build status", 0)

	assert.Equal(t, id1, id2, "re-queueing identical content must return the existing id")
	assert.Equal(t, []string{"check build status"}, o.Pending())
	assert.Equal(t, 1, o.TrackedCount())
}

func TestQueueWithAck_DistinctContentDistinctIDs(t *testing.T) {
	o, _ := newTestOutbox()

	id1 := o.QueueWithAck("msg one", 0)
	id2 := o.QueueWithAck("msg two", 0)

	assert.NotEqual(t, id1, id2)
	assert.Equal(t, 2, o.TrackedCount())
}

func TestQueueWithAck_DefaultMaxRetries(t *testing.T) {
	o, _ := newTestOutbox()

	id := o.QueueWithAck("msg", 0)
	tr, ok := o.TrackedByID(id)
	require.True(t, ok)
	assert.Equal(t, DefaultMaxRetries, tr.MaxRetries)
	assert.Equal(t, 0, tr.RetryCount)
	assert.Equal(t, tr.QueuedAt, tr.LastSentAt)
}

func TestAcknowledge_RemovesTracking(t *testing.T) {
	o, clock := newTestOutbox()

	id := o.QueueWithAck("msg", 0)
	o.ClearPending()
	o.Acknowledge(id)

	assert.Equal(t, 0, o.TrackedCount())

	// Acknowledged content must never be retried.
	clock.Advance(31 * time.Second)
	o.RetryUnacknowledged()
	assert.Empty(t, o.Pending())

	// And the content is free to be tracked again under a fresh id.
	id2 := o.QueueWithAck("msg", 0)
	assert.NotEqual(t, id, id2)
}

func TestAcknowledge_UnknownIDIsNoOp(t *testing.T) {
	o, _ := newTestOutbox()
	o.QueueWithAck("msg", 0)

	o.Acknowledge("no-such-id")

	assert.Equal(t, 1, o.TrackedCount())
}

func TestRetryUnacknowledged_RespectsMinSpacing(t *testing.T) {
	o, clock := newTestOutbox()
	o.QueueWithAck("msg", 0)
	o.ClearPending()

	clock.Advance(29 * time.Second)
	o.RetryUnacknowledged()

	assert.Empty(t, o.Pending(), "entries sent under 30s ago must not be resent")

	clock.Advance(2 * time.Second)
	o.RetryUnacknowledged()
	assert.Equal(t, []string{"msg"}, o.Pending())
}

func TestRetryUnacknowledged_UrgencyEscalation(t *testing.T) {
	o, clock := newTestOutbox()
	o.QueueWithAck("msg", 5)

	retry := func() []string {
		o.ClearPending()
		clock.Advance(31 * time.Second)
		o.RetryUnacknowledged()
		return o.Pending()
	}

	assert.Equal(t, []string{"msg"}, retry(), "1st retry resends verbatim")
	assert.Equal(t, []string{"IMPORTANT: msg"}, retry(), "2nd retry escalates to moderate urgency")
	assert.Equal(t, []string{"URGENT: msg"}, retry(), "3rd retry escalates to high urgency")
	assert.Equal(t, []string{"URGENT: msg"}, retry(), "later retries stay at high urgency")
}

func TestRetryUnacknowledged_GivesUpAfterMaxRetries(t *testing.T) {
	o, clock := newTestOutbox()
	o.QueueWithAck("msg", 2)

	for i := 0; i < 2; i++ {
		o.ClearPending()
		clock.Advance(31 * time.Second)
		o.RetryUnacknowledged()
		require.Equal(t, 1, o.TrackedCount(), "entry survives retry %d", i+1)
	}

	// Third pass exceeds MaxRetries: the entry is dropped, nothing queued.
	o.ClearPending()
	clock.Advance(31 * time.Second)
	o.RetryUnacknowledged()

	assert.Equal(t, 0, o.TrackedCount())
	assert.Empty(t, o.Pending())
}

func TestRetryUnacknowledged_UpdatesLastSent(t *testing.T) {
	o, clock := newTestOutbox()
	id := o.QueueWithAck("msg", 5)

	o.ClearPending()
	clock.Advance(31 * time.Second)
	o.RetryUnacknowledged()

	tr, ok := o.TrackedByID(id)
	require.True(t, ok)
	assert.Equal(t, clock.Now(), tr.LastSentAt)
	assert.Equal(t, 1, tr.RetryCount)
}
