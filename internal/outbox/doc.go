// Package outbox is the engine's outbound mailbox: an ordered, deduplicated
// list of instruction strings awaiting delivery to the remote peer, plus
// acknowledgment tracking for instructions that must be confirmed.
//
// The pending list is the single channel through which the transport layer
// discovers what to send next; it drains the list with [Outbox.Drain] and,
// for tracked instructions, calls [Outbox.Acknowledge] once the peer
// confirms. Tracked instructions that go unacknowledged are re-queued by
// [Outbox.RetryUnacknowledged] with escalating urgency until they exceed
// their retry budget, after which they are dropped.
//
// Delivery is at-least-once: a retry can race a late acknowledgment, so
// acknowledging an unknown id is a harmless no-op.
package outbox
