// Package event defines the event-type bit-set, event payloads, and result
// aggregation used by the coordination engine.
//
// Events are routed by a capability mask rather than by name: each
// [Type] value is a set of independent bits, and a subscription receives an
// event when its mask intersects the event's mask. A reserved high range of
// the mask (bit 17 and above) holds dynamically allocated timer-identity
// bits, which let two subscriptions share the periodic-timer base bit while
// still receiving only their own ticks.
//
// # Main Types
//
//   - [Type]: uint64 bit-set of event categories
//   - [Data]: opaque key/value event payload
//   - [Result]: one subscriber's outcome for one event
//   - [Outcome]: the merged outcome of a full dispatch, built by [Aggregate]
package event
