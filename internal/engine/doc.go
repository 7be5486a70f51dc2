// Package engine implements the task coordination core: a process-local
// publish/subscribe dispatcher that routes events from the remote peer and
// from the built-in timer scheduler to registered tasks, and an outbound
// instruction queue with acknowledgment tracking and retry.
//
// # Main Types
//
//   - [Task]: interface implemented by every subscriber
//   - [Engine]: owns the subscription registry, timer scheduler, outbox,
//     cached key/value store, and feature-flag lookup
//
// # Subscriptions
//
// Tasks register with [Subscribe], a package-level generic function (Go
// methods cannot carry type parameters). The registry keeps only a weak
// reference to each subscriber: the engine is never the reason a task stays
// alive, and a task dropped by its owner simply stops receiving events.
// Subscriptions that request a timer interval are assigned a unique
// timer-identity bit from the high range of the event mask, so concurrent
// timer subscriptions receive only their own ticks.
//
// # Concurrency
//
// A single mutex guards the subscription list and the identity-bit counter.
// It is held only for list edits, never across a handler call, so handlers
// may freely subscribe or unsubscribe. Dispatch invokes matching handlers
// sequentially in registration order; a panicking or failing handler is
// folded into its own failure result and never stops the others.
//
// # Basic Usage
//
//	e := engine.New(engine.WithLogger(logger))
//	if err := engine.Subscribe(e, watcher, event.TypeFileContent, 0); err != nil {
//		return err
//	}
//	if err := e.Start(ctx); err != nil {
//		return err
//	}
//	defer e.Stop()
//
//	out := e.DispatchEvent(ctx, event.TypeFileContent, event.Data{
//		"path":    "notes/plan.md",
//		"content": body,
//	})
package engine
