// Package logging provides structured logging for the coordination engine.
// It wraps log/slog to emit JSON-formatted entries, with child loggers that
// carry persistent attributes (component, task, event category) so engine
// activity can be filtered after the fact.
//
// # Main Types
//
//   - [Logger]: slog wrapper with persistent attributes and child loggers
//   - [RotatingWriter]: size-based log rotation for long-running engines
//
// A Logger created with an empty directory writes to stderr; [NopLogger]
// discards everything and is the default for library components.
package logging
