// Package logging assembles structured slog loggers and formatting helpers
// used across tagwise.
//
// It owns the console and JSON handlers, the optional per-run log file in
// the configured log directory, and the context helpers that tag log lines
// with correlation IDs and track names. WarnWithContext and ErrorWithContext
// enforce the event_type/error_hint/impact fields every degraded path emits.
// NewNop supplies a discard logger for tests and wiring code that cannot fail.
package logging
