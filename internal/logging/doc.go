// Package logging assembles the structured slog loggers used across
// pictura components.
//
// It owns the console and JSON handler construction, centralizes level and
// output plumbing, and exposes small attribute helpers plus a no-op logger
// for tests and wiring code that cannot fail. Prefer these constructors
// over hand-rolled slog setup so every component emits log lines with the
// same shape.
package logging
