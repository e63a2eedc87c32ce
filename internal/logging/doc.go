// Package logging centralizes slog construction and helpers for photozip.
//
// It builds console or JSON handlers writing to stderr and to the run's
// photozip.log file, exposes typed attribute helpers, standardized field
// keys, a no-op logger for tests, and context plumbing that stamps run and
// group identifiers onto every record emitted inside a run.
package logging
