// Package logging wraps log/slog with the attribute helpers and handler
// wiring used across podscribe. Components receive a child logger tagged
// with their component name; tests use the no-op logger.
package logging
