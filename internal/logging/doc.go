// Package logging assembles structured slog loggers and formatting helpers
// used across wadmaps.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so a scan run can tag every
// log line with its run id. The package also provides a no-op logger for
// tests and for library code that is handed a nil logger.
//
// Prefer these constructors over hand-rolled slog setup so new components
// emit records with the same keys as the rest of the tool.
package logging
