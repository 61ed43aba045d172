// Package logging constructs the slog loggers used across appresolve.
//
// Two output formats are supported: "console", a compact single-line
// format for interactive runs, and "json" for machine consumption. The
// resolver attaches a component attribute per subsystem; the console
// handler promotes it into the message prefix so warnings from individual
// storefront calls stay readable during long runs.
package logging
