// Package report persists run results: the confirmed ledger, the review
// queue, and the raw candidate audit table as CSV files, plus an optional
// SQLite database that keeps the same tables across runs.
//
// CSV files are written to a temporary file and renamed into place so a
// crashed run never leaves a truncated report behind. The SQLite store is
// append-only per run; each run is keyed by its run id.
package report
