// Package queryset loads resolver queries from the two supported input
// sources: a plain names file (one query per line) and a hint table (CSV
// with alias columns).
//
// Parsing is deliberately tolerant: ragged CSV rows are accepted, header
// names match case-insensitively, and rows without a query name are
// skipped. Exactly one source must be supplied per run; the CLI enforces
// that before any network activity.
package queryset
