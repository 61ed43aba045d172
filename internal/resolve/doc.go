// Package resolve implements the identity resolution engine: it aggregates
// search candidates across storefronts, scores them against the query and
// its aliases, decides between auto-confirm and manual review, and dedups
// confirmed identifiers across the run.
//
// The Resolver walks each query through four steps. Candidate aggregation
// merges per-storefront search hits by track identifier; the first
// storefront to surface an identifier supplies its fields, later ones only
// extend the found-in set. The Scorer computes a per-signal breakdown
// (name match modes plus developer, bundle, and genre bonuses) that is
// retained in full for audit output. Decide applies the min-score and
// min-gap thresholds: a high top score with a near-tied runner-up is not
// auto-confirmed. Confirmed winners claim their identifier in the shared
// Ledger, then a canonical record is re-fetched in storefront order.
//
// Queries are independent except for the Ledger, whose check-and-insert is
// a single synchronized operation, so the run loop can process queries
// concurrently when configured with more than one worker.
package resolve
