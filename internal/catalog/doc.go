// Package catalog provides access to the iTunes Search API for per-country
// app searches and identifier lookups.
//
// Both calls are best-effort: the resolver treats an error as an empty
// result for that storefront rather than aborting the run. A per-country
// pacer inserts a courtesy delay between consecutive calls to the same
// storefront; calls to different storefronts are never serialized against
// each other.
package catalog
