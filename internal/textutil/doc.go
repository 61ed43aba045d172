// Package textutil provides the text normalization helpers shared by the
// scoring engine, canonicalizer, and report writers.
//
// Marketplace catalogs mix scripts and casing freely (the same app can
// surface as "PERIOD TRACKER" in one storefront and "Period tracker" in
// another), so every comparison in the resolver goes through Normalize
// rather than ad-hoc strings.ToLower calls.
package textutil
