// Package config loads, normalizes, and validates appresolve configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and parses the ordered country list into
// country/language pairs. Country order is part of the resolver contract:
// it decides which storefront's fields win when candidates merge and which
// lookup becomes the canonical record, so normalization preserves the
// configured order exactly.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, resolved languages, and clear validation errors.
package config
