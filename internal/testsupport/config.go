package testsupport

import (
	"path/filepath"
	"testing"

	"appresolve/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with a unique temp output directory
// per test. It defaults common fields, applies any provided options, and
// normalizes the result.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Output.Dir = filepath.Join(t.TempDir(), "out")
	cfgVal.Catalog.SleepMs = 0

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}
	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.Normalize(); err != nil {
		t.Fatalf("normalize test config: %v", err)
	}
	return builder.cfg
}

// WithCountries overrides the storefront list ("code=language" pairs).
func WithCountries(countries ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Countries = countries
	}
}

// WithModes overrides the enabled match modes.
func WithModes(modes ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.Modes = modes
	}
}

// WithThresholds overrides the confirmation thresholds.
func WithThresholds(minScore, minGap float64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.MinScore = minScore
		b.cfg.Matching.MinGap = minGap
	}
}

// WithWorkers overrides the resolver worker count.
func WithWorkers(workers int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Resolver.Workers = workers
	}
}

// WithSQLite toggles the results database.
func WithSQLite(enabled bool) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.SQLite = enabled
	}
}
