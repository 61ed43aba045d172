package config

import (
	"errors"
	"fmt"
	"strings"
)

var knownModes = map[string]struct{}{
	"exact":      {},
	"startswith": {},
	"contains":   {},
	"fuzzy":      {},
}

// Validate ensures the configuration is usable. Configuration errors are
// fatal before any network activity starts.
func (c *Config) Validate() error {
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateCountries(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateCatalog() error {
	if strings.TrimSpace(c.Catalog.BaseURL) == "" {
		return errors.New("catalog.base_url must be set")
	}
	if c.Catalog.TimeoutSeconds <= 0 {
		return errors.New("catalog.timeout_seconds must be positive")
	}
	if c.Catalog.LimitPerCountry <= 0 {
		return errors.New("catalog.limit_per_country must be positive")
	}
	if c.Catalog.SleepMs < 0 {
		return errors.New("catalog.sleep_ms must not be negative")
	}
	return nil
}

func (c *Config) validateCountries() error {
	if len(c.countries) == 0 {
		return errors.New("countries must list at least one storefront (e.g. [\"gb=en_us\"])")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if len(c.Matching.Modes) == 0 {
		return errors.New("matching.modes must enable at least one match mode")
	}
	for _, mode := range c.Matching.Modes {
		if _, ok := knownModes[mode]; !ok {
			return fmt.Errorf("matching.modes contains unknown mode %q (expected exact, startswith, contains, or fuzzy)", mode)
		}
	}
	if c.Matching.MinScore <= 0 {
		return errors.New("matching.min_score must be positive")
	}
	if c.Matching.MinGap < 0 {
		return errors.New("matching.min_gap must not be negative")
	}
	w := c.Matching.Weights
	for name, value := range map[string]float64{
		"exact":            w.Exact,
		"startswith":       w.StartsWith,
		"contains":         w.Contains,
		"dev_substring":    w.DevSubstring,
		"dev_fuzzy":        w.DevFuzzy,
		"dev_fuzzy_floor":  float64(w.DevFuzzyFloor),
		"bundle_exact":     w.BundleExact,
		"bundle_substring": w.BundleSubstring,
		"genre":            w.Genre,
	} {
		if value < 0 {
			return fmt.Errorf("matching.weights.%s must not be negative", name)
		}
	}
	return nil
}

func (c *Config) validateResolver() error {
	if c.Resolver.Workers <= 0 {
		return errors.New("resolver.workers must be positive")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.New("output.dir must be set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
