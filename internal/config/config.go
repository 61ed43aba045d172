package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Catalog contains settings for the marketplace search and lookup API.
type Catalog struct {
	BaseURL         string `toml:"base_url"`
	UserAgent       string `toml:"user_agent"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	LimitPerCountry int    `toml:"limit_per_country"`
	SleepMs         int    `toml:"sleep_ms"`
}

// Matching contains the scoring knobs: enabled match modes, decision
// thresholds, the priority-genre allow-list, and optional weight overrides.
type Matching struct {
	Modes          []string     `toml:"modes"`
	MinScore       float64      `toml:"min_score"`
	MinGap         float64      `toml:"min_gap"`
	PriorityGenres []string     `toml:"priority_genres"`
	Weights        MatchWeights `toml:"weights"`
}

// MatchWeights overrides individual scoring signal weights. Zero values
// keep the built-in defaults.
type MatchWeights struct {
	Exact           float64 `toml:"exact"`
	StartsWith      float64 `toml:"startswith"`
	Contains        float64 `toml:"contains"`
	DevSubstring    float64 `toml:"dev_substring"`
	DevFuzzy        float64 `toml:"dev_fuzzy"`
	DevFuzzyFloor   int     `toml:"dev_fuzzy_floor"`
	BundleExact     float64 `toml:"bundle_exact"`
	BundleSubstring float64 `toml:"bundle_substring"`
	Genre           float64 `toml:"genre"`
}

// Resolver contains run orchestration settings.
type Resolver struct {
	Workers int `toml:"workers"`
}

// Output contains result table destinations.
type Output struct {
	Dir    string `toml:"dir"`
	SQLite bool   `toml:"sqlite"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Country is one storefront/language pair. The configured order is
// observable behavior: first-seen candidate fields and canonical lookups
// both follow it.
type Country struct {
	Code     string
	Language string
}

// Config encapsulates all configuration values for appresolve.
//
// Configuration sections by subsystem:
//   - Catalog: marketplace API endpoints, pacing, and per-country limits
//   - Countries: ordered "code=language" storefront pairs
//   - Matching: match modes, thresholds, priority genres
//   - Resolver: worker count for the run loop
//   - Output: result table directory and SQLite toggle
//   - Logging: log format and level
type Config struct {
	Catalog   Catalog  `toml:"catalog"`
	Countries []string `toml:"countries"`
	Matching  Matching `toml:"matching"`
	Resolver  Resolver `toml:"resolver"`
	Output    Output   `toml:"output"`
	Logging   Logging  `toml:"logging"`

	countries []Country
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/appresolve/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and the country list resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.Normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("appresolve.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// ResolvedCountries returns the parsed storefront list in configured order.
// Only valid after Normalize (Load normalizes automatically).
func (c *Config) ResolvedCountries() []Country {
	out := make([]Country, len(c.countries))
	copy(out, c.countries)
	return out
}

// EnsureOutputDir creates the output directory for a run.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", c.Output.Dir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
