package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"appresolve/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	oldWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(tempHome); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWd); err != nil {
			t.Errorf("restore wd: %v", err)
		}
	})

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	if cfg.Catalog.BaseURL != "https://itunes.apple.com" {
		t.Fatalf("unexpected base url: %q", cfg.Catalog.BaseURL)
	}
	if cfg.Catalog.LimitPerCountry != 25 {
		t.Fatalf("unexpected per-country limit: %d", cfg.Catalog.LimitPerCountry)
	}
	if cfg.Matching.MinScore != 80 || cfg.Matching.MinGap != 8 {
		t.Fatalf("unexpected thresholds: %v/%v", cfg.Matching.MinScore, cfg.Matching.MinGap)
	}
	if cfg.Resolver.Workers != 1 {
		t.Fatalf("unexpected worker count: %d", cfg.Resolver.Workers)
	}
	if !strings.HasSuffix(cfg.Output.Dir, "out_resolve") {
		t.Fatalf("unexpected output dir: %q", cfg.Output.Dir)
	}

	countries := cfg.ResolvedCountries()
	if len(countries) != 2 {
		t.Fatalf("expected two default storefronts, got %v", countries)
	}
	if countries[0].Code != "gb" || countries[0].Language != "en_us" {
		t.Fatalf("unexpected first storefront: %+v", countries[0])
	}
	if countries[1].Code != "jp" || countries[1].Language != "ja_jp" {
		t.Fatalf("unexpected second storefront: %+v", countries[1])
	}
}

func TestLoadParsesFileAndPreservesCountryOrder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
countries = ["jp", "de=de_de", "us"]

[matching]
modes = ["exact", "fuzzy"]
min_score = 85.5
min_gap = 10

[output]
dir = "` + filepath.Join(dir, "results") + `"
sqlite = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}

	countries := cfg.ResolvedCountries()
	want := []config.Country{
		{Code: "jp", Language: "ja_jp"},
		{Code: "de", Language: "de_de"},
		{Code: "us", Language: "en_us"},
	}
	if len(countries) != len(want) {
		t.Fatalf("unexpected storefronts: %v", countries)
	}
	for i := range want {
		if countries[i] != want[i] {
			t.Fatalf("storefront %d: got %+v want %+v", i, countries[i], want[i])
		}
	}

	if cfg.Matching.MinScore != 85.5 {
		t.Fatalf("unexpected min_score: %v", cfg.Matching.MinScore)
	}
	if !cfg.Output.SQLite {
		t.Fatal("expected sqlite output enabled")
	}
}

func TestLoadRejectsMalformedCountryPair(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("countries = [\"gb=\"]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for malformed country pair")
	}
}

func TestLoadRejectsDuplicateStorefront(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("countries = [\"gb\", \"GB=en_us\"]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for duplicate storefront")
	}
}

func TestLoadRejectsUnknownMatchMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[matching]\nmodes = [\"soundex\"]\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if !strings.Contains(err.Error(), "soundex") {
		t.Fatalf("error should name the offending mode: %v", err)
	}
}

func TestLoadParsesWeightOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[matching.weights]\nbundle_exact = 30.0\ngenre = 5.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Matching.Weights.BundleExact != 30 || cfg.Matching.Weights.Genre != 5 {
		t.Fatalf("unexpected weight overrides: %+v", cfg.Matching.Weights)
	}
	if cfg.Matching.Weights.Exact != 0 {
		t.Fatalf("unset weights must stay zero (defaulted downstream): %+v", cfg.Matching.Weights)
	}
}

func TestLoadRejectsNegativeWeight(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "[matching.weights]\ncontains = -1.0\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := config.Load(path); err == nil {
		t.Fatal("expected error for negative weight")
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Catalog.SleepMs != 400 {
		t.Fatalf("unexpected sleep_ms from sample: %d", cfg.Catalog.SleepMs)
	}
}
