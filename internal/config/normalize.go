package config

import (
	"fmt"
	"strings"
)

// Normalize expands paths, resolves the country list, and fills defaulted
// fields. It must run before Validate.
func (c *Config) Normalize() error {
	expandedOut, err := expandPath(c.Output.Dir)
	if err != nil {
		return err
	}
	c.Output.Dir = expandedOut

	countries, err := parseCountries(c.Countries)
	if err != nil {
		return err
	}
	c.countries = countries

	c.Catalog.BaseURL = strings.TrimRight(strings.TrimSpace(c.Catalog.BaseURL), "/")
	c.Catalog.UserAgent = strings.TrimSpace(c.Catalog.UserAgent)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	modes := make([]string, 0, len(c.Matching.Modes))
	for _, mode := range c.Matching.Modes {
		trimmed := strings.ToLower(strings.TrimSpace(mode))
		if trimmed != "" {
			modes = append(modes, trimmed)
		}
	}
	c.Matching.Modes = modes

	return nil
}

// parseCountries turns "code=language" entries into ordered Country values.
// A bare "code" entry resolves its language from the built-in defaults,
// falling back to en_us. Order is preserved; duplicates are rejected.
func parseCountries(entries []string) ([]Country, error) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]Country, 0, len(entries))
	for _, entry := range entries {
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		code := trimmed
		language := ""
		if idx := strings.IndexByte(trimmed, '='); idx >= 0 {
			code = strings.TrimSpace(trimmed[:idx])
			language = strings.TrimSpace(trimmed[idx+1:])
			if code == "" || language == "" {
				return nil, fmt.Errorf("countries entry %q must have the form code=language", entry)
			}
		}
		code = strings.ToLower(code)
		if language == "" {
			if mapped, ok := defaultLanguages[code]; ok {
				language = mapped
			} else {
				language = defaultLanguage
			}
		}
		if _, dup := seen[code]; dup {
			return nil, fmt.Errorf("countries entry %q duplicates storefront %q", entry, code)
		}
		seen[code] = struct{}{}
		out = append(out, Country{Code: code, Language: strings.ToLower(language)})
	}
	return out, nil
}
