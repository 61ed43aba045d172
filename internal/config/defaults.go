package config

const (
	defaultCatalogBaseURL  = "https://itunes.apple.com"
	defaultUserAgent       = "Mozilla/5.0 (compatible; AppResolver/1.0)"
	defaultTimeoutSeconds  = 25
	defaultLimitPerCountry = 25
	defaultSleepMs         = 400
	defaultMinScore        = 80.0
	defaultMinGap          = 8.0
	defaultWorkers         = 1
	defaultOutputDir       = "out_resolve"
	defaultLogFormat       = "console"
	defaultLogLevel        = "info"
	defaultLanguage        = "en_us"
)

// defaultLanguages maps storefront codes to their default lookup language
// when the country entry omits one.
var defaultLanguages = map[string]string{
	"gb": "en_us",
	"us": "en_us",
	"jp": "ja_jp",
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Catalog: Catalog{
			BaseURL:         defaultCatalogBaseURL,
			UserAgent:       defaultUserAgent,
			TimeoutSeconds:  defaultTimeoutSeconds,
			LimitPerCountry: defaultLimitPerCountry,
			SleepMs:         defaultSleepMs,
		},
		Countries: []string{"gb=en_us", "jp=ja_jp"},
		Matching: Matching{
			Modes:          []string{"startswith", "contains", "fuzzy"},
			MinScore:       defaultMinScore,
			MinGap:         defaultMinGap,
			PriorityGenres: []string{"Health & Fitness", "Medical"},
		},
		Resolver: Resolver{
			Workers: defaultWorkers,
		},
		Output: Output{
			Dir: defaultOutputDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
