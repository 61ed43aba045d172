package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"appresolve/internal/catalog"
	"appresolve/internal/config"
	"appresolve/internal/logging"
	"appresolve/internal/queryset"
	"appresolve/internal/report"
	"appresolve/internal/resolve"
)

const lockFileName = "appresolve.lock"

func newResolveCommand(ctx *commandContext) *cobra.Command {
	var (
		namesPath string
		csvPath   string
		outDir    string
		countries []string
		minScore  float64
		minGap    float64
		workers   int
		sqlite    bool
	)

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve app names against the marketplace catalog",
		Long: strings.TrimSpace(`
Resolve free-text app names to canonical marketplace identities.

Queries come from exactly one input: a names file (one query per line) or
a CSV hint table with alias, developer, and bundle columns. Results land
in the output directory as apps_master.csv, needs_review.csv, and
candidates_raw.csv, plus resolve.db when the SQLite store is enabled.
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (namesPath == "") == (csvPath == "") {
				return errors.New("exactly one of --names or --csv is required")
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := applyRunFlags(cmd, cfg, outDir, countries, minScore, minGap, workers, sqlite); err != nil {
				return err
			}

			queries, err := loadQueries(namesPath, csvPath)
			if err != nil {
				return err
			}

			if err := cfg.EnsureOutputDir(); err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("configure logging: %w", err)
			}

			lock := flock.New(filepath.Join(cfg.Output.Dir, lockFileName))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire run lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another run is already writing to %s", cfg.Output.Dir)
			}
			defer func() { _ = lock.Unlock() }()

			resolver, err := buildResolver(cfg, logger)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			startedAt := time.Now()
			logger.Info("run starting",
				slog.String("run_id", runID),
				slog.Int("queries", len(queries)),
				slog.String("output_dir", cfg.Output.Dir))

			sigCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			result, err := resolver.Run(sigCtx, queries)
			if err != nil {
				return fmt.Errorf("resolve queries: %w", err)
			}

			if err := report.NewWriter(cfg.Output.Dir).Write(result); err != nil {
				return fmt.Errorf("write reports: %w", err)
			}
			if cfg.Output.SQLite {
				store, err := report.OpenStore(cfg.Output.Dir)
				if err != nil {
					return fmt.Errorf("open results store: %w", err)
				}
				defer store.Close()
				if err := store.SaveRun(cmd.Context(), runID, startedAt, result); err != nil {
					return fmt.Errorf("save run: %w", err)
				}
			}

			printRunSummary(cmd.OutOrStdout(), cfg.Output.Dir, runID, result.Stats)
			return nil
		},
	}

	cmd.Flags().StringVar(&namesPath, "names", "", "Path to a names file (one query per line)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to a CSV hint table")
	cmd.Flags().StringVar(&outDir, "out", "", "Output directory (overrides config)")
	cmd.Flags().StringArrayVar(&countries, "country", nil, "Storefront as code or code=language; repeatable, order matters")
	cmd.Flags().Float64Var(&minScore, "min-score", 0, "Minimum winner score for auto-confirmation")
	cmd.Flags().Float64Var(&minGap, "min-gap", 0, "Minimum margin over the runner-up for auto-confirmation")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent query workers")
	cmd.Flags().BoolVar(&sqlite, "sqlite", false, "Also persist results to resolve.db")

	return cmd
}

// applyRunFlags folds explicit flag values into the loaded config and
// re-normalizes it. Flags the user did not set leave the config untouched.
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, outDir string, countries []string, minScore, minGap float64, workers int, sqlite bool) error {
	if outDir != "" {
		expanded, err := config.ExpandPath(outDir)
		if err != nil {
			return fmt.Errorf("resolve output directory: %w", err)
		}
		cfg.Output.Dir = expanded
	}
	if len(countries) > 0 {
		cfg.Countries = countries
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Matching.MinScore = minScore
	}
	if cmd.Flags().Changed("min-gap") {
		cfg.Matching.MinGap = minGap
	}
	if cmd.Flags().Changed("workers") {
		cfg.Resolver.Workers = workers
	}
	if cmd.Flags().Changed("sqlite") {
		cfg.Output.SQLite = sqlite
	}

	if err := cfg.Normalize(); err != nil {
		return err
	}
	return cfg.Validate()
}

func loadQueries(namesPath, csvPath string) ([]resolve.Query, error) {
	if namesPath != "" {
		expanded, err := config.ExpandPath(namesPath)
		if err != nil {
			return nil, fmt.Errorf("resolve names path: %w", err)
		}
		return queryset.LoadNames(expanded)
	}
	expanded, err := config.ExpandPath(csvPath)
	if err != nil {
		return nil, fmt.Errorf("resolve csv path: %w", err)
	}
	return queryset.LoadCSV(expanded)
}

func buildResolver(cfg *config.Config, logger *slog.Logger) (*resolve.Resolver, error) {
	client, err := catalog.New(
		cfg.Catalog.BaseURL,
		cfg.Catalog.UserAgent,
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second,
		catalog.WithPacing(time.Duration(cfg.Catalog.SleepMs)*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("build catalog client: %w", err)
	}

	resolved := cfg.ResolvedCountries()
	specs := make([]resolve.CountrySpec, 0, len(resolved))
	for _, country := range resolved {
		specs = append(specs, resolve.CountrySpec{Code: country.Code, Language: country.Language})
	}

	// Zero-valued overrides fall back to the built-in weights.
	w := cfg.Matching.Weights
	scorer := resolve.NewScorer(
		resolve.ModesFromStrings(cfg.Matching.Modes),
		resolve.Weights{
			Exact:           w.Exact,
			StartsWith:      w.StartsWith,
			Contains:        w.Contains,
			DevSubstring:    w.DevSubstring,
			DevFuzzy:        w.DevFuzzy,
			DevFuzzyFloor:   w.DevFuzzyFloor,
			BundleExact:     w.BundleExact,
			BundleSubstring: w.BundleSubstring,
			Genre:           w.Genre,
		},
		cfg.Matching.PriorityGenres,
	)

	resolver, err := resolve.New(client, resolve.Options{
		Countries: specs,
		Limit:     cfg.Catalog.LimitPerCountry,
		Scorer:    scorer,
		Policy:    resolve.Policy{MinScore: cfg.Matching.MinScore, MinGap: cfg.Matching.MinGap},
		Workers:   cfg.Resolver.Workers,
		Logger:    logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build resolver: %w", err)
	}
	return resolver, nil
}
