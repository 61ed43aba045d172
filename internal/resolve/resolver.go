package resolve

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"appresolve/internal/catalog"
)

// reviewLimit caps how many ranked candidates reach the review queue per
// query. Audit rows are never truncated.
const reviewLimit = 5

// Options configures a Resolver.
type Options struct {
	Countries []CountrySpec
	Limit     int
	Scorer    Scorer
	Policy    Policy
	Ledger    *Ledger
	Workers   int
	Logger    *slog.Logger
}

// Resolver drives queries through aggregation, scoring, decision, and
// canonicalization against a catalog Searcher.
type Resolver struct {
	catalog   catalog.Searcher
	countries []CountrySpec
	limit     int
	scorer    Scorer
	policy    Policy
	ledger    *Ledger
	workers   int
	logger    *slog.Logger
}

// New creates a Resolver.
func New(searcher catalog.Searcher, opts Options) (*Resolver, error) {
	if searcher == nil {
		return nil, errors.New("catalog searcher required")
	}
	if len(opts.Countries) == 0 {
		return nil, errors.New("at least one storefront required")
	}
	limit := opts.Limit
	if limit <= 0 {
		limit = 25
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}
	ledger := opts.Ledger
	if ledger == nil {
		ledger = NewLedger()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	countries := make([]CountrySpec, len(opts.Countries))
	copy(countries, opts.Countries)

	return &Resolver{
		catalog:   searcher,
		countries: countries,
		limit:     limit,
		scorer:    opts.Scorer,
		policy:    opts.Policy.normalized(),
		ledger:    ledger,
		workers:   workers,
		logger:    logger.With(slog.String("component", "resolve")),
	}, nil
}

// queryResult collects one query's contribution to the run tables.
type queryResult struct {
	confirmed *ConfirmedRow
	review    []ReviewRow
	audit     []AuditRow
	stats     RunStats
}

// Run resolves every query and assembles the three output tables. A
// failure for one query or one storefront never aborts the run; Run
// returns an error only when the context is canceled.
func (r *Resolver) Run(ctx context.Context, queries []Query) (*Result, error) {
	results := make([]queryResult, len(queries))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, q := range queries {
		i, q := i, q
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			results[i] = r.resolveQuery(groupCtx, q)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	merged := &Result{}
	for i := range results {
		res := &results[i]
		if res.confirmed != nil {
			merged.Confirmed = append(merged.Confirmed, *res.confirmed)
		}
		merged.Review = append(merged.Review, res.review...)
		merged.Audit = append(merged.Audit, res.audit...)
		merged.Stats.merge(res.stats)
	}
	merged.Stats.Queries = len(queries)

	r.logger.Info("run complete",
		slog.Int("queries", merged.Stats.Queries),
		slog.Int("confirmed", merged.Stats.Confirmed),
		slog.Int("needs_review", merged.Stats.NeedsReview),
		slog.Int("no_match", merged.Stats.NoMatch),
		slog.Int("duplicates_dropped", merged.Stats.DuplicatesDropped))
	return merged, nil
}

func (r *Resolver) resolveQuery(ctx context.Context, q Query) queryResult {
	var res queryResult

	agg := newAggregator()
	for _, cs := range r.countries {
		records, err := r.catalog.Search(ctx, q.QueryName, cs.Code, cs.Language, r.limit)
		if err != nil {
			res.stats.SearchFailures++
			r.logger.Warn("storefront search failed",
				slog.String("query", q.QueryName),
				slog.String("country", cs.Code),
				slog.Any("err", err))
			continue
		}
		agg.add(cs.Code, records)
	}

	candidates := agg.candidates()
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, c := range candidates {
		breakdown := r.scorer.Score(q, c)
		scored = append(scored, ScoredCandidate{Candidate: c, Breakdown: breakdown})
		res.audit = append(res.audit, AuditRow{
			AppKey:       q.AppKey,
			QueryName:    q.QueryName,
			TrackID:      c.ID,
			BundleID:     c.BundleID,
			TrackName:    c.Name,
			SellerName:   c.Seller,
			PrimaryGenre: c.PrimaryGenre,
			Countries:    sortedCountries(c.FoundIn),
			Breakdown:    breakdown,
		})
	}

	decision := Decide(scored, r.policy)
	switch decision.Outcome {
	case OutcomeNoMatch:
		res.stats.NoMatch++
		r.logger.Debug("no candidates found", slog.String("query", q.QueryName))

	case OutcomeAmbiguous:
		res.stats.NeedsReview++
		for i, sc := range decision.Ranked {
			if i >= reviewLimit {
				break
			}
			res.review = append(res.review, ReviewRow{
				AppKey:       q.AppKey,
				QueryName:    q.QueryName,
				Rank:         i + 1,
				TrackID:      sc.Candidate.ID,
				BundleID:     sc.Candidate.BundleID,
				TrackName:    sc.Candidate.Name,
				SellerName:   sc.Candidate.Seller,
				PrimaryGenre: sc.Candidate.PrimaryGenre,
				Countries:    sortedCountries(sc.Candidate.FoundIn),
				Breakdown:    sc.Breakdown,
			})
		}

	case OutcomeConfirmed:
		winner := *decision.Winner
		if !r.ledger.Claim(winner.Candidate.ID) {
			// Another query already confirmed this identifier; the queries
			// were aliases for the same app. Drop silently.
			res.stats.DuplicatesDropped++
			r.logger.Debug("identifier already confirmed",
				slog.String("query", q.QueryName),
				slog.Int64("track_id", winner.Candidate.ID))
			return res
		}
		canonical := r.canonicalize(ctx, q, winner.Candidate, &res.stats)
		res.confirmed = &ConfirmedRow{
			AppKey:        q.AppKey,
			QueryName:     q.QueryName,
			TrackID:       canonical.ID,
			BundleID:      canonical.BundleID,
			TrackName:     canonical.Name,
			SellerName:    canonical.Seller,
			PrimaryGenre:  canonical.PrimaryGenre,
			LanguageCodes: canonical.LanguageCodes,
			ReleaseDate:   canonical.ReleaseDate,
			Countries:     sortedCountries(winner.Candidate.FoundIn),
			Breakdown:     winner.Breakdown,
		}
		res.stats.Confirmed++
	}

	return res
}
