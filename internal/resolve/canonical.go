package resolve

import (
	"context"
	"log/slog"
)

// canonicalize re-fetches an authoritative record for a confirmed winner.
// Storefronts are tried in configured order; the first lookup that returns
// a record with a bundle identifier wins. When every lookup fails or lacks
// a bundle id, the search-derived candidate fields stand.
func (r *Resolver) canonicalize(ctx context.Context, q Query, winner Candidate, stats *RunStats) Candidate {
	for _, cs := range r.countries {
		rec, err := r.catalog.Lookup(ctx, winner.ID, cs.Code, cs.Language)
		if err != nil {
			stats.LookupFailures++
			r.logger.Warn("canonical lookup failed",
				slog.String("query", q.QueryName),
				slog.Int64("track_id", winner.ID),
				slog.String("country", cs.Code),
				slog.Any("err", err))
			continue
		}
		if rec == nil || rec.BundleID == "" {
			continue
		}
		return Candidate{
			ID:            rec.TrackID,
			Name:          rec.TrackName,
			Seller:        rec.Seller(),
			BundleID:      rec.BundleID,
			PrimaryGenre:  rec.PrimaryGenre,
			Genres:        rec.Genres,
			LanguageCodes: rec.LanguageCodes,
			ReleaseDate:   rec.ReleaseDate,
			FoundIn:       winner.FoundIn,
		}
	}
	return winner
}
