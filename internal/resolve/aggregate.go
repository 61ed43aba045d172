package resolve

import (
	"strings"

	"appresolve/internal/catalog"
)

// aggregator merges per-storefront search hits into a deduplicated,
// discovery-ordered candidate list keyed by track identifier.
type aggregator struct {
	order []int64
	byID  map[int64]*Candidate
}

func newAggregator() *aggregator {
	return &aggregator{byID: make(map[int64]*Candidate)}
}

// add folds one storefront's hits into the set. Hits without a track id
// are discarded. An already-known id only gains the storefront in its
// FoundIn set; no field is overwritten (first-seen wins).
func (a *aggregator) add(country string, records []catalog.Record) {
	code := strings.ToUpper(strings.TrimSpace(country))
	for _, rec := range records {
		if rec.TrackID == 0 {
			continue
		}
		if existing, ok := a.byID[rec.TrackID]; ok {
			if !containsString(existing.FoundIn, code) {
				existing.FoundIn = append(existing.FoundIn, code)
			}
			continue
		}
		candidate := &Candidate{
			ID:            rec.TrackID,
			Name:          rec.TrackName,
			Seller:        rec.Seller(),
			BundleID:      rec.BundleID,
			PrimaryGenre:  rec.PrimaryGenre,
			Genres:        rec.Genres,
			LanguageCodes: rec.LanguageCodes,
			ReleaseDate:   rec.ReleaseDate,
			FoundIn:       []string{code},
		}
		a.byID[rec.TrackID] = candidate
		a.order = append(a.order, rec.TrackID)
	}
}

// candidates returns the merged set in discovery order.
func (a *aggregator) candidates() []Candidate {
	out := make([]Candidate, 0, len(a.order))
	for _, id := range a.order {
		out = append(out, *a.byID[id])
	}
	return out
}
