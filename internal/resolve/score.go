package resolve

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"appresolve/internal/textutil"
)

// Mode identifies one name-matching strategy.
type Mode string

// The four name-matching strategies, strongest first. When several fire on
// the same candidate the name score is their maximum, so the fixed weights
// keep exact above startswith above contains.
const (
	ModeExact      Mode = "exact"
	ModeStartsWith Mode = "startswith"
	ModeContains   Mode = "contains"
	ModeFuzzy      Mode = "fuzzy"
)

// ModesFromStrings converts configured mode names into Modes. Unknown names
// are ignored; config validation rejects them before a Scorer is built.
func ModesFromStrings(names []string) []Mode {
	out := make([]Mode, 0, len(names))
	for _, name := range names {
		switch Mode(strings.ToLower(strings.TrimSpace(name))) {
		case ModeExact:
			out = append(out, ModeExact)
		case ModeStartsWith:
			out = append(out, ModeStartsWith)
		case ModeContains:
			out = append(out, ModeContains)
		case ModeFuzzy:
			out = append(out, ModeFuzzy)
		}
	}
	return out
}

// Weights fixes the scalar contribution of every scoring signal. Modeling
// them as one enumerated structure keeps the scorer property-testable
// against fixed tables.
type Weights struct {
	Exact           float64
	StartsWith      float64
	Contains        float64
	DevSubstring    float64
	DevFuzzy        float64
	DevFuzzyFloor   int
	BundleExact     float64
	BundleSubstring float64
	Genre           float64
}

// DefaultWeights returns the production signal weights.
func DefaultWeights() Weights {
	return Weights{
		Exact:           100,
		StartsWith:      92,
		Contains:        88,
		DevSubstring:    8,
		DevFuzzy:        4,
		DevFuzzyFloor:   80,
		BundleExact:     25,
		BundleSubstring: 12,
		Genre:           3,
	}
}

func (w Weights) normalized() Weights {
	d := DefaultWeights()
	if w.Exact <= 0 {
		w.Exact = d.Exact
	}
	if w.StartsWith <= 0 {
		w.StartsWith = d.StartsWith
	}
	if w.Contains <= 0 {
		w.Contains = d.Contains
	}
	if w.DevSubstring <= 0 {
		w.DevSubstring = d.DevSubstring
	}
	if w.DevFuzzy <= 0 {
		w.DevFuzzy = d.DevFuzzy
	}
	if w.DevFuzzyFloor <= 0 {
		w.DevFuzzyFloor = d.DevFuzzyFloor
	}
	if w.BundleExact <= 0 {
		w.BundleExact = d.BundleExact
	}
	if w.BundleSubstring <= 0 {
		w.BundleSubstring = d.BundleSubstring
	}
	if w.Genre <= 0 {
		w.Genre = d.Genre
	}
	return w
}

// Scorer computes the composite match score and per-signal breakdown for a
// candidate against a query.
type Scorer struct {
	modes   map[Mode]struct{}
	weights Weights
	genres  map[string]struct{}
}

// NewScorer builds a Scorer for the enabled modes, weights, and
// priority-genre allow-list. Zero-valued weights fall back to defaults.
func NewScorer(modes []Mode, weights Weights, priorityGenres []string) Scorer {
	modeSet := make(map[Mode]struct{}, len(modes))
	for _, mode := range modes {
		modeSet[mode] = struct{}{}
	}
	genreSet := make(map[string]struct{}, len(priorityGenres))
	for _, genre := range textutil.NormalizeAll(priorityGenres) {
		genreSet[genre] = struct{}{}
	}
	return Scorer{modes: modeSet, weights: weights.normalized(), genres: genreSet}
}

func (s Scorer) enabled(mode Mode) bool {
	_, ok := s.modes[mode]
	return ok
}

// Score computes the breakdown for one candidate. The name score is the
// maximum over enabled modes; bonuses are independent and additive.
func (s Scorer) Score(q Query, c Candidate) Breakdown {
	var b Breakdown

	qn := textutil.Normalize(q.QueryName)
	cn := textutil.Normalize(c.Name)
	aliases := textutil.NormalizeAll(q.Aliases)

	nameScore := 0.0
	record := func(value float64) {
		if value > nameScore {
			nameScore = value
		}
	}

	if s.enabled(ModeExact) {
		if cn != "" && (cn == qn || containsString(aliases, cn)) {
			b.Exact = s.weights.Exact
		}
		record(b.Exact)
	}
	if s.enabled(ModeStartsWith) {
		if startsWithAny(cn, qn, aliases) {
			b.StartsWith = s.weights.StartsWith
		}
		record(b.StartsWith)
	}
	if s.enabled(ModeContains) {
		if containsAny(cn, qn, aliases) {
			b.Contains = s.weights.Contains
		}
		record(b.Contains)
	}
	if s.enabled(ModeFuzzy) {
		// Fuzzy ratios run on the raw strings; the library applies its own
		// token processing.
		best := fuzzy.WRatio(q.QueryName, c.Name)
		for _, alias := range q.Aliases {
			if strings.TrimSpace(alias) == "" {
				continue
			}
			if ratio := fuzzy.WRatio(alias, c.Name); ratio > best {
				best = ratio
			}
		}
		b.Fuzzy = float64(best)
		record(b.Fuzzy)
	}

	b.DevBonus = s.developerBonus(q.DeveloperHint, c.Seller)
	b.BundleBonus = s.bundleBonus(q.BundleHint, c.BundleID)
	b.GenreBonus = s.genreBonus(c)

	b.Total = nameScore + b.DevBonus + b.BundleBonus + b.GenreBonus
	return b
}

func (s Scorer) developerBonus(hint, seller string) float64 {
	if strings.TrimSpace(hint) == "" {
		return 0
	}
	hn := textutil.Normalize(hint)
	sn := textutil.Normalize(seller)
	if hn != "" && sn != "" && strings.Contains(sn, hn) {
		return s.weights.DevSubstring
	}
	if fuzzy.PartialRatio(hint, seller) >= s.weights.DevFuzzyFloor {
		return s.weights.DevFuzzy
	}
	return 0
}

func (s Scorer) bundleBonus(hint, bundleID string) float64 {
	if strings.TrimSpace(hint) == "" {
		return 0
	}
	hn := textutil.Normalize(hint)
	bn := textutil.Normalize(bundleID)
	if bn == "" {
		return 0
	}
	if hn == bn {
		return s.weights.BundleExact
	}
	if strings.Contains(bn, hn) {
		return s.weights.BundleSubstring
	}
	return 0
}

func (s Scorer) genreBonus(c Candidate) float64 {
	if len(s.genres) == 0 {
		return 0
	}
	if _, ok := s.genres[textutil.Normalize(c.PrimaryGenre)]; ok {
		return s.weights.Genre
	}
	for _, genre := range c.Genres {
		if _, ok := s.genres[textutil.Normalize(genre)]; ok {
			return s.weights.Genre
		}
	}
	return 0
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func startsWithAny(name, query string, aliases []string) bool {
	if name == "" {
		return false
	}
	if query != "" && strings.HasPrefix(name, query) {
		return true
	}
	for _, alias := range aliases {
		if strings.HasPrefix(name, alias) {
			return true
		}
	}
	return false
}

func containsAny(name, query string, aliases []string) bool {
	if name == "" {
		return false
	}
	if query != "" && strings.Contains(name, query) {
		return true
	}
	for _, alias := range aliases {
		if strings.Contains(name, alias) {
			return true
		}
	}
	return false
}
