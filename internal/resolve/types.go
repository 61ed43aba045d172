package resolve

// Query is one input unit to resolve: a free-text app name plus optional
// aliases and hints. Immutable once loaded.
type Query struct {
	AppKey        string
	QueryName     string
	Aliases       []string
	DeveloperHint string
	BundleHint    string
}

// CountrySpec is one storefront/language pair. The resolver preserves the
// configured order: it decides whose fields win during candidate merging
// and which lookup becomes the canonical record.
type CountrySpec struct {
	Code     string
	Language string
}

// Candidate is a deduplicated catalog entry discovered for a query,
// identified by a stable numeric track id. Fields come from the first
// storefront that produced the id; FoundIn accumulates across storefronts
// in discovery order.
type Candidate struct {
	ID            int64
	Name          string
	Seller        string
	BundleID      string
	PrimaryGenre  string
	Genres        []string
	LanguageCodes []string
	ReleaseDate   string
	FoundIn       []string
}

// Breakdown records the per-signal score contributions for one
// (query, candidate) pair. Zero-valued signals are kept so audit output
// shows which modes were evaluated, not just which fired.
type Breakdown struct {
	Exact       float64 `json:"exact"`
	StartsWith  float64 `json:"startswith"`
	Contains    float64 `json:"contains"`
	Fuzzy       float64 `json:"fuzzy"`
	DevBonus    float64 `json:"dev_bonus"`
	BundleBonus float64 `json:"bundle_bonus"`
	GenreBonus  float64 `json:"genre_bonus"`
	Total       float64 `json:"total"`
}

// ScoredCandidate pairs a candidate with its breakdown.
type ScoredCandidate struct {
	Candidate Candidate
	Breakdown Breakdown
}
