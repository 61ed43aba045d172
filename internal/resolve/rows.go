package resolve

import "sort"

// ConfirmedRow is one auto-confirmed, deduplicated identity with canonical
// fields and the original score breakdown.
type ConfirmedRow struct {
	AppKey        string
	QueryName     string
	TrackID       int64
	BundleID      string
	TrackName     string
	SellerName    string
	PrimaryGenre  string
	LanguageCodes []string
	ReleaseDate   string
	Countries     []string
	Breakdown     Breakdown
}

// ReviewRow is one ranked candidate awaiting human adjudication.
type ReviewRow struct {
	AppKey       string
	QueryName    string
	Rank         int
	TrackID      int64
	BundleID     string
	TrackName    string
	SellerName   string
	PrimaryGenre string
	Countries    []string
	Breakdown    Breakdown
}

// AuditRow is the full scoring record for one candidate, emitted for every
// candidate of every query regardless of outcome.
type AuditRow struct {
	AppKey       string
	QueryName    string
	TrackID      int64
	BundleID     string
	TrackName    string
	SellerName   string
	PrimaryGenre string
	Countries    []string
	Breakdown    Breakdown
}

// RunStats summarizes one run.
type RunStats struct {
	Queries           int
	Confirmed         int
	NeedsReview       int
	NoMatch           int
	DuplicatesDropped int
	SearchFailures    int
	LookupFailures    int
}

func (s *RunStats) merge(other RunStats) {
	s.Queries += other.Queries
	s.Confirmed += other.Confirmed
	s.NeedsReview += other.NeedsReview
	s.NoMatch += other.NoMatch
	s.DuplicatesDropped += other.DuplicatesDropped
	s.SearchFailures += other.SearchFailures
	s.LookupFailures += other.LookupFailures
}

// Result holds the three output tables and run statistics. Tables are
// assembled fully in memory; writers persist them atomically afterwards.
type Result struct {
	Confirmed []ConfirmedRow
	Review    []ReviewRow
	Audit     []AuditRow
	Stats     RunStats
}

// sortedCountries returns the found-in set sorted for stable output.
func sortedCountries(countries []string) []string {
	out := make([]string, len(countries))
	copy(out, countries)
	sort.Strings(out)
	return out
}
