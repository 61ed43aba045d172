package resolve

import "sort"

// Policy centralizes the auto-confirm thresholds.
type Policy struct {
	// MinScore is the total the top candidate must reach to auto-confirm.
	MinScore float64
	// MinGap is the separation required between the top candidate and the
	// runner-up. A high score with a near-tied runner-up routes to review.
	MinGap float64
}

// DefaultPolicy returns the production thresholds.
func DefaultPolicy() Policy {
	return Policy{MinScore: 80, MinGap: 8}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	if p.MinScore <= 0 {
		p.MinScore = d.MinScore
	}
	if p.MinGap < 0 {
		p.MinGap = d.MinGap
	}
	return p
}

// Outcome classifies the scored candidate set for one query.
type Outcome int

const (
	// OutcomeNoMatch means no candidate was discovered at all.
	OutcomeNoMatch Outcome = iota
	// OutcomeAmbiguous means candidates exist but none auto-confirms.
	OutcomeAmbiguous
	// OutcomeConfirmed means the top candidate cleared both thresholds.
	OutcomeConfirmed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeAmbiguous:
		return "ambiguous"
	case OutcomeConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Decision is the outcome for one query plus the ranked candidate set.
type Decision struct {
	Outcome Outcome
	// Winner is set only for OutcomeConfirmed.
	Winner *ScoredCandidate
	// Ranked holds every candidate in descending score order; ties keep
	// discovery order.
	Ranked []ScoredCandidate
}

// Decide ranks the scored candidates and classifies the set. The sort is
// stable so ties resolve by discovery order across storefronts, which
// keeps the decision deterministic for a fixed input.
func Decide(scored []ScoredCandidate, policy Policy) Decision {
	policy = policy.normalized()

	if len(scored) == 0 {
		return Decision{Outcome: OutcomeNoMatch}
	}

	ranked := make([]ScoredCandidate, len(scored))
	copy(ranked, scored)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Breakdown.Total > ranked[j].Breakdown.Total
	})

	top := ranked[0]
	if top.Breakdown.Total < policy.MinScore {
		return Decision{Outcome: OutcomeAmbiguous, Ranked: ranked}
	}
	if len(ranked) >= 2 && top.Breakdown.Total-ranked[1].Breakdown.Total < policy.MinGap {
		return Decision{Outcome: OutcomeAmbiguous, Ranked: ranked}
	}
	return Decision{Outcome: OutcomeConfirmed, Winner: &ranked[0], Ranked: ranked}
}
