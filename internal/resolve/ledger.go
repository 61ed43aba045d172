package resolve

import "sync"

// Ledger tracks identifiers confirmed during a run so the same underlying
// app reached via two query spellings collapses to one entry. It is an
// explicit owned object injected into the Resolver, and Claim is a single
// synchronized check-and-insert so concurrent query workers stay safe.
type Ledger struct {
	mu  sync.Mutex
	ids map[int64]struct{}
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{ids: make(map[int64]struct{})}
}

// Claim records the identifier and reports whether this call was the first
// to claim it. A false return means a previous query already confirmed the
// identifier and the caller must drop its result.
func (l *Ledger) Claim(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.ids[id]; ok {
		return false
	}
	l.ids[id] = struct{}{}
	return true
}

// Len reports how many identifiers have been claimed.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.ids)
}
