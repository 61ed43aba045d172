package resolve

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestLedgerClaimIsFirstComeFirstServed(t *testing.T) {
	ledger := NewLedger()
	if !ledger.Claim(42) {
		t.Fatal("first claim should succeed")
	}
	if ledger.Claim(42) {
		t.Fatal("second claim of the same identifier should fail")
	}
	if !ledger.Claim(7) {
		t.Fatal("distinct identifier should claim independently")
	}
	if ledger.Len() != 2 {
		t.Fatalf("unexpected ledger size: %d", ledger.Len())
	}
}

func TestLedgerClaimIsAtomicUnderConcurrency(t *testing.T) {
	ledger := NewLedger()
	var winners atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ledger.Claim(99) {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	if winners.Load() != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", winners.Load())
	}
}
