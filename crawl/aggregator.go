package crawl

import (
	"sync"

	"github.com/fwojciec/linkcheck"
)

// Aggregator accumulates per-resource outcomes into a final report.
// Record is safe for concurrent use. Entries keep arrival order, which is
// completion order and therefore nondeterministic across runs when more
// than one worker is fetching.
type Aggregator struct {
	mu        sync.Mutex
	entries   []linkcheck.Outcome
	working   int
	broken    int
	finalized bool
}

// NewAggregator creates an empty Aggregator.
func NewAggregator() *Aggregator {
	return &Aggregator{}
}

// Record classifies and stores one outcome. Records after Finalize are
// dropped; the returned report is an immutable snapshot.
func (a *Aggregator) Record(outcome linkcheck.Outcome) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.finalized {
		return
	}
	if outcome.OK() {
		a.working++
	} else {
		a.broken++
	}
	a.entries = append(a.entries, outcome)
}

// Finalize returns the aggregated report. It is called exactly once,
// after the scheduler reaches a terminal state.
func (a *Aggregator) Finalize() *linkcheck.Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.finalized = true
	entries := make([]linkcheck.Outcome, len(a.entries))
	copy(entries, a.entries)

	return &linkcheck.Report{
		WorkingCount: a.working,
		BrokenCount:  a.broken,
		Entries:      entries,
	}
}
