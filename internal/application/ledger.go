package application

import (
	"fmt"
	"sync"

	"github.com/bnema/ipd/internal/domain"
)

// Ledger owns the aggregate tally of every agent type for one tournament.
// Writes are serialized; reads are meant for after all matches have joined.
type Ledger struct {
	mu      sync.Mutex
	tallies map[domain.AgentName]*domain.AggregateTally
	matches int
}

func NewLedger(agents []domain.AgentName) *Ledger {
	tallies := make(map[domain.AgentName]*domain.AggregateTally, len(agents))
	for _, agent := range agents {
		tallies[agent] = domain.NewAggregateTally(agent)
	}

	return &Ledger{tallies: tallies}
}

// RecordMatch merges both sides of a finished match. A self-pairing is booked
// once, from side A, so each type holds at most one tally per opponent.
func (l *Ledger) RecordMatch(result domain.MatchResult) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	aggregateA, ok := l.tallies[result.A]
	if !ok {
		return fmt.Errorf("unknown agent %q", result.A)
	}
	aggregateB, ok := l.tallies[result.B]
	if !ok {
		return fmt.Errorf("unknown agent %q", result.B)
	}

	if err := aggregateA.Record(result.TallyA); err != nil {
		return err
	}
	if !result.SelfPlay() {
		if err := aggregateB.Record(result.TallyB); err != nil {
			return err
		}
	}

	l.matches++
	return nil
}

func (l *Ledger) MatchCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.matches
}

func (l *Ledger) Aggregate(agent domain.AgentName) (*domain.AggregateTally, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	aggregate, ok := l.tallies[agent]
	return aggregate, ok
}
