package domain

import (
	"context"
	"fmt"
)

// MatchResult is the outcome of one pairing, as seen from both sides.
type MatchResult struct {
	A      AgentName  `json:"a" toml:"a"`
	B      AgentName  `json:"b" toml:"b"`
	Rounds int        `json:"rounds" toml:"rounds"`
	TallyA MatchTally `json:"tally_a" toml:"tally_a"`
	TallyB MatchTally `json:"tally_b" toml:"tally_b"`
}

func (r MatchResult) SelfPlay() bool {
	return r.A == r.B
}

// RunMatch plays rounds sequentially between two fresh entrants. Rounds cannot
// run in parallel: stateful agents carry the previous round's outcome forward.
func RunMatch(ctx context.Context, a, b Entrant, rounds int) (MatchTally, MatchTally, error) {
	if rounds <= 0 {
		return MatchTally{}, MatchTally{}, ErrInvalidRounds
	}
	if a.Agent == nil || b.Agent == nil {
		return MatchTally{}, MatchTally{}, ErrNilAgent
	}

	selfPlay := a.Name == b.Name
	tallyA := NewMatchTally(b.Name)
	tallyB := NewMatchTally(a.Name)

	for round := 1; round <= rounds; round++ {
		if err := ctx.Err(); err != nil {
			return MatchTally{}, MatchTally{}, fmt.Errorf("round %d: %w", round, err)
		}

		outcome, err := NewModerator(a.Agent, b.Agent, selfPlay).Run()
		if err != nil {
			return MatchTally{}, MatchTally{}, fmt.Errorf("round %d: %w", round, err)
		}

		tallyA = tallyA.Add(outcome.ActionA, outcome.RewardA, outcome.RewardB)
		tallyB = tallyB.Add(outcome.ActionB, outcome.RewardB, outcome.RewardA)
	}

	return tallyA, tallyB, nil
}
