package domain

import "fmt"

// MatchTally accumulates one side's results over a single match.
type MatchTally struct {
	Opponent       AgentName `json:"opponent" toml:"opponent"`
	Score          int       `json:"score" toml:"score"`
	OpponentScore  int       `json:"opponent_score" toml:"opponent_score"`
	CooperateCount int       `json:"cooperate_count" toml:"cooperate_count"`
	DefectCount    int       `json:"defect_count" toml:"defect_count"`
}

func NewMatchTally(opponent AgentName) MatchTally {
	return MatchTally{Opponent: opponent}
}

// Add folds one round into the tally and returns the new value.
func (t MatchTally) Add(action Action, own, opponent Reward) MatchTally {
	t.Score += own.Points()
	t.OpponentScore += opponent.Points()
	switch action {
	case Cooperate:
		t.CooperateCount++
	case Defect:
		t.DefectCount++
	}
	return t
}

func (t MatchTally) Rounds() int {
	return t.CooperateCount + t.DefectCount
}

func (t MatchTally) PointsPerRound() float64 {
	rounds := t.Rounds()
	if rounds == 0 {
		return 0
	}
	return float64(t.Score) / float64(rounds)
}

// Leads reports whether this side outscored its opponent.
func (t MatchTally) Leads() bool {
	return t.Score > t.OpponentScore
}

// AggregateTally holds one MatchTally per opponent for a single agent type.
// It is not safe for concurrent use; callers serialize access.
type AggregateTally struct {
	Agent   AgentName
	order   []AgentName
	matches map[AgentName]MatchTally
}

func NewAggregateTally(agent AgentName) *AggregateTally {
	return &AggregateTally{Agent: agent, matches: map[AgentName]MatchTally{}}
}

func (a *AggregateTally) Record(tally MatchTally) error {
	if _, ok := a.matches[tally.Opponent]; ok {
		return fmt.Errorf("%s against %s: %w", a.Agent, tally.Opponent, ErrDuplicateTally)
	}

	a.matches[tally.Opponent] = tally
	a.order = append(a.order, tally.Opponent)
	return nil
}

func (a *AggregateTally) Against(opponent AgentName) (MatchTally, bool) {
	tally, ok := a.matches[opponent]
	return tally, ok
}

// Opponents lists opponents in the order their matches were recorded.
func (a *AggregateTally) Opponents() []AgentName {
	return append([]AgentName(nil), a.order...)
}

func (a *AggregateTally) Score() int {
	return a.sum(func(t MatchTally) int { return t.Score })
}

func (a *AggregateTally) OpponentScore() int {
	return a.sum(func(t MatchTally) int { return t.OpponentScore })
}

func (a *AggregateTally) CooperateCount() int {
	return a.sum(func(t MatchTally) int { return t.CooperateCount })
}

func (a *AggregateTally) DefectCount() int {
	return a.sum(func(t MatchTally) int { return t.DefectCount })
}

func (a *AggregateTally) sum(field func(MatchTally) int) int {
	total := 0
	for _, tally := range a.matches {
		total += field(tally)
	}
	return total
}
