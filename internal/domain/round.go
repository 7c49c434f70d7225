package domain

import "fmt"

type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

func (s Side) index() int {
	if s == SideB {
		return 1
	}
	return 0
}

type RoundOutcome struct {
	ActionA Action
	ActionB Action
	RewardA Reward
	RewardB Reward
}

// Moderator runs exactly one round between two agents.
//
// Side A is asked to play first. Its submission is recorded and, still inside
// that Submit call, side B is asked to play. Side B receives its result as soon
// as it submits; side A receives its result only after B has returned. Neither
// side can observe the other's action before committing its own.
//
// The first protocol violation is latched, so an agent that ignores the error
// returned by Submit still fails the round.
type Moderator struct {
	a        Agent
	b        Agent
	selfPlay bool
	ran      bool
	actions  [2]Action
	rewards  [2]Reward
	err      error
}

func NewModerator(a, b Agent, selfPlay bool) *Moderator {
	return &Moderator{a: a, b: b, selfPlay: selfPlay}
}

func (m *Moderator) Run() (RoundOutcome, error) {
	if m.ran {
		return RoundOutcome{}, ErrModeratorReused
	}
	m.ran = true

	if m.a == nil || m.b == nil {
		return RoundOutcome{}, ErrNilAgent
	}

	err := m.a.Play(&turn{moderator: m, side: SideA})
	if m.err != nil {
		return RoundOutcome{}, m.err
	}
	if err != nil {
		return RoundOutcome{}, m.fail(SideA, err)
	}
	if !m.actions[0].Valid() {
		return RoundOutcome{}, m.fail(SideA, ErrNoSubmission)
	}

	return RoundOutcome{
		ActionA: m.actions[0],
		ActionB: m.actions[1],
		RewardA: m.rewards[0],
		RewardB: m.rewards[1],
	}, nil
}

func (m *Moderator) submit(side Side, action Action) (Result, error) {
	if m.err != nil {
		return Result{}, m.err
	}

	idx := side.index()
	if m.actions[idx] != ActionUnknown {
		return Result{}, m.fail(side, ErrDuplicateSubmission)
	}
	if !action.Valid() {
		return Result{}, m.fail(side, fmt.Errorf("%w: %s", ErrInvalidAction, action))
	}
	m.actions[idx] = action

	if side == SideB {
		m.rewards[0], m.rewards[1] = ScoreRound(m.actions[0], m.actions[1])
		return Result{Reward: m.rewards[1], OpponentAction: m.actions[0]}, nil
	}

	err := m.b.Play(&turn{moderator: m, side: SideB})
	if m.err != nil {
		return Result{}, m.err
	}
	if err != nil {
		return Result{}, m.fail(SideB, err)
	}
	if !m.actions[1].Valid() {
		return Result{}, m.fail(SideB, ErrNoSubmission)
	}

	return Result{Reward: m.rewards[0], OpponentAction: m.actions[1]}, nil
}

func (m *Moderator) fail(side Side, err error) error {
	if m.err == nil {
		m.err = fmt.Errorf("side %s: %w", side, err)
	}
	return m.err
}

type turn struct {
	moderator *Moderator
	side      Side
}

func (t *turn) Submit(action Action) (Result, error) {
	return t.moderator.submit(t.side, action)
}

func (t *turn) SelfPlay() bool {
	return t.moderator.selfPlay
}
