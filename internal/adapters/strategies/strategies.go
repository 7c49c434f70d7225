package strategies

import (
	"math/rand/v2"

	"github.com/bnema/ipd/internal/domain"
)

type AlwaysCooperate struct{}

func (AlwaysCooperate) Play(turn domain.Turn) error {
	_, err := turn.Submit(domain.Cooperate)
	return err
}

type AlwaysDefect struct{}

func (AlwaysDefect) Play(turn domain.Turn) error {
	_, err := turn.Submit(domain.Defect)
	return err
}

// TitForTat cooperates first, then repeats the opponent's previous action.
type TitForTat struct {
	next domain.Action
}

func NewTitForTat() *TitForTat {
	return &TitForTat{next: domain.Cooperate}
}

func (a *TitForTat) Play(turn domain.Turn) error {
	result, err := turn.Submit(a.next)
	if err != nil {
		return err
	}
	a.next = result.OpponentAction
	return nil
}

// Grudger cooperates until the opponent defects once, then defects for the rest of the match.
type Grudger struct {
	betrayed bool
}

func (a *Grudger) Play(turn domain.Turn) error {
	action := domain.Cooperate
	if a.betrayed {
		action = domain.Defect
	}

	result, err := turn.Submit(action)
	if err != nil {
		return err
	}
	if result.OpponentAction == domain.Defect {
		a.betrayed = true
	}
	return nil
}

type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (a *Random) Play(turn domain.Turn) error {
	action := domain.Defect
	if a.rng.Float64() < 0.5 {
		action = domain.Cooperate
	}

	_, err := turn.Submit(action)
	return err
}

// Clannish defects against everyone except other Clannish instances.
type Clannish struct{}

func (Clannish) Play(turn domain.Turn) error {
	action := domain.Defect
	if turn.SelfPlay() {
		action = domain.Cooperate
	}

	_, err := turn.Submit(action)
	return err
}
