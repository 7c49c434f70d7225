package application

import (
	"time"

	"github.com/bnema/ipd/internal/domain"
)

type playFunc func(turn domain.Turn) error

func (f playFunc) Play(turn domain.Turn) error {
	return f(turn)
}

func constantType(name domain.AgentName, action domain.Action) domain.AgentType {
	return domain.AgentType{Name: name, New: func() domain.Agent {
		return playFunc(func(turn domain.Turn) error {
			_, err := turn.Submit(action)
			return err
		})
	}}
}

type titForTat struct {
	next domain.Action
}

func (a *titForTat) Play(turn domain.Turn) error {
	result, err := turn.Submit(a.next)
	if err != nil {
		return err
	}
	a.next = result.OpponentAction
	return nil
}

func titForTatType() domain.AgentType {
	return domain.AgentType{Name: "TitForTat", New: func() domain.Agent {
		return &titForTat{next: domain.Cooperate}
	}}
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
