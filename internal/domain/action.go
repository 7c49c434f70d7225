package domain

import "fmt"

type Action uint8

const (
	ActionUnknown Action = iota
	Cooperate
	Defect
)

func (a Action) Valid() bool {
	switch a {
	case Cooperate, Defect:
		return true
	default:
		return false
	}
}

func (a Action) String() string {
	switch a {
	case Cooperate:
		return "cooperate"
	case Defect:
		return "defect"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// And returns the reward earned by the side playing a when the opponent played opponent.
func (a Action) And(opponent Action) Reward {
	switch {
	case a == Cooperate && opponent == Cooperate:
		return MutualCooperation
	case a == Cooperate && opponent == Defect:
		return SuckersPayoff
	case a == Defect && opponent == Cooperate:
		return TemptationPayoff
	case a == Defect && opponent == Defect:
		return MutualDefection
	default:
		return RewardUnknown
	}
}
