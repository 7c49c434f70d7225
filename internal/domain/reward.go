package domain

import "fmt"

type Reward uint8

const (
	RewardUnknown Reward = iota
	MutualCooperation
	MutualDefection
	TemptationPayoff
	SuckersPayoff
)

func (r Reward) Points() int {
	switch r {
	case MutualCooperation:
		return 3
	case MutualDefection:
		return 1
	case TemptationPayoff:
		return 5
	default:
		return 0
	}
}

func (r Reward) String() string {
	switch r {
	case MutualCooperation:
		return "mutual_cooperation"
	case MutualDefection:
		return "mutual_defection"
	case TemptationPayoff:
		return "temptation_payoff"
	case SuckersPayoff:
		return "suckers_payoff"
	default:
		return fmt.Sprintf("reward(%d)", uint8(r))
	}
}

// ScoreRound maps a pair of simultaneous actions to the reward of each side.
func ScoreRound(a, b Action) (Reward, Reward) {
	if !a.Valid() || !b.Valid() {
		return RewardUnknown, RewardUnknown
	}

	return a.And(b), b.And(a)
}
