package application

import (
	"time"

	"github.com/bnema/ipd/internal/domain"
)

type Report struct {
	RunID          string               `json:"run_id" toml:"run_id"`
	RoundsPerMatch int                  `json:"rounds_per_match" toml:"rounds_per_match"`
	StartedAt      time.Time            `json:"started_at" toml:"started_at"`
	FinishedAt     time.Time            `json:"finished_at" toml:"finished_at"`
	Matches        []domain.MatchResult `json:"matches" toml:"matches"`
	Standings      []Standing           `json:"standings" toml:"standings"`
}

type Standing struct {
	Rank           int              `json:"rank" toml:"rank"`
	Agent          domain.AgentName `json:"agent" toml:"agent"`
	Score          int              `json:"score" toml:"score"`
	OpponentScore  int              `json:"opponent_score" toml:"opponent_score"`
	CooperateCount int              `json:"cooperate_count" toml:"cooperate_count"`
	DefectCount    int              `json:"defect_count" toml:"defect_count"`
	// Matchups follow the final ranking order.
	Matchups []Matchup `json:"matchups" toml:"matchups"`
}

type Matchup struct {
	Opponent       domain.AgentName `json:"opponent" toml:"opponent"`
	Score          int              `json:"score" toml:"score"`
	OpponentScore  int              `json:"opponent_score" toml:"opponent_score"`
	PointsPerRound float64          `json:"points_per_round" toml:"points_per_round"`
}

func (r Report) Winner() (domain.AgentName, bool) {
	if len(r.Standings) == 0 {
		return "", false
	}
	return r.Standings[0].Agent, true
}

func (r Report) Standing(agent domain.AgentName) (Standing, bool) {
	for _, standing := range r.Standings {
		if standing.Agent == agent {
			return standing, true
		}
	}
	return Standing{}, false
}

func (r Report) Ranking() []domain.AgentName {
	names := make([]domain.AgentName, 0, len(r.Standings))
	for _, standing := range r.Standings {
		names = append(names, standing.Agent)
	}
	return names
}

func (s Standing) Against(opponent domain.AgentName) (Matchup, bool) {
	for _, matchup := range s.Matchups {
		if matchup.Opponent == opponent {
			return matchup, true
		}
	}
	return Matchup{}, false
}
