package domain

import (
	"fmt"
	"strings"
	"time"
)

type RosterName string

const DefaultRosterName RosterName = "default"

// Roster is a named, ordered list of agent types entered into a tournament.
// Entrant order is the tie-break order of the final ranking.
type Roster struct {
	Name           RosterName
	Description    string
	Entrants       []AgentName
	RoundsPerMatch int
	UpdatedAt      time.Time
}

func (r Roster) Validate() error {
	if strings.TrimSpace(string(r.Name)) == "" {
		return fmt.Errorf("name is required")
	}
	if len(r.Entrants) == 0 {
		return fmt.Errorf("at least one entrant is required")
	}
	if r.RoundsPerMatch < 0 {
		return fmt.Errorf("rounds per match must not be negative")
	}

	return nil
}

func (r *Roster) NormalizeEntrants() {
	if r == nil {
		return
	}

	entrants := make([]AgentName, 0, len(r.Entrants))
	seen := make(map[AgentName]struct{}, len(r.Entrants))
	for _, entrant := range r.Entrants {
		trimmed := AgentName(strings.TrimSpace(string(entrant)))
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; ok {
			continue
		}
		seen[trimmed] = struct{}{}
		entrants = append(entrants, trimmed)
	}

	r.Entrants = entrants
}
