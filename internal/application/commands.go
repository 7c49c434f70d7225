package application

import (
	"fmt"
	"time"

	"github.com/bnema/ipd/internal/domain"
)

const DefaultTournamentTimeout = 120 * time.Second

type RunTournamentCommand struct {
	Entrants       []domain.AgentType
	RoundsPerMatch int
	// Timeout bounds the whole tournament. Zero selects DefaultTournamentTimeout.
	Timeout time.Duration
	// MaxParallel caps concurrently running matches. Zero runs every match at once.
	MaxParallel int
}

func (c RunTournamentCommand) Validate() error {
	if len(c.Entrants) == 0 {
		return fmt.Errorf("at least one entrant is required")
	}
	if c.RoundsPerMatch <= 0 {
		return domain.ErrInvalidRounds
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if c.MaxParallel < 0 {
		return fmt.Errorf("max parallel must not be negative")
	}

	seen := make(map[domain.AgentName]struct{}, len(c.Entrants))
	for _, entrant := range c.Entrants {
		if err := entrant.Validate(); err != nil {
			return err
		}
		if _, ok := seen[entrant.Name]; ok {
			return fmt.Errorf("agent %q entered twice", entrant.Name)
		}
		seen[entrant.Name] = struct{}{}
	}

	return nil
}

func (c RunTournamentCommand) timeout() time.Duration {
	if c.Timeout == 0 {
		return DefaultTournamentTimeout
	}
	return c.Timeout
}

type SaveRosterCommand struct {
	Name           domain.RosterName
	Description    string
	Entrants       []domain.AgentName
	RoundsPerMatch int
}
