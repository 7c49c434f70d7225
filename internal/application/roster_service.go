package application

import (
	"context"
	"fmt"
	"sort"

	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
)

type RosterService struct {
	rosters ports.RosterRepository
	clock   ports.Clock
}

func NewRosterService(rosters ports.RosterRepository, clock ports.Clock) *RosterService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &RosterService{rosters: rosters, clock: clock}
}

func (s *RosterService) GetRoster(ctx context.Context, name domain.RosterName) (domain.Roster, error) {
	roster, err := s.rosters.GetByName(ctx, name)
	if err != nil {
		return domain.Roster{}, err
	}

	roster.NormalizeEntrants()
	if err := roster.Validate(); err != nil {
		return domain.Roster{}, fmt.Errorf("roster %s: %w", name, err)
	}

	return roster, nil
}

func (s *RosterService) ListRosters(ctx context.Context) ([]domain.Roster, error) {
	rosters, err := s.rosters.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rosters: %w", err)
	}

	sort.SliceStable(rosters, func(i, j int) bool {
		return rosters[i].Name < rosters[j].Name
	})

	return rosters, nil
}

func (s *RosterService) SaveRoster(ctx context.Context, cmd SaveRosterCommand) (domain.Roster, error) {
	roster := domain.Roster{
		Name:           cmd.Name,
		Description:    cmd.Description,
		Entrants:       cmd.Entrants,
		RoundsPerMatch: cmd.RoundsPerMatch,
		UpdatedAt:      s.clock.Now(),
	}
	roster.NormalizeEntrants()

	if err := roster.Validate(); err != nil {
		return domain.Roster{}, err
	}

	if err := s.rosters.Save(ctx, roster); err != nil {
		return domain.Roster{}, fmt.Errorf("save roster: %w", err)
	}

	return roster, nil
}
