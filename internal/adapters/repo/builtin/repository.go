package builtin

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
)

var ErrReadOnly = errors.New("built-in rosters are read-only")

// Repository serves a fixed set of rosters compiled into the binary.
type Repository struct {
	rosters []domain.Roster
}

var _ ports.RosterRepository = (*Repository)(nil)

func NewRepository(rosters ...domain.Roster) *Repository {
	copied := make([]domain.Roster, 0, len(rosters))
	for _, roster := range rosters {
		copied = append(copied, cloneRoster(roster))
	}

	return &Repository{rosters: copied}
}

func (r *Repository) GetByName(ctx context.Context, name domain.RosterName) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}

	for _, roster := range r.rosters {
		if roster.Name == name {
			return cloneRoster(roster), nil
		}
	}

	return domain.Roster{}, fmt.Errorf("%w: %s", domain.ErrRosterNotFound, name)
}

func (r *Repository) List(ctx context.Context) ([]domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rosters := make([]domain.Roster, 0, len(r.rosters))
	for _, roster := range r.rosters {
		rosters = append(rosters, cloneRoster(roster))
	}

	return rosters, nil
}

func (r *Repository) Save(context.Context, domain.Roster) error {
	return ErrReadOnly
}

func cloneRoster(roster domain.Roster) domain.Roster {
	roster.Entrants = append([]domain.AgentName(nil), roster.Entrants...)
	return roster
}
