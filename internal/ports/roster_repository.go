package ports

import (
	"context"

	"github.com/bnema/ipd/internal/domain"
)

type RosterRepository interface {
	GetByName(ctx context.Context, name domain.RosterName) (domain.Roster, error)
	List(ctx context.Context) ([]domain.Roster, error)
	Save(ctx context.Context, roster domain.Roster) error
}
