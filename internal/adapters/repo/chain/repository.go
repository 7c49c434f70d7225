package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
)

// Repository reads from primary first and falls back when a roster is not
// found there. Writes always go to primary.
type Repository struct {
	primary  ports.RosterRepository
	fallback ports.RosterRepository
}

var _ ports.RosterRepository = (*Repository)(nil)

var (
	errNilPrimaryRepository  = errors.New("primary roster repository is nil")
	errNilFallbackRepository = errors.New("fallback roster repository is nil")
)

func NewRepository(primary ports.RosterRepository, fallback ports.RosterRepository) *Repository {
	repo, err := NewRepositoryChecked(primary, fallback)
	if err != nil {
		panic(err)
	}

	return repo
}

func NewRepositoryChecked(primary ports.RosterRepository, fallback ports.RosterRepository) (*Repository, error) {
	if primary == nil {
		return nil, errNilPrimaryRepository
	}
	if fallback == nil {
		return nil, errNilFallbackRepository
	}

	return &Repository{primary: primary, fallback: fallback}, nil
}

func (r *Repository) GetByName(ctx context.Context, name domain.RosterName) (domain.Roster, error) {
	roster, err := r.primary.GetByName(ctx, name)
	if err == nil {
		return roster, nil
	}
	if !errors.Is(err, domain.ErrRosterNotFound) {
		return domain.Roster{}, err
	}

	roster, fallbackErr := r.fallback.GetByName(ctx, name)
	if fallbackErr == nil {
		return roster, nil
	}
	if errors.Is(fallbackErr, domain.ErrRosterNotFound) {
		return domain.Roster{}, fallbackErr
	}

	return domain.Roster{}, fmt.Errorf("primary repository: %w; fallback repository: %w", err, fallbackErr)
}

// List merges both repositories. A primary roster shadows a fallback roster
// with the same name.
func (r *Repository) List(ctx context.Context) ([]domain.Roster, error) {
	primary, err := r.primary.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("primary repository list: %w", err)
	}

	fallback, err := r.fallback.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("fallback repository list: %w", err)
	}

	seen := make(map[domain.RosterName]struct{}, len(primary))
	merged := make([]domain.Roster, 0, len(primary)+len(fallback))
	for _, roster := range primary {
		seen[roster.Name] = struct{}{}
		merged = append(merged, roster)
	}
	for _, roster := range fallback {
		if _, ok := seen[roster.Name]; ok {
			continue
		}
		merged = append(merged, roster)
	}

	return merged, nil
}

func (r *Repository) Save(ctx context.Context, roster domain.Roster) error {
	return r.primary.Save(ctx, roster)
}
