package ports

import (
	"context"

	"github.com/bnema/ipd/internal/domain"
)

// MatchObserver is notified once per finished match. Matches run concurrently,
// so implementations must be safe for concurrent use.
type MatchObserver interface {
	MatchCompleted(ctx context.Context, result domain.MatchResult)
}

type NopMatchObserver struct{}

func (NopMatchObserver) MatchCompleted(context.Context, domain.MatchResult) {}
