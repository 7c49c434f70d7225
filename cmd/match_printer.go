package cmd

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/ipd/internal/adapters/render/standings"
	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
)

// matchPrinter writes a summary block for every match as soon as it finishes.
type matchPrinter struct {
	mu  sync.Mutex
	out io.Writer
}

var _ ports.MatchObserver = (*matchPrinter)(nil)

func newMatchPrinter(out io.Writer) *matchPrinter {
	return &matchPrinter{out: out}
}

func (p *matchPrinter) MatchCompleted(_ context.Context, result domain.MatchResult) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, _ = fmt.Fprintln(p.out, standings.MatchSummary(result))
}
