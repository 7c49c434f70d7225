package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const tracerName = "github.com/bnema/ipd/internal/application"

var (
	ErrTournamentTimeout    = errors.New("tournament timed out")
	ErrIncompleteTournament = errors.New("tournament incomplete")
	ErrAgentPanic           = errors.New("agent panicked")
)

type TournamentService struct {
	observer ports.MatchObserver
	clock    ports.Clock
	logger   *slog.Logger
	tracer   trace.Tracer
	newRunID func() string
}

func NewTournamentService(observer ports.MatchObserver, clock ports.Clock, logger *slog.Logger) *TournamentService {
	if observer == nil {
		observer = ports.NopMatchObserver{}
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &TournamentService{
		observer: observer,
		clock:    clock,
		logger:   logger,
		tracer:   otel.Tracer(tracerName),
		newRunID: uuid.NewString,
	}
}

type pairing struct {
	index int
	a     domain.AgentType
	b     domain.AgentType
}

// Run plays every unordered pairing of the entrants, self-pairings included,
// and ranks agent types by total score. Any match failure or a timeout fails
// the whole run; no partial report is returned.
func (s *TournamentService) Run(ctx context.Context, cmd RunTournamentCommand) (Report, error) {
	if err := cmd.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid tournament: %w", err)
	}

	runID := s.newRunID()
	startedAt := s.clock.Now()
	timeout := cmd.timeout()

	ctx, span := s.tracer.Start(ctx, "tournament.run", trace.WithAttributes(
		attribute.String("ipd.run_id", runID),
		attribute.Int("ipd.entrants", len(cmd.Entrants)),
		attribute.Int("ipd.rounds_per_match", cmd.RoundsPerMatch),
	))
	defer span.End()

	pairings := schedule(cmd.Entrants)

	names := make([]domain.AgentName, 0, len(cmd.Entrants))
	for _, entrant := range cmd.Entrants {
		names = append(names, entrant.Name)
	}
	ledger := NewLedger(names)
	results := make([]domain.MatchResult, len(pairings))

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	group, groupCtx := errgroup.WithContext(runCtx)
	if cmd.MaxParallel > 0 {
		group.SetLimit(cmd.MaxParallel)
	}
	dispatch := func() error {
		for _, p := range pairings {
			if err := groupCtx.Err(); err != nil {
				if waitErr := group.Wait(); waitErr != nil {
					return waitErr
				}
				return err
			}
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				result, err := s.playMatch(groupCtx, ledger, p, cmd.RoundsPerMatch)
				if err != nil {
					return err
				}
				results[p.index] = result
				return nil
			})
		}
		return group.Wait()
	}

	if err := await(runCtx, dispatch); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			err = fmt.Errorf("%w after %s: %w", ErrTournamentTimeout, timeout, err)
		}
		return Report{}, s.fail(span, err)
	}

	if err := verifyComplete(ledger, names, len(pairings)); err != nil {
		return Report{}, s.fail(span, err)
	}

	report := Report{
		RunID:          runID,
		RoundsPerMatch: cmd.RoundsPerMatch,
		StartedAt:      startedAt,
		FinishedAt:     s.clock.Now(),
		Matches:        results,
		Standings:      rank(ledger, names, cmd.RoundsPerMatch),
	}

	winner, _ := report.Winner()
	s.logger.Info("tournament completed",
		"run_id", runID,
		"entrants", len(names),
		"matches", len(pairings),
		"rounds_per_match", cmd.RoundsPerMatch,
		"winner", winner,
		"duration", report.FinishedAt.Sub(report.StartedAt),
	)

	return report, nil
}

func (s *TournamentService) playMatch(ctx context.Context, ledger *Ledger, p pairing, rounds int) (result domain.MatchResult, err error) {
	ctx, span := s.tracer.Start(ctx, "tournament.match", trace.WithAttributes(
		attribute.String("ipd.agent_a", string(p.a.Name)),
		attribute.String("ipd.agent_b", string(p.b.Name)),
	))
	defer span.End()

	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("match %s vs %s: %w: %v", p.a.Name, p.b.Name, ErrAgentPanic, recovered)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	a, err := p.a.Enter()
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("match %s vs %s: %w", p.a.Name, p.b.Name, err)
	}
	b, err := p.b.Enter()
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("match %s vs %s: %w", p.a.Name, p.b.Name, err)
	}

	tallyA, tallyB, err := domain.RunMatch(ctx, a, b, rounds)
	if err != nil {
		return domain.MatchResult{}, fmt.Errorf("match %s vs %s: %w", p.a.Name, p.b.Name, err)
	}
	// The run may have been abandoned while this match was still playing.
	if err := ctx.Err(); err != nil {
		return domain.MatchResult{}, fmt.Errorf("match %s vs %s: %w", p.a.Name, p.b.Name, err)
	}

	result = domain.MatchResult{A: p.a.Name, B: p.b.Name, Rounds: rounds, TallyA: tallyA, TallyB: tallyB}
	if err := ledger.RecordMatch(result); err != nil {
		return domain.MatchResult{}, fmt.Errorf("record match %s vs %s: %w", p.a.Name, p.b.Name, err)
	}

	span.SetAttributes(
		attribute.Int("ipd.score_a", tallyA.Score),
		attribute.Int("ipd.score_b", tallyB.Score),
	)
	s.logger.Debug("match completed",
		"a", p.a.Name,
		"b", p.b.Name,
		"score_a", tallyA.Score,
		"score_b", tallyB.Score,
	)
	s.observer.MatchCompleted(ctx, result)

	return result, nil
}

func (s *TournamentService) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logger.Error("tournament failed", "error", err)
	return err
}

// schedule builds every (i, j) pairing with i <= j. Instances are built
// inside the match task, so each side of a self-pairing gets its own.
func schedule(types []domain.AgentType) []pairing {
	pairings := make([]pairing, 0, len(types)*(len(types)+1)/2)
	for i := range types {
		for j := i; j < len(types); j++ {
			pairings = append(pairings, pairing{index: len(pairings), a: types[i], b: types[j]})
		}
	}

	return pairings
}

// await runs dispatch in the background but gives up once ctx is done. A
// parallelism limit can block dispatch itself, so it must not run on the
// caller's goroutine.
func await(ctx context.Context, dispatch func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- dispatch()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		select {
		case err := <-done:
			return err
		default:
			return ctx.Err()
		}
	}
}

func verifyComplete(ledger *Ledger, names []domain.AgentName, wantMatches int) error {
	if got := ledger.MatchCount(); got != wantMatches {
		return fmt.Errorf("%w: %d of %d matches recorded", ErrIncompleteTournament, got, wantMatches)
	}

	for _, name := range names {
		aggregate, ok := ledger.Aggregate(name)
		if !ok {
			return fmt.Errorf("%w: no tally for %s", ErrIncompleteTournament, name)
		}
		if got := len(aggregate.Opponents()); got != len(names) {
			return fmt.Errorf("%w: %s has %d of %d opponents", ErrIncompleteTournament, name, got, len(names))
		}
	}

	return nil
}

// rank orders agent types by total score, descending. Equal scores keep entrant order.
func rank(ledger *Ledger, names []domain.AgentName, rounds int) []Standing {
	standings := make([]Standing, 0, len(names))
	for _, name := range names {
		aggregate, _ := ledger.Aggregate(name)
		standings = append(standings, Standing{
			Agent:          name,
			Score:          aggregate.Score(),
			OpponentScore:  aggregate.OpponentScore(),
			CooperateCount: aggregate.CooperateCount(),
			DefectCount:    aggregate.DefectCount(),
		})
	}

	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Score > standings[j].Score
	})

	for i := range standings {
		standings[i].Rank = i + 1
		aggregate, _ := ledger.Aggregate(standings[i].Agent)
		matchups := make([]Matchup, 0, len(standings))
		for _, opponent := range standings {
			tally, _ := aggregate.Against(opponent.Agent)
			matchups = append(matchups, Matchup{
				Opponent:       opponent.Agent,
				Score:          tally.Score,
				OpponentScore:  tally.OpponentScore,
				PointsPerRound: float64(tally.Score) / float64(rounds),
			})
		}
		standings[i].Matchups = matchups
	}

	return standings
}
