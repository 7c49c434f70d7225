package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/bnema/ipd/internal/adapters/render/standings"
	"github.com/bnema/ipd/internal/application"
	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
	"github.com/bnema/ipd/internal/telemetry"
	"github.com/bnema/ipd/internal/version"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const (
	minRandomRounds = 1000
	maxRandomRounds = 10000

	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
	formatTOML  = "toml"
)

type runOptions struct {
	rounds      int
	timeout     time.Duration
	maxParallel int
	seed        uint64
	roster      string
	agents      []string
	format      string
	matches     bool
	noProgress  bool
	verbose     bool
}

func newRunCmd(app *app) *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a round-robin tournament",
		Long:  "Run plays every pairing of the entrants, including each agent against a copy of itself, and prints the ranked standings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTournament(cmd, app, opts)
		},
	}

	cmd.Flags().IntVar(&opts.rounds, "rounds", app.config.Rounds, "Rounds per match (0 draws a random count in [1000, 10000))")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", app.config.Timeout, "Upper bound for the whole tournament")
	cmd.Flags().IntVar(&opts.maxParallel, "max-parallel", app.config.MaxParallel, "Maximum concurrently running matches (0 for no limit)")
	cmd.Flags().Uint64Var(&opts.seed, "seed", app.config.Seed, "Seed for random strategies and round counts (0 derives one from the clock)")
	cmd.Flags().StringVar(&opts.roster, "roster", app.config.Roster, "Roster to enter")
	cmd.Flags().StringSliceVar(&opts.agents, "agents", nil, "Comma-separated agents to enter instead of a roster")
	cmd.Flags().StringVar(&opts.format, "format", formatTable, "Output format: table, csv, json or toml")
	cmd.Flags().BoolVar(&opts.matches, "matches", false, "Print each match summary as it finishes")
	cmd.Flags().BoolVar(&opts.noProgress, "no-progress", false, "Disable the progress spinner")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable debug logging")
	cmd.MarkFlagsMutuallyExclusive("roster", "agents")

	return cmd
}

func runTournament(cmd *cobra.Command, app *app, opts runOptions) error {
	format := strings.ToLower(strings.TrimSpace(opts.format))
	switch format {
	case formatTable, formatCSV, formatJSON, formatTOML:
	default:
		return fmt.Errorf("unsupported format %q (want table, csv, json or toml)", opts.format)
	}

	ctx := cmd.Context()
	shutdown, err := telemetry.Setup(ctx, serviceName, version.Version, app.config.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer func() {
		_ = shutdown(context.Background())
	}()

	names, rosterRounds, err := resolveEntrants(cmd, app, opts)
	if err != nil {
		return err
	}

	seed := opts.seed
	if seed == 0 {
		seed = uint64(app.clock.Now().UnixNano())
	}

	entrants, err := app.newCatalog(seed).Lookup(names)
	if err != nil {
		return err
	}

	rounds := opts.rounds
	if !cmd.Flags().Changed("rounds") && rosterRounds > 0 {
		rounds = rosterRounds
	}
	if rounds == 0 {
		rounds = randomRounds(seed)
	}

	var observer ports.MatchObserver = ports.NopMatchObserver{}
	if opts.matches && format == formatTable {
		observer = newMatchPrinter(cmd.OutOrStdout())
	}

	logger := app.newLogger(cmd.ErrOrStderr(), opts.verbose)
	service := application.NewTournamentService(observer, app.clock, logger)
	command := application.RunTournamentCommand{
		Entrants:       entrants,
		RoundsPerMatch: rounds,
		Timeout:        opts.timeout,
		MaxParallel:    opts.maxParallel,
	}

	var report application.Report
	run := func(ctx context.Context) error {
		var runErr error
		report, runErr = service.Run(ctx, command)
		return runErr
	}

	showProgress := format == formatTable && !opts.noProgress && !opts.matches
	if showProgress {
		matches := len(entrants) * (len(entrants) + 1) / 2
		label := fmt.Sprintf("Running %d matches of %d rounds...", matches, rounds)
		err = runTournamentSpinner(ctx, cmd.ErrOrStderr(), label, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return err
	}

	return writeReport(cmd.OutOrStdout(), app, report, format)
}

// resolveEntrants returns the entrant names and the roster's own rounds per
// match, which is zero when agents are given explicitly.
func resolveEntrants(cmd *cobra.Command, app *app, opts runOptions) ([]domain.AgentName, int, error) {
	if len(opts.agents) > 0 {
		roster := domain.Roster{Name: "adhoc"}
		for _, agent := range opts.agents {
			roster.Entrants = append(roster.Entrants, domain.AgentName(agent))
		}
		roster.NormalizeEntrants()
		if err := roster.Validate(); err != nil {
			return nil, 0, fmt.Errorf("agents: %w", err)
		}
		return roster.Entrants, 0, nil
	}

	roster, err := app.rosterService.GetRoster(cmd.Context(), domain.RosterName(opts.roster))
	if err != nil {
		return nil, 0, err
	}

	return roster.Entrants, roster.RoundsPerMatch, nil
}

func randomRounds(seed uint64) int {
	rng := rand.New(rand.NewPCG(seed, ^seed))
	return minRandomRounds + rng.IntN(maxRandomRounds-minRandomRounds)
}

func writeReport(out io.Writer, app *app, report application.Report, format string) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case formatTOML:
		data, err := toml.Marshal(report)
		if err != nil {
			return fmt.Errorf("encode toml report: %w", err)
		}
		_, err = out.Write(data)
		return err
	case formatCSV:
		return standings.WriteMatchupCSV(out, report)
	default:
		rendered, err := app.standingsRender(report, standings.RenderOptions{})
		if err != nil {
			return fmt.Errorf("render standings: %w", err)
		}
		_, err = fmt.Fprintln(out, rendered)
		return err
	}
}
