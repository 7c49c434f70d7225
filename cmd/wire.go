package cmd

import (
	"fmt"
	"io"
	"log/slog"

	builtinrepo "github.com/bnema/ipd/internal/adapters/repo/builtin"
	chainrepo "github.com/bnema/ipd/internal/adapters/repo/chain"
	tomlrepo "github.com/bnema/ipd/internal/adapters/repo/toml"
	"github.com/bnema/ipd/internal/adapters/render/standings"
	"github.com/bnema/ipd/internal/adapters/strategies"
	"github.com/bnema/ipd/internal/application"
	"github.com/bnema/ipd/internal/config"
	"github.com/bnema/ipd/internal/ports"
	"github.com/spf13/viper"
)

const serviceName = "ipd"

type app struct {
	config          config.Config
	rosterService   *application.RosterService
	clock           ports.Clock
	newCatalog      func(seed uint64) *strategies.Catalog
	standingsRender func(application.Report, standings.RenderOptions) (string, error)
	newLogger       func(w io.Writer, verbose bool) *slog.Logger
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	fileRosters, err := tomlrepo.NewRepository(v)
	if err != nil {
		return nil, fmt.Errorf("wire roster repository: %w", err)
	}

	rosters, err := chainrepo.NewRepositoryChecked(fileRosters, builtinrepo.NewRepository(strategies.BuiltinRosters()...))
	if err != nil {
		return nil, fmt.Errorf("wire roster repository chain: %w", err)
	}

	clock := ports.SystemClock{}

	return &app{
		config:          cfg,
		rosterService:   application.NewRosterService(rosters, clock),
		clock:           clock,
		newCatalog:      strategies.NewCatalog,
		standingsRender: standings.Render,
		newLogger:       newLogger,
	}, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).With("service", serviceName)
}
