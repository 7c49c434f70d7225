package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".ipd"

	RoundsKey       = "tournament.rounds"
	TimeoutKey      = "tournament.timeout"
	MaxParallelKey  = "tournament.max_parallel"
	RosterKey       = "tournament.roster"
	SeedKey         = "tournament.seed"
	RosterPathKey   = "roster.path"
	OTelEndpointKey = "telemetry.endpoint"

	DefaultTimeout = 120 * time.Second
	DefaultRoster  = "default"
)

// Config is the effective run configuration. Precedence, lowest first:
// built-in defaults, $HOME/.ipd/config.toml, IPD_* environment variables.
// Command-line flags are applied on top by the caller.
type Config struct {
	// Rounds per match. Zero draws a random count for every run.
	Rounds       int           `env:"IPD_ROUNDS"`
	Timeout      time.Duration `env:"IPD_TIMEOUT"`
	MaxParallel  int           `env:"IPD_MAX_PARALLEL"`
	Roster       string        `env:"IPD_ROSTER"`
	Seed         uint64        `env:"IPD_SEED"`
	RosterPath   string        `env:"IPD_ROSTER_PATH"`
	OTelEndpoint string        `env:"IPD_OTEL_ENDPOINT"`
}

func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(filepath.Join(homeDir, configDir))
	v.SetDefault(RoundsKey, 0)
	v.SetDefault(TimeoutKey, DefaultTimeout)
	v.SetDefault(MaxParallelKey, 0)
	v.SetDefault(RosterKey, DefaultRoster)
	v.SetDefault(SeedKey, 0)
	v.SetDefault(RosterPathKey, filepath.Join(homeDir, configDir, "rosters.toml"))
	v.SetDefault(OTelEndpointKey, "")

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Rounds:       v.GetInt(RoundsKey),
		Timeout:      v.GetDuration(TimeoutKey),
		MaxParallel:  v.GetInt(MaxParallelKey),
		Roster:       v.GetString(RosterKey),
		Seed:         v.GetUint64(SeedKey),
		RosterPath:   v.GetString(RosterPathKey),
		OTelEndpoint: v.GetString(OTelEndpointKey),
	}

	// Unset variables leave the file values in place.
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	v.Set(RosterPathKey, cfg.RosterPath)

	return cfg, nil
}

func (c Config) Validate() error {
	if c.Rounds < 0 {
		return fmt.Errorf("invalid config: rounds must not be negative")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid config: timeout must be positive")
	}
	if c.MaxParallel < 0 {
		return fmt.Errorf("invalid config: max parallel must not be negative")
	}
	if strings.TrimSpace(c.Roster) == "" {
		return fmt.Errorf("invalid config: roster is required")
	}
	if strings.TrimSpace(c.RosterPath) == "" {
		return fmt.Errorf("invalid config: roster path is required")
	}

	return nil
}
