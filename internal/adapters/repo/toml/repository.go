package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/ipd/internal/domain"
	"github.com/bnema/ipd/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	RosterPathKey     = "roster.path"
	rostersFileMode   = 0o600
	rostersDirMode    = 0o700
	rostersConfigDir  = ".ipd"
	rostersConfigFile = "rosters.toml"
	tempFilePattern   = ".rosters-*.toml.tmp"
)

// Repository stores rosters in a single versioned TOML file. Instances
// pointing at the same path share one lock.
type Repository struct {
	rostersPath string
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.RosterRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	rostersPath := cfg.GetString(RosterPathKey)
	if rostersPath == "" {
		defaultPath, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		rostersPath = defaultPath
	}

	rostersPath, err := normalizeRostersPath(rostersPath)
	if err != nil {
		return nil, err
	}

	return &Repository{rostersPath: rostersPath, mu: lockForPath(rostersPath)}, nil
}

// DefaultPath is $HOME/.ipd/rosters.toml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}

	return filepath.Join(homeDir, rostersConfigDir, rostersConfigFile), nil
}

func (r *Repository) Path() string {
	return r.rostersPath
}

func (r *Repository) Save(ctx context.Context, roster domain.Roster) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	encoded := toSchema(roster)
	updated := false
	for i := range file.Rosters {
		if file.Rosters[i].Name == encoded.Name {
			file.Rosters[i] = encoded
			updated = true
			break
		}
	}

	if !updated {
		file.Rosters = append(file.Rosters, encoded)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

func (r *Repository) GetByName(ctx context.Context, name domain.RosterName) (domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return domain.Roster{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return domain.Roster{}, err
	}

	for _, entry := range file.Rosters {
		if entry.Name == string(name) {
			return fromSchema(entry), nil
		}
	}

	return domain.Roster{}, fmt.Errorf("%w: %s", domain.ErrRosterNotFound, name)
}

func (r *Repository) List(ctx context.Context) ([]domain.Roster, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	rosters := make([]domain.Roster, 0, len(file.Rosters))
	for _, entry := range file.Rosters {
		rosters = append(rosters, fromSchema(entry))
	}

	return rosters, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.rostersPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read rosters file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode rosters file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.rostersPath), rostersDirMode); err != nil {
		return fmt.Errorf("create rosters directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode rosters file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.rostersPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp rosters file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp rosters file: %w", err)
	}

	if err := tempFile.Chmod(rostersFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp rosters file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp rosters file: %w", err)
	}

	if err := os.Rename(tempName, r.rostersPath); err != nil {
		return fmt.Errorf("replace rosters file: %w", err)
	}

	cleanup = false
	return nil
}

func normalizeRostersPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve rosters path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func toSchema(roster domain.Roster) rosterSchema {
	entrants := make([]string, 0, len(roster.Entrants))
	for _, entrant := range roster.Entrants {
		entrants = append(entrants, string(entrant))
	}

	return rosterSchema{
		Name:           string(roster.Name),
		Description:    roster.Description,
		Entrants:       entrants,
		RoundsPerMatch: roster.RoundsPerMatch,
		UpdatedAt:      formatTime(roster.UpdatedAt),
	}
}

func fromSchema(roster rosterSchema) domain.Roster {
	entrants := make([]domain.AgentName, 0, len(roster.Entrants))
	for _, entrant := range roster.Entrants {
		entrants = append(entrants, domain.AgentName(entrant))
	}

	return domain.Roster{
		Name:           domain.RosterName(roster.Name),
		Description:    roster.Description,
		Entrants:       entrants,
		RoundsPerMatch: roster.RoundsPerMatch,
		UpdatedAt:      parseTime(roster.UpdatedAt),
	}
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.UTC().Format(time.RFC3339)
}
