package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int            `toml:"version"`
	Rosters []rosterSchema `toml:"rosters"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported rosters schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type rosterSchema struct {
	Name           string   `toml:"name"`
	Description    string   `toml:"description,omitempty"`
	Entrants       []string `toml:"entrants"`
	RoundsPerMatch int      `toml:"rounds_per_match,omitempty"`
	UpdatedAt      string   `toml:"updated_at,omitempty"`
}
