package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/ipd/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, path string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(RosterPathKey, path)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "rosters.toml"))

	updatedAt := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	classics := domain.Roster{
		Name:        "classics",
		Description: "Axelrod's first round",
		Entrants:    []domain.AgentName{"TitForTat", "AlwaysDefect"},
		UpdatedAt:   updatedAt,
	}
	short := domain.Roster{
		Name:           "short",
		Entrants:       []domain.AgentName{"Grudger"},
		RoundsPerMatch: 25,
		UpdatedAt:      updatedAt,
	}

	require.NoError(t, repo.Save(context.Background(), classics))
	require.NoError(t, repo.Save(context.Background(), short))

	got, err := repo.GetByName(context.Background(), classics.Name)
	require.NoError(t, err)
	assert.Equal(t, classics, got)

	rosters, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Roster{classics, short}, rosters)
}

func TestRepositorySaveReplacesExistingRoster(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "rosters.toml"))

	require.NoError(t, repo.Save(context.Background(), domain.Roster{Name: "mine", Entrants: []domain.AgentName{"Random"}}))
	require.NoError(t, repo.Save(context.Background(), domain.Roster{Name: "mine", Entrants: []domain.AgentName{"Grudger", "Clannish"}}))

	rosters, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rosters, 1)
	assert.Equal(t, []domain.AgentName{"Grudger", "Clannish"}, rosters[0].Entrants)
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Roster{Name: "mine", Entrants: []domain.AgentName{"TitForTat"}}))

	rostersPath := filepath.Join(homeDir, ".ipd", "rosters.toml")
	assert.Equal(t, rostersPath, repo.Path())
	info, err := os.Stat(rostersPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryMissingFileBehaviors(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "rosters.toml"))

	rosters, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rosters)

	_, err = repo.GetByName(context.Background(), "default")
	require.ErrorIs(t, err, domain.ErrRosterNotFound)
}

func TestRepositoryListMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	rostersPath := filepath.Join(t.TempDir(), "rosters.toml")
	require.NoError(t, os.WriteFile(rostersPath, []byte("rosters = ["), 0o600))

	repo := newTestRepository(t, rostersPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode rosters file")
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	rostersPath := filepath.Join(t.TempDir(), "rosters.toml")
	require.NoError(t, os.WriteFile(rostersPath, []byte(strings.Join([]string{
		"[[rosters]]",
		"name = \"nice\"",
		"entrants = [\"AlwaysCooperate\", \"TitForTat\"]",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, rostersPath)

	roster, err := repo.GetByName(context.Background(), "nice")
	require.NoError(t, err)
	assert.Equal(t, []domain.AgentName{"AlwaysCooperate", "TitForTat"}, roster.Entrants)
	assert.Zero(t, roster.RoundsPerMatch)
	assert.True(t, roster.UpdatedAt.IsZero())
}

func TestRepositorySaveCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "rosters.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Roster{Name: "mine", Entrants: []domain.AgentName{"Random"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesPreserveAllRosters(t *testing.T) {
	t.Parallel()

	rostersPath := filepath.Join(t.TempDir(), "rosters.toml")
	repoA := newTestRepository(t, rostersPath)
	repoB := newTestRepository(t, rostersPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	save := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			name := domain.RosterName(fmt.Sprintf("%s-%d", prefix, i))
			errCh <- repo.Save(context.Background(), domain.Roster{Name: name, Entrants: []domain.AgentName{"TitForTat"}})
		}
	}

	go save(repoA, "a")
	go save(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	rosters, err := repoA.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, rosters, perRepoWrites*2)
}

func TestRepositorySaveSerializedTOMLIncludesVersion(t *testing.T) {
	t.Parallel()

	rostersPath := filepath.Join(t.TempDir(), "rosters.toml")
	repo := newTestRepository(t, rostersPath)

	require.NoError(t, repo.Save(context.Background(), domain.Roster{Name: "mine", Entrants: []domain.AgentName{"Random"}}))

	data, err := os.ReadFile(rostersPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	rostersPath := filepath.Join(t.TempDir(), "rosters.toml")
	require.NoError(t, os.WriteFile(rostersPath, []byte("version = 999\n\nrosters = []\n"), 0o600))

	repo := newTestRepository(t, rostersPath)

	_, err := repo.List(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported rosters schema version")
}
