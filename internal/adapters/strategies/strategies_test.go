package strategies

import (
	"context"
	"testing"

	"github.com/bnema/ipd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, a, b domain.Entrant, rounds int) (domain.MatchTally, domain.MatchTally) {
	t.Helper()

	tallyA, tallyB, err := domain.RunMatch(context.Background(), a, b, rounds)
	require.NoError(t, err)
	return tallyA, tallyB
}

func TestTitForTatAgainstAlwaysDefect(t *testing.T) {
	t.Parallel()

	for _, rounds := range []int{2, 10, 1000} {
		tft, defector := play(t,
			domain.Entrant{Name: NameTitForTat, Agent: NewTitForTat()},
			domain.Entrant{Name: NameAlwaysDefect, Agent: AlwaysDefect{}},
			rounds,
		)

		assert.Equal(t, rounds-1, tft.Score, "rounds=%d", rounds)
		assert.Equal(t, 1, tft.CooperateCount)
		assert.Equal(t, rounds-1, tft.DefectCount)
		assert.Equal(t, 5+rounds-1, defector.Score)
	}
}

func TestTitForTatMemoryStartsFreshPerInstance(t *testing.T) {
	t.Parallel()

	tft := NewTitForTat()
	play(t,
		domain.Entrant{Name: NameTitForTat, Agent: tft},
		domain.Entrant{Name: NameAlwaysDefect, Agent: AlwaysDefect{}},
		3,
	)
	assert.Equal(t, domain.Defect, tft.next)

	fresh, _ := play(t,
		domain.Entrant{Name: NameTitForTat, Agent: NewTitForTat()},
		domain.Entrant{Name: NameAlwaysCooperate, Agent: AlwaysCooperate{}},
		3,
	)
	assert.Equal(t, 9, fresh.Score)
}

func TestGrudgerNeverForgives(t *testing.T) {
	t.Parallel()

	calls := 0
	once := playFunc(func(turn domain.Turn) error {
		calls++
		action := domain.Cooperate
		if calls == 2 {
			action = domain.Defect
		}
		_, err := turn.Submit(action)
		return err
	})

	grudger, _ := play(t,
		domain.Entrant{Name: NameGrudger, Agent: &Grudger{}},
		domain.Entrant{Name: "DefectOnce", Agent: once},
		5,
	)

	assert.Equal(t, 2, grudger.CooperateCount)
	assert.Equal(t, 3, grudger.DefectCount)
}

func TestClannishCooperatesOnlyWithItsOwnKind(t *testing.T) {
	t.Parallel()

	selfA, selfB := play(t,
		domain.Entrant{Name: NameClannish, Agent: Clannish{}},
		domain.Entrant{Name: NameClannish, Agent: Clannish{}},
		10,
	)
	assert.Equal(t, 30, selfA.Score)
	assert.Equal(t, 30, selfB.Score)
	assert.Equal(t, 10, selfA.CooperateCount)

	clannish, cooperator := play(t,
		domain.Entrant{Name: NameClannish, Agent: Clannish{}},
		domain.Entrant{Name: NameAlwaysCooperate, Agent: AlwaysCooperate{}},
		10,
	)
	assert.Equal(t, 50, clannish.Score)
	assert.Equal(t, 0, cooperator.Score)
}

func TestRandomMixesBothActions(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(42)
	types, err := catalog.Lookup([]domain.AgentName{NameRandom})
	require.NoError(t, err)

	random, _ := play(t,
		domain.Entrant{Name: NameRandom, Agent: types[0].New()},
		domain.Entrant{Name: NameAlwaysCooperate, Agent: AlwaysCooperate{}},
		1000,
	)

	assert.Equal(t, 1000, random.Rounds())
	assert.Greater(t, random.CooperateCount, 350)
	assert.Greater(t, random.DefectCount, 350)
}

func TestCatalogSeedMakesRandomReproducible(t *testing.T) {
	t.Parallel()

	run := func(seed uint64) domain.MatchTally {
		types, err := NewCatalog(seed).Lookup([]domain.AgentName{NameRandom})
		require.NoError(t, err)
		tally, _ := play(t,
			domain.Entrant{Name: NameRandom, Agent: types[0].New()},
			domain.Entrant{Name: NameAlwaysDefect, Agent: AlwaysDefect{}},
			200,
		)
		return tally
	}

	assert.Equal(t, run(7), run(7))
}

func TestCatalogLookup(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(1)
	types, err := catalog.Lookup(DefaultRoster().Entrants)
	require.NoError(t, err)
	require.Len(t, types, 5)
	assert.Equal(t, NameTitForTat, types[0].Name)
	assert.Equal(t, NameClannish, types[4].Name)
	for _, agentType := range types {
		assert.NoError(t, agentType.Validate())
		assert.NotNil(t, agentType.New())
	}

	_, err = catalog.Lookup([]domain.AgentName{"TitForTat", "Pavlov"})
	require.ErrorIs(t, err, ErrUnknownAgent)
	assert.ErrorContains(t, err, "Pavlov")

	assert.Len(t, catalog.Entries(), 6)
}

func TestBuiltinRostersOnlyNameCatalogAgents(t *testing.T) {
	t.Parallel()

	catalog := NewCatalog(1)
	rosters := BuiltinRosters()
	require.Len(t, rosters, 2)
	assert.Equal(t, domain.DefaultRosterName, rosters[0].Name)
	for _, roster := range rosters {
		require.NoError(t, roster.Validate())
		_, err := catalog.Lookup(roster.Entrants)
		require.NoError(t, err)
	}
	assert.Len(t, rosters[1].Entrants, len(catalog.Entries()))
}

type playFunc func(turn domain.Turn) error

func (f playFunc) Play(turn domain.Turn) error {
	return f(turn)
}
