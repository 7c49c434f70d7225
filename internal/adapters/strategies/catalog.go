package strategies

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/bnema/ipd/internal/domain"
)

const (
	NameTitForTat       domain.AgentName = "TitForTat"
	NameAlwaysCooperate domain.AgentName = "AlwaysCooperate"
	NameAlwaysDefect    domain.AgentName = "AlwaysDefect"
	NameRandom          domain.AgentName = "Random"
	NameClannish        domain.AgentName = "Clannish"
	NameGrudger         domain.AgentName = "Grudger"
)

var ErrUnknownAgent = errors.New("unknown agent")

type Entry struct {
	Name        domain.AgentName
	Description string
	New         domain.Factory
}

// Catalog maps agent names to factories. Random instances draw their seeds
// from the catalog seed, so a tournament built from one catalog is reproducible.
type Catalog struct {
	mu      sync.Mutex
	seeds   *rand.Rand
	entries []Entry
}

func NewCatalog(seed uint64) *Catalog {
	c := &Catalog{seeds: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
	c.entries = []Entry{
		{
			Name:        NameTitForTat,
			Description: "cooperates first, then copies the opponent's previous action",
			New:         func() domain.Agent { return NewTitForTat() },
		},
		{
			Name:        NameAlwaysCooperate,
			Description: "always cooperates",
			New:         func() domain.Agent { return AlwaysCooperate{} },
		},
		{
			Name:        NameAlwaysDefect,
			Description: "always defects",
			New:         func() domain.Agent { return AlwaysDefect{} },
		},
		{
			Name:        NameRandom,
			Description: "cooperates or defects with equal probability",
			New:         func() domain.Agent { return NewRandom(c.nextRand()) },
		},
		{
			Name:        NameClannish,
			Description: "defects, except against another Clannish",
			New:         func() domain.Agent { return Clannish{} },
		},
		{
			Name:        NameGrudger,
			Description: "cooperates until the opponent defects once",
			New:         func() domain.Agent { return &Grudger{} },
		},
	}

	return c
}

func (c *Catalog) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

func (c *Catalog) Lookup(names []domain.AgentName) ([]domain.AgentType, error) {
	types := make([]domain.AgentType, 0, len(names))
	for _, name := range names {
		entry, ok := c.find(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownAgent, name)
		}
		types = append(types, domain.AgentType{Name: entry.Name, New: entry.New})
	}

	return types, nil
}

func (c *Catalog) find(name domain.AgentName) (Entry, bool) {
	for _, entry := range c.entries {
		if entry.Name == name {
			return entry, true
		}
	}
	return Entry{}, false
}

func (c *Catalog) nextRand() *rand.Rand {
	c.mu.Lock()
	defer c.mu.Unlock()

	return rand.New(rand.NewPCG(c.seeds.Uint64(), c.seeds.Uint64()))
}

// DefaultRoster enters the classic strategies in their historical order.
func DefaultRoster() domain.Roster {
	return domain.Roster{
		Name:        domain.DefaultRosterName,
		Description: "classic strategies",
		Entrants: []domain.AgentName{
			NameTitForTat,
			NameAlwaysCooperate,
			NameAlwaysDefect,
			NameRandom,
			NameClannish,
		},
	}
}

const AllRosterName domain.RosterName = "all"

// BuiltinRosters are served when no roster file defines a roster of the same name.
func BuiltinRosters() []domain.Roster {
	return []domain.Roster{
		DefaultRoster(),
		{
			Name:        AllRosterName,
			Description: "every built-in strategy",
			Entrants: []domain.AgentName{
				NameTitForTat,
				NameAlwaysCooperate,
				NameAlwaysDefect,
				NameRandom,
				NameClannish,
				NameGrudger,
			},
		},
	}
}
