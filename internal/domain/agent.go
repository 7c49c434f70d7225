package domain

import (
	"fmt"
	"strings"
)

// Result is what a side learns once both actions of a round are committed.
type Result struct {
	Reward         Reward `json:"reward"`
	OpponentAction Action `json:"opponent_action"`
}

// Turn is the submission channel handed to an agent for exactly one round.
type Turn interface {
	// Submit commits the agent's action and returns the round result once the
	// opponent has committed too. It must be called exactly once per round.
	Submit(action Action) (Result, error)
	// SelfPlay reports whether the opponent is another instance of the same agent type.
	SelfPlay() bool
}

// Agent is one side of a match. Instances live for a single match.
type Agent interface {
	Play(turn Turn) error
}

type AgentName string

type Factory func() Agent

type AgentType struct {
	Name AgentName
	New  Factory
}

func (t AgentType) Validate() error {
	if strings.TrimSpace(string(t.Name)) == "" {
		return fmt.Errorf("agent name is required")
	}
	if t.New == nil {
		return fmt.Errorf("agent %q: factory is required", t.Name)
	}

	return nil
}

// Entrant is a live agent instance bound to the name of its type.
type Entrant struct {
	Name  AgentName
	Agent Agent
}

func (t AgentType) Enter() (Entrant, error) {
	agent := t.New()
	if agent == nil {
		return Entrant{}, fmt.Errorf("agent %q: %w", t.Name, ErrNilAgent)
	}

	return Entrant{Name: t.Name, Agent: agent}, nil
}
