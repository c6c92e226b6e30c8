package agent

import (
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/roshambo/rps"
)

// Agent is the adaptive opponent for one session. It owns its table and is
// not safe for concurrent use; a session drives it from a single goroutine.
type Agent struct {
	table  *Table
	policy Policy
	gamma  float64
	logger zerolog.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithGamma sets the blend factor used by Learn.
func WithGamma(gamma float64) Option {
	return func(a *Agent) {
		a.gamma = gamma
	}
}

// WithPolicy replaces the default greedy policy.
func WithPolicy(p Policy) Option {
	return func(a *Agent) {
		a.policy = p
	}
}

// WithTable starts the agent from an existing table instead of a fresh one.
func WithTable(t *Table) Option {
	return func(a *Agent) {
		a.table = t
	}
}

// WithLogger attaches a logger for per-round debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(a *Agent) {
		a.logger = logger
	}
}

// New builds an opponent whose table is seeded from rng.
func New(rng *rand.Rand, opts ...Option) (*Agent, error) {
	a := &Agent{
		policy: Greedy{},
		gamma:  DefaultGamma,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if err := ValidateGamma(a.gamma); err != nil {
		return nil, err
	}
	if a.table == nil {
		a.table = NewTable(rng)
	}
	return a, nil
}

// Decide picks the opponent's action for the current state.
func (a *Agent) Decide(s rps.State) (rps.Action, error) {
	action, err := a.policy.Choose(a.table, s)
	if err != nil {
		return rps.Rock, fmt.Errorf("choose action in %s: %w", s, err)
	}
	return action, nil
}

// Learn feeds back the round result. outcome is from the player's side and
// is flipped before the table update.
func (a *Agent) Learn(s rps.State, action rps.Action, outcome rps.Outcome) error {
	if err := a.table.Update(s, action, outcome.Flip(), a.gamma); err != nil {
		return fmt.Errorf("update %s: %w", s, err)
	}
	if e := a.logger.Debug(); e.Enabled() {
		row := a.table.rows[s.Index()]
		e.Str("state", s.String()).
			Str("played", action.String()).
			Int("outcome", int(outcome.Flip())).
			Floats64("row", row[:]).
			Msg("value row updated")
	}
	return nil
}

// Gamma returns the blend factor in use.
func (a *Agent) Gamma() float64 {
	return a.gamma
}

// Policy returns the active policy.
func (a *Agent) Policy() Policy {
	return a.policy
}

// Snapshot returns a copy of the current table.
func (a *Agent) Snapshot() *Table {
	return a.table.Clone()
}
