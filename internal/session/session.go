// Package session runs the round loop between a player and the adaptive
// opponent: read the player's throw, let the opponent decide from the
// previous round's state, score the pair, teach the opponent, advance the
// state and report the round.
//
// A Session is single-threaded. Every round completes before the next one
// starts and the opponent's table is owned by the session, so nothing here
// takes a lock. Input and display are collaborators supplied by the caller.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/sessionid"
	"github.com/lox/roshambo/rps"
)

// Config controls a single session.
type Config struct {
	// Rounds caps the session length. Zero plays until the player quits.
	Rounds int

	// Start is the state the opponent decides from in the first round.
	Start rps.State

	// Pause is how long each round's result stays up before the next round
	// starts.
	Pause time.Duration

	// InputTimeout ends the session when the player is idle for this long.
	// Zero waits forever.
	InputTimeout time.Duration
}

// DefaultConfig returns the settings of the original tabletop game.
func DefaultConfig() Config {
	return Config{
		Rounds: 100,
		Start:  rps.State{Player: rps.Paper, Opponent: rps.Paper},
		Pause:  350 * time.Millisecond,
	}
}

// Validate checks the configuration before a session starts.
func (c Config) Validate() error {
	if c.Rounds < 0 {
		return errors.New("rounds cannot be negative")
	}
	if !c.Start.Valid() {
		return fmt.Errorf("start state %s: %w", c.Start, rps.ErrInvalidAction)
	}
	if c.Pause < 0 {
		return errors.New("pause cannot be negative")
	}
	if c.InputTimeout < 0 {
		return errors.New("input timeout cannot be negative")
	}
	return nil
}

// Session is one run of rounds against one opponent.
type Session struct {
	id       string
	cfg      Config
	opponent *agent.Agent
	input    Input
	display  Display
	clock    quartz.Clock
	logger   zerolog.Logger

	state   rps.State
	round   int
	tracker Tracker
}

// Option configures a Session.
type Option func(*Session)

// WithClock injects the clock used for pauses and input timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(s *Session) {
		s.clock = clock
	}
}

// WithLogger sets the session logger. The session id is added to it.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// New prepares a session. It does not start playing until Run.
func New(cfg Config, opponent *agent.Agent, input Input, display Display, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opponent == nil {
		return nil, errors.New("opponent is required")
	}
	if input == nil {
		return nil, errors.New("input is required")
	}
	if display == nil {
		display = Discard{}
	}

	s := &Session{
		cfg:      cfg,
		opponent: opponent,
		input:    input,
		display:  display,
		clock:    quartz.NewReal(),
		logger:   zerolog.Nop(),
		state:    cfg.Start,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.id == "" {
		s.id = sessionid.New()
	}
	s.logger = s.logger.With().Str("session", s.id).Logger()
	return s, nil
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// State returns the state the opponent will decide from next round.
func (s *Session) State() rps.State {
	return s.state
}

// Totals returns the running totals.
func (s *Session) Totals() Totals {
	return s.tracker.Totals()
}

// Opponent returns the opponent being played against.
func (s *Session) Opponent() *agent.Agent {
	return s.opponent
}

// Run plays rounds until the round cap, the player ends the session, the
// input times out or ctx is cancelled. The summary is always shown. A
// cancelled context is reported through the returned error alongside a
// valid summary; invariant violations in the core abort with an error.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	s.logger.Info().
		Int("rounds", s.cfg.Rounds).
		Float64("gamma", s.opponent.Gamma()).
		Str("policy", s.opponent.Policy().Name()).
		Str("start", s.state.String()).
		Msg("session started")

	reason, runErr := s.loop(ctx)

	summary := s.summary(reason)
	if err := s.display.ShowSummary(summary); err != nil && runErr == nil {
		runErr = fmt.Errorf("show summary: %w", err)
	}

	s.logger.Info().
		Int("rounds", summary.Rounds).
		Int("total", summary.Total).
		Str("reason", string(reason)).
		Bool("passed", summary.Passed()).
		Msg("session finished")

	return summary, runErr
}

func (s *Session) loop(ctx context.Context) (EndReason, error) {
	for s.cfg.Rounds == 0 || s.round < s.cfg.Rounds {
		if ctx.Err() != nil {
			return EndCancelled, ctx.Err()
		}

		player, err := s.nextAction(ctx)
		switch {
		case errors.Is(err, ErrEndSession):
			s.logger.Info().Int("round", s.round).Msg("player ended the session")
			return EndQuit, nil
		case errors.Is(err, ErrInputTimeout):
			s.logger.Warn().Dur("timeout", s.cfg.InputTimeout).Msg("player input timed out")
			return EndTimeout, nil
		case ctx.Err() != nil:
			return EndCancelled, ctx.Err()
		case err != nil:
			return EndQuit, fmt.Errorf("read player input: %w", err)
		}

		round, err := s.PlayRound(player)
		if err != nil {
			return EndQuit, err
		}

		var pause *quartz.Timer
		if s.cfg.Pause > 0 && (s.cfg.Rounds == 0 || s.round < s.cfg.Rounds) {
			pause = s.clock.NewTimer(s.cfg.Pause, "session", "pause")
		}

		if err := s.display.ShowRound(round); err != nil {
			if pause != nil {
				pause.Stop()
			}
			return EndQuit, fmt.Errorf("show round %d: %w", round.Index, err)
		}
		if obs, ok := s.input.(Observer); ok {
			obs.Observe(round)
		}

		if pause != nil {
			select {
			case <-pause.C:
			case <-ctx.Done():
				pause.Stop()
				return EndCancelled, ctx.Err()
			}
		}
	}
	return EndRounds, nil
}

// PlayRound runs the core of one round for an already-known player action:
// decide, score, learn, advance and record.
func (s *Session) PlayRound(player rps.Action) (Round, error) {
	if !player.Valid() {
		return Round{}, fmt.Errorf("player action: %w", rps.ErrInvalidAction)
	}

	state := s.state
	opponent, err := s.opponent.Decide(state)
	if err != nil {
		return Round{}, err
	}

	outcome, err := rps.Score(player, opponent)
	if err != nil {
		return Round{}, fmt.Errorf("score round: %w", err)
	}

	if err := s.opponent.Learn(state, opponent, outcome); err != nil {
		return Round{}, err
	}

	s.state = rps.Advance(state, player, opponent)
	total := s.tracker.Record(player, opponent, outcome)
	s.round++

	round := Round{
		Index:    s.round,
		State:    state,
		Player:   player,
		Opponent: opponent,
		Outcome:  outcome,
		Total:    total,
	}

	s.logger.Debug().
		Int("round", round.Index).
		Str("state", state.String()).
		Str("player", player.String()).
		Str("opponent", opponent.String()).
		Int("outcome", int(outcome)).
		Int("total", total).
		Msg("round played")

	return round, nil
}

func (s *Session) nextAction(ctx context.Context) (rps.Action, error) {
	if s.cfg.InputTimeout <= 0 {
		return s.input.NextAction(ctx)
	}

	waitCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	timer := s.clock.AfterFunc(s.cfg.InputTimeout, func() {
		cancel(ErrInputTimeout)
	}, "session", "input")
	defer timer.Stop()

	action, err := s.input.NextAction(waitCtx)
	if err != nil && ctx.Err() == nil && errors.Is(context.Cause(waitCtx), ErrInputTimeout) {
		return action, ErrInputTimeout
	}
	return action, err
}

func (s *Session) summary(reason EndReason) Summary {
	totals := s.tracker.Totals()
	return Summary{
		ID:     s.id,
		Rounds: s.round,
		Total:  totals.Score,
		Totals: totals,
		Reason: reason,
	}
}
