// Package simulator plays many independent sessions between the adaptive
// opponent and a scripted bot and aggregates the results.
package simulator

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/bot"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/internal/statistics"
	"github.com/lox/roshambo/rps"
)

// Config holds configuration for running simulations
type Config struct {
	Sessions int
	Rounds   int
	Gamma    float64
	Policy   string
	Bot      string
	Seed     int64
	Start    rps.State

	// Parallel caps concurrently running sessions. Zero uses GOMAXPROCS.
	Parallel int

	// SessionLogs forwards every session's own log lines to Logger.
	SessionLogs bool
	Logger      zerolog.Logger
}

// DefaultConfig returns a configuration for a quick batch against the
// random bot.
func DefaultConfig() Config {
	return Config{
		Sessions: 100,
		Rounds:   session.DefaultConfig().Rounds,
		Gamma:    agent.DefaultGamma,
		Policy:   "greedy",
		Bot:      "random",
		Start:    session.DefaultConfig().Start,
		Logger:   zerolog.Nop(),
	}
}

// Validate checks the configuration before any session starts.
func (c Config) Validate() error {
	if c.Sessions <= 0 {
		return fmt.Errorf("sessions must be positive, got %d", c.Sessions)
	}
	if c.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", c.Rounds)
	}
	if c.Parallel < 0 {
		return fmt.Errorf("parallel cannot be negative, got %d", c.Parallel)
	}
	if err := agent.ValidateGamma(c.Gamma); err != nil {
		return err
	}
	if _, err := bot.Lookup(c.Bot); err != nil {
		return err
	}
	if _, err := agent.ParsePolicy(c.Policy, nil); err != nil {
		return err
	}
	if !c.Start.Valid() {
		return fmt.Errorf("start state %s: %w", c.Start, rps.ErrInvalidAction)
	}
	return nil
}

// Result is the outcome of a batch.
type Result struct {
	Bot     string
	Policy  string
	Seed    int64
	Stats   *statistics.Statistics
	Results []statistics.SessionResult // in session order
}

// Simulator runs batches of sessions
type Simulator struct {
	config Config
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	return &Simulator{config: config}
}

// Run plays every session and returns the aggregate. Sessions run in
// parallel but each owns its table, bot and generator, so the result only
// depends on the seed.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if err := s.config.Validate(); err != nil {
		return nil, err
	}

	parallel := s.config.Parallel
	if parallel == 0 {
		parallel = runtime.GOMAXPROCS(0)
	}

	s.config.Logger.Info().
		Int("sessions", s.config.Sessions).
		Int("rounds", s.config.Rounds).
		Str("bot", s.config.Bot).
		Str("policy", s.config.Policy).
		Int64("seed", s.config.Seed).
		Int("parallel", parallel).
		Msg("simulation started")

	results := make([]statistics.SessionResult, s.config.Sessions)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i := 0; i < s.config.Sessions; i++ {
		g.Go(func() error {
			result, err := s.playSession(gctx, i)
			if err != nil {
				return fmt.Errorf("session %d (seed %d): %w", i, result.Seed, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &statistics.Statistics{}
	for _, r := range results {
		stats.Add(r)
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}

	s.config.Logger.Info().
		Float64("mean", stats.Mean()).
		Float64("per_round", stats.PerRound()).
		Int("passed", stats.Passed).
		Msg("simulation finished")

	return &Result{
		Bot:     s.config.Bot,
		Policy:  s.config.Policy,
		Seed:    s.config.Seed,
		Stats:   stats,
		Results: results,
	}, nil
}

func (s *Simulator) playSession(ctx context.Context, n int) (statistics.SessionResult, error) {
	seed := randutil.Derive(s.config.Seed, n)
	result := statistics.SessionResult{Seed: seed}

	sess, _, err := s.newSession(seed, n)
	if err != nil {
		return result, err
	}

	summary, err := sess.Run(ctx)
	if err != nil {
		return result, err
	}
	if summary.Reason != session.EndRounds {
		return result, fmt.Errorf("session ended early: %s", summary.Reason)
	}

	t := summary.Totals
	result.Rounds = t.Rounds
	result.Total = t.Score
	result.Wins = t.Wins
	result.Draws = t.Draws
	result.Losses = t.Losses
	result.OpponentActions = t.Opponent
	return result, nil
}

func (s *Simulator) newSession(seed int64, n int) (*session.Session, *agent.Agent, error) {
	rng := randutil.New(seed)

	policy, err := agent.ParsePolicy(s.config.Policy, rng)
	if err != nil {
		return nil, nil, err
	}

	logger := zerolog.Nop()
	if s.config.SessionLogs {
		logger = s.config.Logger.With().Int("sim", n).Logger()
	}

	opponent, err := agent.New(rng,
		agent.WithGamma(s.config.Gamma),
		agent.WithPolicy(policy),
		agent.WithLogger(logger),
	)
	if err != nil {
		return nil, nil, err
	}

	player, err := bot.New(s.config.Bot, rng)
	if err != nil {
		return nil, nil, err
	}

	cfg := session.Config{
		Rounds: s.config.Rounds,
		Start:  s.config.Start,
	}
	sess, err := session.New(cfg, opponent, player, session.Discard{},
		session.WithLogger(logger),
		session.WithID(fmt.Sprintf("sim-%d-%d", seed, n)),
	)
	if err != nil {
		return nil, nil, err
	}
	return sess, opponent, nil
}

// Train plays a single session against the configured bot and returns the
// opponent's learned table together with the session summary.
func (s *Simulator) Train(ctx context.Context) (*agent.Table, session.Summary, error) {
	if err := s.config.Validate(); err != nil {
		return nil, session.Summary{}, err
	}
	sess, opponent, err := s.newSession(s.config.Seed, 0)
	if err != nil {
		return nil, session.Summary{}, err
	}
	summary, err := sess.Run(ctx)
	if err != nil {
		return nil, summary, err
	}
	return opponent.Snapshot(), summary, nil
}

// RunSimulation is a convenience function for running a simulation with basic parameters
func RunSimulation(ctx context.Context, sessions, rounds int, botName string, seed int64) (*Result, error) {
	config := DefaultConfig()
	config.Sessions = sessions
	config.Rounds = rounds
	config.Bot = botName
	config.Seed = seed
	return New(config).Run(ctx)
}

// PrintSummary prints a comprehensive summary of simulation results. Scores
// are from the player's side, so a negative mean means the opponent is
// winning.
func PrintSummary(w io.Writer, result *Result) {
	stats := result.Stats
	low, high := stats.ConfidenceInterval95()

	fmt.Fprintf(w, "\n=== FINAL RESULTS vs %s-bot (%s opponent) ===\n", result.Bot, result.Policy)
	fmt.Fprintf(w, "Sessions played: %d (%d rounds, seed %d)\n", stats.Sessions, stats.Rounds, result.Seed)

	fmt.Fprintf(w, "\n=== STATISTICAL RESULTS ===\n")
	fmt.Fprintf(w, "Mean: %.3f per session (%.4f per round)\n", stats.Mean(), stats.PerRound())
	fmt.Fprintf(w, "Median: %.3f\n", stats.Median())
	fmt.Fprintf(w, "Std Dev: %.3f\n", stats.StdDev())
	fmt.Fprintf(w, "Std Error: %.3f\n", stats.StdError())
	fmt.Fprintf(w, "95%% CI: [%.3f, %.3f] per session\n", low, high)
	fmt.Fprintf(w, "Percentiles: P5=%.1f, P25=%.1f, P75=%.1f, P95=%.1f\n",
		stats.Percentile(0.05), stats.Percentile(0.25), stats.Percentile(0.75), stats.Percentile(0.95))

	fmt.Fprintf(w, "\n=== ROUND OUTCOMES (player side) ===\n")
	fmt.Fprintf(w, "Wins: %d (%.1f%%)  Draws: %d (%.1f%%)  Losses: %d (%.1f%%)\n",
		stats.Wins, stats.WinRate()*100, stats.Draws, stats.DrawRate()*100, stats.Losses, stats.LossRate()*100)
	fmt.Fprintf(w, "Sessions passed (total >= 0): %d of %d\n", stats.Passed, stats.Sessions)

	fmt.Fprintf(w, "\n=== OPPONENT THROWS ===\n")
	for _, a := range rps.Actions() {
		n := stats.OpponentActions[a]
		fmt.Fprintf(w, "%-8s %6d (%.1f%%)\n", a.Title(), n, 100*float64(n)/float64(max(stats.Rounds, 1)))
	}
}
