package main

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/bot"
	"github.com/lox/roshambo/internal/config"
	"github.com/lox/roshambo/internal/randutil"
)

// OpponentFlags override the opponent settings from the config file
type OpponentFlags struct {
	Rounds *int     `help:"Rounds per session (0 plays until you quit)"`
	Gamma  *float64 `help:"Blend factor for value updates, in [0,1]"`
	Policy string   `help:"Opponent policy (greedy|random)"`
	Seed   *int64   `env:"ROSHAMBO_SEED" help:"Random seed (0 picks one from the clock)"`
}

// apply loads the config file and layers the flags on top.
func (f OpponentFlags) apply(g *Globals) (*config.Config, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, err
	}
	if f.Rounds != nil {
		cfg.Session.Rounds = *f.Rounds
	}
	if f.Gamma != nil {
		cfg.Session.Gamma = *f.Gamma
	}
	if f.Policy != "" {
		cfg.Session.Policy = f.Policy
	}
	if f.Seed != nil {
		cfg.Session.Seed = *f.Seed
	}
	cfg.Session.Seed = randutil.ResolveSeed(cfg.Session.Seed)

	if g.Debug {
		cfg.Log.Level = "debug"
	}
	if g.LogJSON {
		cfg.Log.JSON = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, quiet bool) (zerolog.Logger, func() error, error) {
	return shared.NewLogger(shared.LogOptions{
		Level: cfg.Log.Level,
		JSON:  cfg.Log.JSON,
		File:  cfg.Log.File,
		Quiet: quiet,
	})
}

func newOpponent(cfg *config.Config, logger zerolog.Logger) (*agent.Agent, error) {
	rng := randutil.New(cfg.Session.Seed)
	policy, err := agent.ParsePolicy(cfg.Session.Policy, rng)
	if err != nil {
		return nil, err
	}
	return agent.New(rng,
		agent.WithGamma(cfg.Session.Gamma),
		agent.WithPolicy(policy),
		agent.WithLogger(logger),
	)
}

func botNames() string {
	return strings.Join(bot.Names(), ",")
}
