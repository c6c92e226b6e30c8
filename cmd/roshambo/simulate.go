package main

import (
	"os"

	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/simulator"
)

type SimulateCmd struct {
	OpponentFlags

	Sessions    int    `default:"1000" help:"Number of sessions to play"`
	Bot         string `default:"random" enum:"${bots}" help:"Scripted player (${bots})"`
	Parallel    int    `default:"0" help:"Sessions to run at once (0 uses GOMAXPROCS)"`
	SessionLogs bool   `help:"Log every session, not just the batch"`
}

func (c *SimulateCmd) Run(g *Globals) error {
	cfg, err := c.apply(g)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	start, err := cfg.Start()
	if err != nil {
		return err
	}

	ctx, stop := shared.SetupSignalHandlerWithLogger(logger)
	defer stop()

	result, err := simulator.New(simulator.Config{
		Sessions:    c.Sessions,
		Rounds:      cfg.Session.Rounds,
		Gamma:       cfg.Session.Gamma,
		Policy:      cfg.Session.Policy,
		Bot:         c.Bot,
		Seed:        cfg.Session.Seed,
		Start:       start,
		Parallel:    c.Parallel,
		SessionLogs: c.SessionLogs,
		Logger:      logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, result)
	return nil
}
