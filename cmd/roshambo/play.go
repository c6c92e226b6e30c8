package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/rs/zerolog"

	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/config"
	"github.com/lox/roshambo/internal/console"
	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/internal/tui"
)

type PlayCmd struct {
	OpponentFlags

	UI      string `enum:"tui,line" default:"tui" help:"Interface (tui|line)"`
	NoColor bool   `help:"Disable colours in line mode"`
	History string `default:"" help:"Readline history file for line mode"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, err := c.apply(g)
	if err != nil {
		return err
	}

	// The TUI owns the terminal, so only log when a file is configured.
	logger, closeLog, err := newLogger(cfg, c.UI == "tui")
	if err != nil {
		return err
	}
	defer closeLog()

	sessCfg, err := cfg.SessionConfig()
	if err != nil {
		return err
	}

	opponent, err := newOpponent(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info().
		Int64("seed", cfg.Session.Seed).
		Str("ui", c.UI).
		Msg("Starting session")

	ctx, stop := shared.SetupSignalHandlerWithLogger(logger)
	defer stop()

	if c.UI == "line" {
		return c.runLine(ctx, sessCfg, opponent, logger)
	}
	return c.runTUI(ctx, cfg, sessCfg, opponent, logger)
}

func (c *PlayCmd) runLine(ctx context.Context, cfg session.Config, opponent *agent.Agent, logger zerolog.Logger) error {
	styles := console.NewStyles(console.NewRenderer(os.Stdout, !c.NoColor))
	rl, err := console.NewReadline(c.History, styles)
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	con := console.New(rl, os.Stdout, styles)
	defer con.Close()

	con.Intro(cfg.Rounds)

	s, err := session.New(cfg, opponent, con, con, session.WithLogger(logger))
	if err != nil {
		return err
	}
	_, err = s.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (c *PlayCmd) runTUI(ctx context.Context, cfg *config.Config, sessCfg session.Config, opponent *agent.Agent, logger zerolog.Logger) error {
	var tuiOut io.Writer = io.Discard
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		tuiOut = f
	}
	level := log.InfoLevel
	if cfg.IsDebug() {
		level = log.DebugLevel
	}
	tuiLogger := log.NewWithOptions(tuiOut, log.Options{Level: level, ReportTimestamp: true})

	model := tui.NewTUIModel(tuiLogger, sessCfg.Rounds)
	program, done := tui.Run(model, tea.WithContext(ctx))
	bridge := tui.NewBridge(model, program)

	s, err := session.New(sessCfg, opponent, bridge, bridge, session.WithLogger(logger))
	if err != nil {
		program.Quit()
		<-done
		return err
	}

	sessCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	sessDone := make(chan error, 1)
	go func() {
		_, err := s.Run(sessCtx)
		sessDone <- err
	}()

	// The program exits when the player dismisses the summary or presses
	// ctrl+c; either way the session is finished or about to be.
	progErr := <-done
	cancel()
	runErr := <-sessDone

	if progErr != nil && !errors.Is(progErr, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", progErr)
	}
	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}
