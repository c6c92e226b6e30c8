package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// Config represents the complete roshambo configuration
type Config struct {
	Session SessionSettings
	Log     LogSettings
}

// SessionSettings controls the opponent and the round loop
type SessionSettings struct {
	Rounds              int
	Gamma               float64
	Policy              string
	Seed                int64
	PlayerStart         string
	OpponentStart       string
	PauseMs             int
	InputTimeoutSeconds int
}

// sessionBlock is the HCL form of SessionSettings. Gamma and pause are
// pointers because zero is a meaningful value for both.
type sessionBlock struct {
	Rounds              int      `hcl:"rounds,optional"`
	Gamma               *float64 `hcl:"gamma,optional"`
	Policy              string   `hcl:"policy,optional"`
	Seed                int64    `hcl:"seed,optional"`
	PlayerStart         string   `hcl:"player_start,optional"`
	OpponentStart       string   `hcl:"opponent_start,optional"`
	PauseMs             *int     `hcl:"pause_ms,optional"`
	InputTimeoutSeconds int      `hcl:"input_timeout_seconds,optional"`
}

// LogSettings controls logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	JSON  bool   `hcl:"json,optional"`
	File  string `hcl:"file,optional"`
}

// fileConfig mirrors the HCL layout. Both blocks may be omitted.
type fileConfig struct {
	Session *sessionBlock `hcl:"session,block"`
	Log     *LogSettings  `hcl:"log,block"`
}

// Default returns default configuration
func Default() *Config {
	defaults := session.DefaultConfig()
	return &Config{
		Session: SessionSettings{
			Rounds:        defaults.Rounds,
			Gamma:         agent.DefaultGamma,
			Policy:        "greedy",
			PlayerStart:   defaults.Start.Player.String(),
			OpponentStart: defaults.Start.Opponent.String(),
			PauseMs:       int(defaults.Pause / time.Millisecond),
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load loads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var fc fileConfig
	diags = gohcl.DecodeBody(file.Body, nil, &fc)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if fc.Session != nil {
		config.Session = fc.Session.settings(config.Session)
	}
	if fc.Log != nil {
		config.Log = *fc.Log
	}

	// Apply defaults for missing values
	defaults := Default()

	if config.Session.Rounds == 0 {
		config.Session.Rounds = defaults.Session.Rounds
	}
	if config.Session.Policy == "" {
		config.Session.Policy = defaults.Session.Policy
	}
	if config.Session.PlayerStart == "" {
		config.Session.PlayerStart = defaults.Session.PlayerStart
	}
	if config.Session.OpponentStart == "" {
		config.Session.OpponentStart = defaults.Session.OpponentStart
	}
	if config.Log.Level == "" {
		config.Log.Level = defaults.Log.Level
	}

	return config, nil
}

// settings converts the block, keeping defaults for gamma and pause when
// the file leaves them out.
func (b *sessionBlock) settings(defaults SessionSettings) SessionSettings {
	s := SessionSettings{
		Rounds:              b.Rounds,
		Gamma:               defaults.Gamma,
		Policy:              b.Policy,
		Seed:                b.Seed,
		PlayerStart:         b.PlayerStart,
		OpponentStart:       b.OpponentStart,
		PauseMs:             defaults.PauseMs,
		InputTimeoutSeconds: b.InputTimeoutSeconds,
	}
	if b.Gamma != nil {
		s.Gamma = *b.Gamma
	}
	if b.PauseMs != nil {
		s.PauseMs = *b.PauseMs
	}
	return s
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Session.Rounds < 0 {
		return fmt.Errorf("rounds cannot be negative")
	}
	if err := agent.ValidateGamma(c.Session.Gamma); err != nil {
		return err
	}
	if _, err := agent.ParsePolicy(c.Session.Policy, nil); err != nil {
		return err
	}
	if _, err := c.Start(); err != nil {
		return err
	}
	if c.Session.PauseMs < 0 {
		return fmt.Errorf("pause cannot be negative")
	}
	if c.Session.InputTimeoutSeconds < 0 {
		return fmt.Errorf("input timeout cannot be negative")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}

	return nil
}

// Start returns the configured initial state
func (c *Config) Start() (rps.State, error) {
	player, err := rps.ParseAction(c.Session.PlayerStart)
	if err != nil {
		return rps.State{}, fmt.Errorf("player_start: %w", err)
	}
	opponent, err := rps.ParseAction(c.Session.OpponentStart)
	if err != nil {
		return rps.State{}, fmt.Errorf("opponent_start: %w", err)
	}
	return rps.State{Player: player, Opponent: opponent}, nil
}

// SessionConfig converts the settings into a session configuration
func (c *Config) SessionConfig() (session.Config, error) {
	start, err := c.Start()
	if err != nil {
		return session.Config{}, err
	}
	return session.Config{
		Rounds:       c.Session.Rounds,
		Start:        start,
		Pause:        time.Duration(c.Session.PauseMs) * time.Millisecond,
		InputTimeout: time.Duration(c.Session.InputTimeoutSeconds) * time.Second,
	}, nil
}

// IsDebug reports whether debug logging is enabled
func (c *Config) IsDebug() bool {
	return strings.EqualFold(c.Log.Level, "debug")
}
