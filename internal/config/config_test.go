package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/rps"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roshambo.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
	require.NoError(t, config.Validate())

	config, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), config)
}

func TestDefaultSessionConfig(t *testing.T) {
	cfg, err := Default().SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Rounds)
	assert.Equal(t, rps.State{Player: rps.Paper, Opponent: rps.Paper}, cfg.Start)
	assert.Equal(t, 350*time.Millisecond, cfg.Pause)
	assert.Zero(t, cfg.InputTimeout)
}

func TestLoadFullFile(t *testing.T) {
	path := writeConfig(t, `
session {
  rounds                = 25
  gamma                 = 0.5
  policy                = "random"
  seed                  = 99
  player_start          = "rock"
  opponent_start        = "s"
  pause_ms              = 10
  input_timeout_seconds = 30
}

log {
  level = "debug"
  json  = true
  file  = "roshambo.log"
}
`)

	config, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Equal(t, 25, config.Session.Rounds)
	assert.Equal(t, 0.5, config.Session.Gamma)
	assert.Equal(t, "random", config.Session.Policy)
	assert.Equal(t, int64(99), config.Session.Seed)
	assert.True(t, config.Log.JSON)
	assert.Equal(t, "roshambo.log", config.Log.File)
	assert.True(t, config.IsDebug())

	cfg, err := config.SessionConfig()
	require.NoError(t, err)
	assert.Equal(t, rps.State{Player: rps.Rock, Opponent: rps.Scissors}, cfg.Start)
	assert.Equal(t, 10*time.Millisecond, cfg.Pause)
	assert.Equal(t, 30*time.Second, cfg.InputTimeout)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
session {
  rounds = 10
}
`)

	config, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	defaults := Default()
	assert.Equal(t, 10, config.Session.Rounds)
	assert.Equal(t, defaults.Session.Gamma, config.Session.Gamma)
	assert.Equal(t, defaults.Session.PlayerStart, config.Session.PlayerStart)
	assert.Equal(t, defaults.Session.PauseMs, config.Session.PauseMs)
	assert.Equal(t, defaults.Log, config.Log)
}

func TestLoadKeepsExplicitZeros(t *testing.T) {
	path := writeConfig(t, `
session {
  gamma    = 0
  pause_ms = 0
}
`)

	config, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, config.Validate())

	assert.Zero(t, config.Session.Gamma, "gamma 0 freezes the table")
	assert.Zero(t, config.Session.PauseMs)

	cfg, err := config.SessionConfig()
	require.NoError(t, err)
	assert.Zero(t, cfg.Pause)
}

func TestLoadErrors(t *testing.T) {
	t.Run("syntax", func(t *testing.T) {
		_, err := Load(writeConfig(t, `session {`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})

	t.Run("unknown attribute", func(t *testing.T) {
		_, err := Load(writeConfig(t, "session {\n  lives = 3\n}\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative rounds", func(c *Config) { c.Session.Rounds = -1 }},
		{"gamma too large", func(c *Config) { c.Session.Gamma = 1.1 }},
		{"unknown policy", func(c *Config) { c.Session.Policy = "oracle" }},
		{"bad player start", func(c *Config) { c.Session.PlayerStart = "lizard" }},
		{"bad opponent start", func(c *Config) { c.Session.OpponentStart = "spock" }},
		{"negative pause", func(c *Config) { c.Session.PauseMs = -5 }},
		{"negative timeout", func(c *Config) { c.Session.InputTimeoutSeconds = -1 }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := Default()
			tt.mutate(config)
			require.Error(t, config.Validate())
		})
	}
}
