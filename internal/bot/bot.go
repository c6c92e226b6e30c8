// Package bot provides scripted players that stand in for a human at the
// session's input. They are used by the simulator and for training tables.
package bot

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// Player is a scripted player. It answers the session's input requests and
// watches every finished round.
type Player interface {
	session.Input
	session.Observer
	Name() string
}

// Factory builds a fresh player. Players keep per-session state, so every
// session needs its own.
type Factory func(rng *rand.Rand) Player

var registry = map[string]Factory{
	"rock":      func(*rand.Rand) Player { return NewConstBot(rps.Rock) },
	"paper":     func(*rand.Rand) Player { return NewConstBot(rps.Paper) },
	"scissors":  func(*rand.Rand) Player { return NewConstBot(rps.Scissors) },
	"cycle":     func(*rand.Rand) Player { return NewCycleBot() },
	"random":    func(rng *rand.Rand) Player { return NewRandBot(rng) },
	"mirror":    func(*rand.Rand) Player { return NewMirrorBot(rps.Paper) },
	"beat-last": func(*rand.Rand) Player { return NewBeatLastBot(rps.Paper) },
}

// Names returns the registered bot names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the factory for a named bot.
func Lookup(name string) (Factory, error) {
	f, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return f, nil
}

// New builds a named bot drawing any randomness from rng.
func New(name string, rng *rand.Rand) (Player, error) {
	f, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return f(rng), nil
}
