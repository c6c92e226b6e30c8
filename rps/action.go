// Package rps holds the rock-paper-scissors primitives shared by the
// opponent, the session loop and every front-end: actions, the dominance
// relation, round outcomes and the (player, opponent) state pair.
package rps

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
)

// Action is one of the three throws. Its ordinal doubles as an index into
// per-action arrays.
type Action uint8

const (
	Rock Action = iota
	Paper
	Scissors
)

// NumActions is the size of the action enumeration
const NumActions = 3

// ErrInvalidAction is returned when a value outside the enumeration reaches
// the rules or the policy.
var ErrInvalidAction = errors.New("invalid action")

// Actions returns all actions in canonical order
func Actions() [NumActions]Action {
	return [NumActions]Action{Rock, Paper, Scissors}
}

// Valid reports whether a is one of Rock, Paper or Scissors
func (a Action) Valid() bool {
	return a < NumActions
}

func (a Action) String() string {
	switch a {
	case Rock:
		return "rock"
	case Paper:
		return "paper"
	case Scissors:
		return "scissors"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// Title returns the capitalised name used on round displays
func (a Action) Title() string {
	switch a {
	case Rock:
		return "Rock"
	case Paper:
		return "Paper"
	case Scissors:
		return "Scissors"
	default:
		return "?"
	}
}

// ParseAction accepts the full action name or its first letter, in any case.
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rock", "r":
		return Rock, nil
	case "paper", "p":
		return Paper, nil
	case "scissors", "s":
		return Scissors, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
	}
}

// CounterOf returns the action that defeats a.
func CounterOf(a Action) Action {
	switch a {
	case Rock:
		return Paper
	case Paper:
		return Scissors
	default:
		return Rock
	}
}

// LosesTo returns the action that a defeats. It is the inverse of CounterOf.
func LosesTo(a Action) Action {
	switch a {
	case Rock:
		return Scissors
	case Paper:
		return Rock
	default:
		return Paper
	}
}

// Beats reports whether a defeats b
func Beats(a, b Action) bool {
	return a != b && CounterOf(b) == a
}

// RandomAction draws a uniformly random action from rng
func RandomAction(rng *rand.Rand) Action {
	return Action(rng.IntN(NumActions))
}
