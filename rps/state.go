package rps

import (
	"fmt"
	"math/rand/v2"
)

// NumStates is the size of the state domain (3x3)
const NumStates = NumActions * NumActions

// State is the most recent (player, opponent) pair. It is the only context
// the opponent conditions on.
type State struct {
	Player   Action
	Opponent Action
}

// Valid reports whether both halves of the state are valid actions
func (s State) Valid() bool {
	return s.Player.Valid() && s.Opponent.Valid()
}

// Index maps the state onto 0..8, player-major.
func (s State) Index() int {
	return int(s.Player)*NumActions + int(s.Opponent)
}

func (s State) String() string {
	return fmt.Sprintf("(%s,%s)", s.Player, s.Opponent)
}

// StateFromIndex is the inverse of State.Index
func StateFromIndex(i int) State {
	return State{Player: Action(i / NumActions), Opponent: Action(i % NumActions)}
}

// AllStates enumerates the full state domain in canonical order.
func AllStates() []State {
	states := make([]State, 0, NumStates)
	for _, p := range Actions() {
		for _, o := range Actions() {
			states = append(states, State{Player: p, Opponent: o})
		}
	}
	return states
}

// RandomState picks one of the nine states uniformly
func RandomState(rng *rand.Rand) State {
	return StateFromIndex(rng.IntN(NumStates))
}

// Advance replaces the previous state with the pair just played. The old
// state carries no information forward.
func Advance(_ State, player, opponent Action) State {
	return State{Player: player, Opponent: opponent}
}
