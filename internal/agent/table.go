// Package agent implements the adaptive opponent: a value table holding one
// preference row per (player, opponent) state, the policies that read it and
// the heuristic that nudges it after every round.
//
// The learning rule is intentionally simple. It is not value iteration or a
// policy gradient; each branch of Table.Update reproduces a fixed arithmetic
// blend between the prior preference and the round's evidence.
package agent

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/lox/roshambo/rps"
)

var (
	// ErrUnknownState is returned for states outside the nine-entry domain.
	ErrUnknownState = errors.New("unknown state")

	// ErrInvalidGamma is returned when the blend factor is outside [0,1].
	ErrInvalidGamma = errors.New("gamma must be within [0,1]")
)

// Row holds one preference score per action, indexed by rps.Action.
type Row [rps.NumActions]float64

// Argmax returns the action with the highest preference. Ties go to the
// lowest ordinal.
func (r Row) Argmax() rps.Action {
	best := rps.Rock
	for a := rps.Paper; a < rps.NumActions; a++ {
		if r[a] > r[best] {
			best = a
		}
	}
	return best
}

// Table maps every state to its Row. It is fully populated on construction
// and never changes shape; only row entries mutate.
type Table struct {
	rows [rps.NumStates]Row
}

// NewTable fills every row with independent uniform draws from [0,1). The
// values only break ties before anything has been learned.
func NewTable(rng *rand.Rand) *Table {
	t := &Table{}
	for i := range t.rows {
		for a := range t.rows[i] {
			t.rows[i][a] = rng.Float64()
		}
	}
	return t
}

// Len returns the number of states tracked. It is always rps.NumStates.
func (t *Table) Len() int {
	return len(t.rows)
}

// Row returns a copy of the preferences for s.
func (t *Table) Row(s rps.State) (Row, error) {
	i, err := t.index(s)
	if err != nil {
		return Row{}, err
	}
	return t.rows[i], nil
}

// SetRow overwrites the preferences for s.
func (t *Table) SetRow(s rps.State, r Row) error {
	i, err := t.index(s)
	if err != nil {
		return err
	}
	t.rows[i] = r
	return nil
}

// ChooseAction is the greedy policy: the arg-max of the row for s.
func (t *Table) ChooseAction(s rps.State) (rps.Action, error) {
	r, err := t.Row(s)
	if err != nil {
		return rps.Rock, err
	}
	return r.Argmax(), nil
}

// Clone returns an independent copy, used for reporting snapshots.
func (t *Table) Clone() *Table {
	c := *t
	return &c
}

// Each visits the rows in canonical state order.
func (t *Table) Each(fn func(s rps.State, r Row)) {
	for i, r := range t.rows {
		fn(rps.StateFromIndex(i), r)
	}
}

func (t *Table) index(s rps.State) (int, error) {
	if !s.Valid() {
		return 0, fmt.Errorf("%w: %d/%d", ErrUnknownState, uint8(s.Player), uint8(s.Opponent))
	}
	return s.Index(), nil
}
