package agent

import (
	"fmt"
	"math"

	"github.com/lox/roshambo/rps"
)

// DefaultGamma is the blend factor the opponent ships with.
const DefaultGamma = 0.95

// ValidateGamma checks that gamma lies within [0,1].
func ValidateGamma(gamma float64) error {
	if math.IsNaN(gamma) || gamma < 0 || gamma > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidGamma, gamma)
	}
	return nil
}

// Update adjusts the row for s after the opponent played action and saw
// outcome (from the opponent's side: +1 won, -1 lost, 0 draw). gamma=1
// overwrites the prior preference, gamma=0 ignores the evidence.
//
//   - lost: the slot for LosesTo(action), the throw that beats whatever
//     beat us, moves towards |outcome|. No other slot changes.
//   - won: the slot for action moves towards outcome.
//   - draw: the slot for action moves towards -1 and the slot for
//     CounterOf(action) moves towards +1.
//
// Only the row for s is touched. On error the table is left unchanged.
func (t *Table) Update(s rps.State, action rps.Action, outcome rps.Outcome, gamma float64) error {
	if err := ValidateGamma(gamma); err != nil {
		return err
	}
	if !action.Valid() {
		return fmt.Errorf("%w: opponent %d", rps.ErrInvalidAction, uint8(action))
	}
	i, err := t.index(s)
	if err != nil {
		return err
	}

	row := &t.rows[i]
	o := float64(outcome)

	switch {
	case outcome < 0:
		c := rps.LosesTo(action)
		row[c] = gamma*math.Abs(o) + (1-gamma)*row[c]
	case outcome > 0:
		row[action] = gamma*o + (1-gamma)*row[action]
	default:
		row[action] = -gamma + (1-gamma)*row[action]
		c := rps.CounterOf(action)
		row[c] = gamma + (1-gamma)*row[c]
	}
	return nil
}
