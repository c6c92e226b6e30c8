package agent

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/lox/roshambo/rps"
)

// Policy picks the opponent's next action for a state.
type Policy interface {
	Name() string
	Choose(t *Table, s rps.State) (rps.Action, error)
}

// Greedy always plays the arg-max of the table row.
type Greedy struct{}

func (Greedy) Name() string { return "greedy" }

func (Greedy) Choose(t *Table, s rps.State) (rps.Action, error) {
	return t.ChooseAction(s)
}

// Random ignores the table and plays uniformly at random. It serves as a
// baseline for the greedy opponent.
type Random struct {
	rng *rand.Rand
}

// NewRandom returns a uniform policy drawing from rng.
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (p *Random) Name() string { return "random" }

func (p *Random) Choose(_ *Table, s rps.State) (rps.Action, error) {
	if !s.Valid() {
		return rps.Rock, fmt.Errorf("%w: %s", ErrUnknownState, s)
	}
	return RandomAction(p.rng), nil
}

// RandomAction returns a uniformly random action.
func RandomAction(rng *rand.Rand) rps.Action {
	return rps.RandomAction(rng)
}

// PolicyNames lists the names accepted by ParsePolicy.
var PolicyNames = []string{"greedy", "random"}

// ParsePolicy maps a policy name onto an implementation.
func ParsePolicy(name string, rng *rand.Rand) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "greedy":
		return Greedy{}, nil
	case "random":
		return NewRandom(rng), nil
	default:
		return nil, fmt.Errorf("unknown policy %q (available: %s)", name, strings.Join(PolicyNames, ", "))
	}
}
