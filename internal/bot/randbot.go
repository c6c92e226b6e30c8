package bot

import (
	"context"
	"math/rand/v2"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// RandBot throws uniformly at random. No opponent can beat it on average.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (b *RandBot) Name() string { return "random" }

func (b *RandBot) NextAction(ctx context.Context) (rps.Action, error) {
	if err := ctx.Err(); err != nil {
		return rps.Rock, err
	}
	return rps.RandomAction(b.rng), nil
}

func (b *RandBot) Observe(session.Round) {}
