package bot

import (
	"context"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// reactBot chooses its next throw from the opponent's previous one.
type reactBot struct {
	name  string
	first rps.Action
	last  rps.Action
	seen  bool
	react func(opponent rps.Action) rps.Action
}

func (b *reactBot) Name() string { return b.name }

func (b *reactBot) NextAction(ctx context.Context) (rps.Action, error) {
	if err := ctx.Err(); err != nil {
		return rps.Rock, err
	}
	if !b.seen {
		return b.first, nil
	}
	return b.react(b.last), nil
}

func (b *reactBot) Observe(r session.Round) {
	b.last = r.Opponent
	b.seen = true
}

// NewMirrorBot copies whatever the opponent threw last round, opening with
// first.
func NewMirrorBot(first rps.Action) Player {
	return &reactBot{
		name:  "mirror",
		first: first,
		react: func(opponent rps.Action) rps.Action { return opponent },
	}
}

// NewBeatLastBot throws the counter to the opponent's last throw, opening
// with first.
func NewBeatLastBot(first rps.Action) Player {
	return &reactBot{
		name:  "beat-last",
		first: first,
		react: rps.CounterOf,
	}
}
