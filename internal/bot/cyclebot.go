package bot

import (
	"context"
	"errors"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// SequenceBot plays a fixed sequence of actions, wrapping around at the end
type SequenceBot struct {
	name  string
	moves []rps.Action
	next  int
	stop  bool
}

// NewSequenceBot creates a bot that replays moves in order. With stop set
// it ends the session once the sequence is exhausted instead of wrapping.
func NewSequenceBot(name string, moves []rps.Action, stop bool) *SequenceBot {
	return &SequenceBot{name: name, moves: append([]rps.Action(nil), moves...), stop: stop}
}

// NewCycleBot creates a bot that plays rock, paper, scissors, rock, ...
func NewCycleBot() *SequenceBot {
	a := rps.Actions()
	return NewSequenceBot("cycle", a[:], false)
}

func (b *SequenceBot) Name() string { return b.name }

func (b *SequenceBot) NextAction(ctx context.Context) (rps.Action, error) {
	if err := ctx.Err(); err != nil {
		return rps.Rock, err
	}
	if len(b.moves) == 0 {
		return rps.Rock, errors.New("sequence bot has no moves")
	}
	if b.next >= len(b.moves) {
		if b.stop {
			return rps.Rock, session.ErrEndSession
		}
		b.next = 0
	}
	action := b.moves[b.next]
	b.next++
	return action, nil
}

func (b *SequenceBot) Observe(session.Round) {}
