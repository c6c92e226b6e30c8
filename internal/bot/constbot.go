package bot

import (
	"context"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// ConstBot throws the same action every round
type ConstBot struct {
	action rps.Action
}

// NewConstBot creates a bot that always plays action
func NewConstBot(action rps.Action) *ConstBot {
	return &ConstBot{action: action}
}

func (b *ConstBot) Name() string { return b.action.String() }

func (b *ConstBot) NextAction(ctx context.Context) (rps.Action, error) {
	if err := ctx.Err(); err != nil {
		return rps.Rock, err
	}
	return b.action, nil
}

func (b *ConstBot) Observe(session.Round) {}
