package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// Sender delivers messages to the running program. *tea.Program satisfies
// it.
type Sender interface {
	Send(msg tea.Msg)
}

// Bridge connects a session to the TUI: key presses become the session's
// input and rounds are posted back to the model.
type Bridge struct {
	model  *TUIModel
	sender Sender
}

// NewBridge creates a bridge between a model and the program running it
func NewBridge(model *TUIModel, sender Sender) *Bridge {
	return &Bridge{model: model, sender: sender}
}

// NextAction waits for a key naming exactly one throw
func (b *Bridge) NextAction(ctx context.Context) (rps.Action, error) {
	for {
		select {
		case <-ctx.Done():
			return rps.Rock, ctx.Err()
		case sig := <-b.model.Signals():
			if sig.AllActive() {
				return rps.Rock, session.ErrEndSession
			}
			if action, ok := sig.Resolve(); ok {
				return action, nil
			}
		}
	}
}

func (b *Bridge) ShowRound(r session.Round) error {
	b.sender.Send(RoundMsg{Round: r})
	return nil
}

func (b *Bridge) ShowSummary(s session.Summary) error {
	b.sender.Send(SummaryMsg{Summary: s})
	return nil
}

// Run starts a full-screen program for model in the background. The
// returned channel yields the program's exit error.
func Run(model *TUIModel, opts ...tea.ProgramOption) (*tea.Program, <-chan error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	p := tea.NewProgram(model, opts...)
	done := make(chan error, 1)
	go func() {
		_, err := p.Run()
		done <- err
	}()
	return p, done
}
