// Package console is the line-oriented front end: the player types a throw
// at a prompt and rounds are printed as they finish.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// LineReader is the part of *readline.Instance the console needs.
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
	Close() error
}

type line struct {
	text string
	err  error
}

// Console reads throws from a LineReader and prints rounds to a writer. It
// implements both session.Input and session.Display.
type Console struct {
	rl     LineReader
	out    io.Writer
	styles Styles

	once  sync.Once
	lines chan line
	done  chan struct{}
}

// New creates a console. Styles decide whether output is coloured.
func New(rl LineReader, out io.Writer, styles Styles) *Console {
	c := &Console{
		rl:     rl,
		out:    out,
		styles: styles,
		lines:  make(chan line),
		done:   make(chan struct{}),
	}
	rl.SetPrompt(styles.Prompt.Render("throw> "))
	return c
}

// NewReadline opens a readline instance with completion for the throw
// words. historyFile may be empty.
func NewReadline(historyFile string, styles Styles) (*readline.Instance, error) {
	completer := readline.NewPrefixCompleter()
	for _, w := range Words {
		completer.Children = append(completer.Children, readline.PcItem(w))
	}
	return readline.NewEx(&readline.Config{
		Prompt:          styles.Prompt.Render("throw> "),
		HistoryFile:     historyFile,
		AutoComplete:    completer,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
}

// Close stops reading and closes the reader
func (c *Console) Close() error {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	return c.rl.Close()
}

// pump forwards lines from the reader so NextAction can select on them
// alongside ctx.
func (c *Console) pump() {
	for {
		text, err := c.rl.Readline()
		select {
		case c.lines <- line{text: text, err: err}:
		case <-c.done:
			return
		}
		if err != nil && !errors.Is(err, readline.ErrInterrupt) {
			return
		}
	}
}

// Intro prints the short usage banner.
func (c *Console) Intro(rounds int) {
	limit := "until you quit"
	if rounds > 0 {
		limit = fmt.Sprintf("for %d rounds", rounds)
	}
	fmt.Fprintln(c.out, c.styles.Info.Render(
		fmt.Sprintf("Rock, paper, scissors %s. Type r, p or s; quit ends the session.", limit)))
}

// NextAction blocks until the player types exactly one throw. Lines naming
// no throw or several throws are rejected and the player is asked again.
func (c *Console) NextAction(ctx context.Context) (rps.Action, error) {
	c.once.Do(func() { go c.pump() })

	for {
		var l line
		select {
		case <-ctx.Done():
			return rps.Rock, ctx.Err()
		case l = <-c.lines:
		}

		switch {
		case errors.Is(l.err, readline.ErrInterrupt):
			fmt.Fprintln(c.out, c.styles.Info.Render("Use 'quit' to exit"))
			continue
		case errors.Is(l.err, io.EOF):
			return rps.Rock, session.ErrEndSession
		case l.err != nil:
			return rps.Rock, fmt.Errorf("read line: %w", l.err)
		}

		text := strings.TrimSpace(l.text)
		if text == "help" || text == "?" {
			c.help()
			continue
		}

		sig, err := ParseSignals(text)
		if err != nil {
			fmt.Fprintln(c.out, c.styles.Error.Render(fmt.Sprintf("%s. Type 'help' for the throws.", err)))
			continue
		}
		if sig.AllActive() {
			return rps.Rock, session.ErrEndSession
		}
		action, ok := sig.Resolve()
		if !ok {
			if sig.Count() > 1 {
				fmt.Fprintln(c.out, c.styles.Error.Render("One throw at a time."))
			}
			continue
		}
		return action, nil
	}
}

func (c *Console) help() {
	fmt.Fprintln(c.out, c.styles.Info.Render(strings.Join([]string{
		"rock (r)      throw rock",
		"paper (p)     throw paper",
		"scissors (s)  throw scissors",
		"quit (q)      end the session",
	}, "\n")))
}

// ShowRound prints the round report
func (c *Console) ShowRound(r session.Round) error {
	lines := r.Lines()
	_, err := fmt.Fprintf(c.out, "%s  %s  %s  %s\n",
		c.styles.Throw.Render(lines[0]),
		c.styles.Outcome(r.Outcome).Render(lines[1]),
		c.styles.Info.Render(lines[2]),
		c.styles.Score.Render(lines[3]),
	)
	return err
}

// ShowSummary prints the end-of-session box
func (c *Console) ShowSummary(s session.Summary) error {
	lines := s.Lines()
	verdict := c.styles.Fail
	if s.Passed() {
		verdict = c.styles.Pass
	}
	lines[len(lines)-1] = verdict.Render(lines[len(lines)-1])
	_, err := fmt.Fprintln(c.out, c.styles.Summary.Render(strings.Join(lines, "\n")))
	return err
}
