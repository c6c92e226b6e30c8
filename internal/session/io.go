package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/lox/roshambo/rps"
)

var (
	// ErrEndSession is returned by an Input when the player asks to stop,
	// which on the hardware this game came from meant touching all three
	// pads at once.
	ErrEndSession = errors.New("end of session requested")

	// ErrInputTimeout ends a session whose player stayed idle for longer
	// than the configured input timeout.
	ErrInputTimeout = errors.New("timed out waiting for player input")
)

// Input supplies the player's action once per round. Implementations block
// until exactly one unambiguous action is available, the player ends the
// session (ErrEndSession), or ctx is done.
type Input interface {
	NextAction(ctx context.Context) (rps.Action, error)
}

// InputFunc adapts a function to Input
type InputFunc func(ctx context.Context) (rps.Action, error)

func (f InputFunc) NextAction(ctx context.Context) (rps.Action, error) {
	return f(ctx)
}

// Display consumes the per-round report and the end-of-session summary.
type Display interface {
	ShowRound(r Round) error
	ShowSummary(s Summary) error
}

// Observer is implemented by inputs that want to see each finished round,
// such as scripted players reacting to the opponent's last throw.
type Observer interface {
	Observe(r Round)
}

// Signals is the raw state of the three input channels.
type Signals struct {
	Rock     bool
	Paper    bool
	Scissors bool
}

// Count returns how many channels are active
func (s Signals) Count() int {
	n := 0
	for _, v := range []bool{s.Rock, s.Paper, s.Scissors} {
		if v {
			n++
		}
	}
	return n
}

// AllActive reports the end-of-session gesture.
func (s Signals) AllActive() bool {
	return s.Count() == rps.NumActions
}

// Resolve returns the action when exactly one channel is active. No signal
// or several signals at once are not an action and must not be forwarded.
func (s Signals) Resolve() (rps.Action, bool) {
	if s.Count() != 1 {
		return rps.Rock, false
	}
	switch {
	case s.Rock:
		return rps.Rock, true
	case s.Paper:
		return rps.Paper, true
	default:
		return rps.Scissors, true
	}
}

// Round is what the display sees after every round.
type Round struct {
	Index    int       // 1-based
	State    rps.State // state the opponent decided in
	Player   rps.Action
	Opponent rps.Action
	Outcome  rps.Outcome
	Total    int
}

// OutcomeText is the short banner for a round result.
func OutcomeText(o rps.Outcome) string {
	switch o {
	case rps.PlayerWins:
		return "PLAYER wins!"
	case rps.OpponentWins:
		return "COMPUTER wins!"
	default:
		return "DRAW"
	}
}

// Lines renders the round as plain ASCII, one field per line.
func (r Round) Lines() []string {
	return []string{
		fmt.Sprintf("%s - %s", r.Player.Title(), r.Opponent.Title()),
		OutcomeText(r.Outcome),
		fmt.Sprintf("round %d.", r.Index),
		fmt.Sprintf("score %d", r.Total),
	}
}

// EndReason records why a session stopped.
type EndReason string

const (
	EndRounds    EndReason = "rounds"
	EndQuit      EndReason = "quit"
	EndTimeout   EndReason = "timeout"
	EndCancelled EndReason = "cancelled"
)

// Summary is shown once when the session ends.
type Summary struct {
	ID     string
	Rounds int
	Total  int
	Totals Totals
	Reason EndReason
}

// Passed is the coarse judgement of the final total: the player did not
// end behind.
func (s Summary) Passed() bool {
	return s.Total >= 0
}

// Verdict is the one-word judgement shown on the end screen.
func (s Summary) Verdict() string {
	if s.Passed() {
		return "good :)"
	}
	return "bad :("
}

// Lines renders the summary as plain ASCII.
func (s Summary) Lines() []string {
	return []string{
		fmt.Sprintf("Rounds: %d", s.Rounds),
		fmt.Sprintf("Result: %d", s.Total),
		s.Verdict(),
	}
}

// Recorder is a Display that keeps everything it is shown.
type Recorder struct {
	mu      sync.Mutex
	rounds  []Round
	summary *Summary
}

func (r *Recorder) ShowRound(round Round) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rounds = append(r.rounds, round)
	return nil
}

func (r *Recorder) ShowSummary(s Summary) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.summary = &s
	return nil
}

// Rounds returns a copy of the recorded rounds.
func (r *Recorder) Rounds() []Round {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Round(nil), r.rounds...)
}

// Summary returns the recorded summary, if any.
func (r *Recorder) Summary() (Summary, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.summary == nil {
		return Summary{}, false
	}
	return *r.summary, true
}

// Discard is a Display that drops everything.
type Discard struct{}

func (Discard) ShowRound(Round) error     { return nil }
func (Discard) ShowSummary(Summary) error { return nil }
