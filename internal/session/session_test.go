package session

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/rps"
)

// sequenceInput plays a fixed list of actions, then ends the session.
type sequenceInput struct {
	actions  []rps.Action
	next     int
	observed []Round
}

func (in *sequenceInput) NextAction(ctx context.Context) (rps.Action, error) {
	if err := ctx.Err(); err != nil {
		return rps.Rock, err
	}
	if in.next >= len(in.actions) {
		return rps.Rock, ErrEndSession
	}
	a := in.actions[in.next]
	in.next++
	return a, nil
}

func (in *sequenceInput) Observe(r Round) {
	in.observed = append(in.observed, r)
}

// countingInput always plays the same action and counts calls.
type countingInput struct {
	action rps.Action
	calls  atomic.Int32
}

func (in *countingInput) NextAction(ctx context.Context) (rps.Action, error) {
	in.calls.Add(1)
	return in.action, ctx.Err()
}

// blockingInput never produces an action.
type blockingInput struct {
	once    sync.Once
	waiting chan struct{}
}

func (in *blockingInput) NextAction(ctx context.Context) (rps.Action, error) {
	in.once.Do(func() { close(in.waiting) })
	<-ctx.Done()
	return rps.Rock, ctx.Err()
}

func newOpponent(t *testing.T, seed int64) *agent.Agent {
	t.Helper()
	a, err := agent.New(randutil.New(seed))
	require.NoError(t, err)
	return a
}

func noPause() Config {
	cfg := DefaultConfig()
	cfg.Pause = 0
	return cfg
}

func TestRunEndsWhenPlayerQuits(t *testing.T) {
	input := &sequenceInput{actions: []rps.Action{rps.Rock, rps.Paper, rps.Scissors, rps.Rock}}
	rec := &Recorder{}

	s, err := New(noPause(), newOpponent(t, 1), input, rec, WithID("test"))
	require.NoError(t, err)

	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, EndQuit, summary.Reason)
	require.Equal(t, 4, summary.Rounds)
	require.Equal(t, "test", summary.ID)

	rounds := rec.Rounds()
	require.Len(t, rounds, 4)
	require.Equal(t, rounds, input.observed, "observer sees every round")

	total := 0
	for i, r := range rounds {
		require.Equal(t, i+1, r.Index)
		require.Equal(t, input.actions[i], r.Player)
		total += int(r.Outcome)
		require.Equal(t, total, r.Total)
	}
	require.Equal(t, total, summary.Total)

	shown, ok := rec.Summary()
	require.True(t, ok)
	require.Equal(t, summary, shown)
}

func TestRunChainsStates(t *testing.T) {
	input := &sequenceInput{actions: []rps.Action{rps.Scissors, rps.Rock, rps.Rock}}
	rec := &Recorder{}
	cfg := noPause()

	s, err := New(cfg, newOpponent(t, 2), input, rec)
	require.NoError(t, err)
	_, err = s.Run(context.Background())
	require.NoError(t, err)

	rounds := rec.Rounds()
	require.Equal(t, cfg.Start, rounds[0].State)
	for i := 1; i < len(rounds); i++ {
		prev := rounds[i-1]
		require.Equal(t, rps.State{Player: prev.Player, Opponent: prev.Opponent}, rounds[i].State)
	}
	last := rounds[len(rounds)-1]
	require.Equal(t, rps.State{Player: last.Player, Opponent: last.Opponent}, s.State())
}

func TestRunStopsAtRoundCap(t *testing.T) {
	input := &countingInput{action: rps.Rock}
	rec := &Recorder{}

	s, err := New(noPause(), newOpponent(t, 42), input, rec)
	require.NoError(t, err)

	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, EndRounds, summary.Reason)
	require.Equal(t, 100, summary.Rounds)
	require.EqualValues(t, 100, input.calls.Load())
	require.Equal(t, 100, summary.Totals.Player[rps.Rock])

	rounds := rec.Rounds()
	for _, r := range rounds[len(rounds)-10:] {
		require.Equal(t, rps.Paper, r.Opponent, "opponent should learn to beat a constant rock")
	}
	require.Negative(t, summary.Total)
	require.False(t, summary.Passed())
}

func TestRunHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := &Recorder{}
	s, err := New(noPause(), newOpponent(t, 3), &countingInput{action: rps.Paper}, rec)
	require.NoError(t, err)

	summary, err := s.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, EndCancelled, summary.Reason)
	require.Zero(t, summary.Rounds)

	_, ok := rec.Summary()
	require.True(t, ok, "summary is shown even when cancelled")
}

func TestRunInputTimeout(t *testing.T) {
	mClock := quartz.NewMock(t)
	cfg := noPause()
	cfg.InputTimeout = 5 * time.Second

	input := &blockingInput{waiting: make(chan struct{})}
	s, err := New(cfg, newOpponent(t, 4), input, Discard{}, WithClock(mClock))
	require.NoError(t, err)

	type result struct {
		summary Summary
		err     error
	}
	done := make(chan result, 1)
	go func() {
		summary, err := s.Run(context.Background())
		done <- result{summary, err}
	}()

	<-input.waiting
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	mClock.Advance(5 * time.Second).MustWait(ctx)

	select {
	case res := <-done:
		require.NoError(t, res.err)
		require.Equal(t, EndTimeout, res.summary.Reason)
		require.Zero(t, res.summary.Rounds)
	case <-ctx.Done():
		t.Fatal("session did not end after input timeout")
	}
}

func TestRunPausesBetweenRounds(t *testing.T) {
	mClock := quartz.NewMock(t)
	cfg := DefaultConfig()
	cfg.Rounds = 2

	input := &countingInput{action: rps.Scissors}
	rec := &Recorder{}
	s, err := New(cfg, newOpponent(t, 5), input, rec, WithClock(mClock))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Run(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool { return len(rec.Rounds()) == 1 }, time.Second, time.Millisecond)
	require.EqualValues(t, 1, input.calls.Load(), "second round must wait for the pause")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.Eventually(t, func() bool {
		mClock.Advance(cfg.Pause).MustWait(ctx)
		return len(rec.Rounds()) == 2
	}, 2*time.Second, 5*time.Millisecond)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("session did not finish")
	}
}

type failingDisplay struct{ Discard }

func (failingDisplay) ShowRound(Round) error { return errors.New("screen unplugged") }

func TestRunPropagatesDisplayErrors(t *testing.T) {
	s, err := New(noPause(), newOpponent(t, 6), &countingInput{action: rps.Rock}, failingDisplay{})
	require.NoError(t, err)

	_, err = s.Run(context.Background())
	require.ErrorContains(t, err, "screen unplugged")
}

func TestPlayRoundRejectsInvalidAction(t *testing.T) {
	s, err := New(noPause(), newOpponent(t, 7), &countingInput{}, nil)
	require.NoError(t, err)

	_, err = s.PlayRound(rps.Action(3))
	require.ErrorIs(t, err, rps.ErrInvalidAction)
	require.Zero(t, s.Totals().Rounds)
}

func TestNewValidates(t *testing.T) {
	opp := newOpponent(t, 8)
	in := &countingInput{}

	bad := DefaultConfig()
	bad.Rounds = -1
	_, err := New(bad, opp, in, nil)
	require.Error(t, err)

	bad = DefaultConfig()
	bad.Start = rps.State{Player: rps.Action(5)}
	_, err = New(bad, opp, in, nil)
	require.ErrorIs(t, err, rps.ErrInvalidAction)

	_, err = New(DefaultConfig(), nil, in, nil)
	require.Error(t, err)

	_, err = New(DefaultConfig(), opp, nil, nil)
	require.Error(t, err)
}
