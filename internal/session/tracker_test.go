package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/rps"
)

func TestTrackerRecord(t *testing.T) {
	var tr Tracker
	rounds := []struct {
		player, opponent rps.Action
		outcome          rps.Outcome
	}{
		{rps.Paper, rps.Rock, rps.PlayerWins},
		{rps.Rock, rps.Paper, rps.OpponentWins},
		{rps.Scissors, rps.Scissors, rps.Draw},
		{rps.Rock, rps.Scissors, rps.PlayerWins},
	}

	var last int
	for _, r := range rounds {
		last = tr.Record(r.player, r.opponent, r.outcome)
	}

	require.Equal(t, 1, last)
	require.Equal(t, 1, tr.Total())

	totals := tr.Totals()
	require.Equal(t, 4, totals.Rounds)
	require.Equal(t, 2, totals.Wins)
	require.Equal(t, 1, totals.Draws)
	require.Equal(t, 1, totals.Losses)
	require.Equal(t, [rps.NumActions]int{2, 1, 1}, totals.Player)
	require.Equal(t, [rps.NumActions]int{1, 1, 2}, totals.Opponent)
}

func TestTrackerTotalsIsACopy(t *testing.T) {
	var tr Tracker
	tr.Record(rps.Rock, rps.Rock, rps.Draw)
	totals := tr.Totals()
	totals.Player[rps.Rock] = 99
	require.Equal(t, 1, tr.Totals().Player[rps.Rock])
}
