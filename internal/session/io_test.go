package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/rps"
)

func TestSignalsResolve(t *testing.T) {
	tests := []struct {
		name    string
		signals Signals
		want    rps.Action
		ok      bool
		all     bool
	}{
		{name: "none", signals: Signals{}},
		{name: "rock", signals: Signals{Rock: true}, want: rps.Rock, ok: true},
		{name: "paper", signals: Signals{Paper: true}, want: rps.Paper, ok: true},
		{name: "scissors", signals: Signals{Scissors: true}, want: rps.Scissors, ok: true},
		{name: "two at once", signals: Signals{Rock: true, Paper: true}},
		{name: "all three", signals: Signals{Rock: true, Paper: true, Scissors: true}, all: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.signals.Resolve()
			require.Equal(t, tt.ok, ok)
			if ok {
				require.Equal(t, tt.want, got)
			}
			require.Equal(t, tt.all, tt.signals.AllActive())
		})
	}
}

func TestRoundLines(t *testing.T) {
	r := Round{Index: 3, Player: rps.Rock, Opponent: rps.Paper, Outcome: rps.OpponentWins, Total: -2}
	assert.Equal(t, []string{"Rock - Paper", "COMPUTER wins!", "round 3.", "score -2"}, r.Lines())

	r = Round{Index: 1, Player: rps.Scissors, Opponent: rps.Paper, Outcome: rps.PlayerWins, Total: 1}
	assert.Equal(t, "PLAYER wins!", r.Lines()[1])
	assert.Equal(t, "DRAW", OutcomeText(rps.Draw))
}

func TestSummaryVerdict(t *testing.T) {
	assert.True(t, Summary{Total: 0}.Passed())
	assert.Equal(t, "good :)", Summary{Total: 3}.Verdict())
	assert.False(t, Summary{Total: -1}.Passed())
	assert.Equal(t, []string{"Rounds: 12", "Result: -1", "bad :("}, Summary{Rounds: 12, Total: -1}.Lines())
}

func TestRecorder(t *testing.T) {
	var rec Recorder
	_, ok := rec.Summary()
	require.False(t, ok)

	require.NoError(t, rec.ShowRound(Round{Index: 1}))
	require.NoError(t, rec.ShowSummary(Summary{Rounds: 1}))

	require.Len(t, rec.Rounds(), 1)
	s, ok := rec.Summary()
	require.True(t, ok)
	require.Equal(t, 1, s.Rounds)
}
