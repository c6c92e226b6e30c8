package agent

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lox/roshambo/internal/randutil"
	"github.com/lox/roshambo/rps"
)

func TestNewTable(t *testing.T) {
	t.Run("covers every state with values in [0,1)", func(t *testing.T) {
		table := NewTable(randutil.New(1))
		require.Equal(t, rps.NumStates, table.Len())

		visited := 0
		table.Each(func(s rps.State, r Row) {
			visited++
			require.Len(t, r, rps.NumActions)
			for _, v := range r {
				require.GreaterOrEqual(t, v, 0.0)
				require.Less(t, v, 1.0)
			}
		})
		require.Equal(t, rps.NumStates, visited)
	})

	t.Run("is deterministic for a fixed seed", func(t *testing.T) {
		a := NewTable(randutil.New(42))
		b := NewTable(randutil.New(42))
		require.Equal(t, a, b)

		c := NewTable(randutil.New(43))
		require.NotEqual(t, a, c)
	})
}

func TestRowArgmax(t *testing.T) {
	tests := []struct {
		name string
		row  Row
		want rps.Action
	}{
		{name: "unique max", row: Row{0.1, 0.2, 0.7}, want: rps.Scissors},
		{name: "tie prefers lowest index", row: Row{0.2, 0.9, 0.9}, want: rps.Paper},
		{name: "all equal", row: Row{0.5, 0.5, 0.5}, want: rps.Rock},
		{name: "negative values", row: Row{-1, -0.5, -0.75}, want: rps.Paper},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.row.Argmax())
		})
	}
}

func TestChooseAction(t *testing.T) {
	table := NewTable(randutil.New(5))
	s := rps.State{Player: rps.Rock, Opponent: rps.Scissors}
	require.NoError(t, table.SetRow(s, Row{0.2, 0.9, 0.9}))

	got, err := table.ChooseAction(s)
	require.NoError(t, err)
	require.Equal(t, rps.Paper, got)

	_, err = table.ChooseAction(rps.State{Player: rps.Action(5), Opponent: rps.Rock})
	require.True(t, errors.Is(err, ErrUnknownState))
}

func TestRowReturnsCopy(t *testing.T) {
	table := NewTable(randutil.New(9))
	s := rps.State{Player: rps.Paper, Opponent: rps.Paper}

	r, err := table.Row(s)
	require.NoError(t, err)
	r[0] = 123

	again, err := table.Row(s)
	require.NoError(t, err)
	require.NotEqual(t, 123.0, again[0])
}

func TestClone(t *testing.T) {
	table := NewTable(randutil.New(11))
	s := rps.State{Player: rps.Rock, Opponent: rps.Rock}
	clone := table.Clone()

	require.NoError(t, table.Update(s, rps.Rock, rps.PlayerWins, 1))
	orig, _ := clone.Row(s)
	updated, _ := table.Row(s)
	require.NotEqual(t, orig, updated, "clone must not observe later updates")
}
