package rps

import (
	"errors"
	"testing"
)

func TestScoreAntisymmetric(t *testing.T) {
	t.Parallel()
	for _, a := range Actions() {
		for _, b := range Actions() {
			ab, err := Score(a, b)
			if err != nil {
				t.Fatalf("Score(%s,%s): %v", a, b, err)
			}
			ba, err := Score(b, a)
			if err != nil {
				t.Fatalf("Score(%s,%s): %v", b, a, err)
			}
			if ab != -ba {
				t.Errorf("Score(%s,%s)=%d but Score(%s,%s)=%d", a, b, ab, b, a, ba)
			}
		}
		if o, _ := Score(a, a); o != Draw {
			t.Errorf("Score(%s,%s) = %d, want draw", a, a, o)
		}
	}
}

func TestScoreDominance(t *testing.T) {
	t.Parallel()
	tests := []struct {
		player, opponent Action
		want             Outcome
	}{
		{Paper, Rock, PlayerWins},
		{Rock, Scissors, PlayerWins},
		{Scissors, Paper, PlayerWins},
		{Rock, Paper, OpponentWins},
		{Scissors, Rock, OpponentWins},
		{Paper, Scissors, OpponentWins},
	}
	for _, tt := range tests {
		got, err := Score(tt.player, tt.opponent)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != tt.want {
			t.Errorf("Score(%s,%s) = %s, want %s", tt.player, tt.opponent, got, tt.want)
		}
	}
}

func TestScoreRejectsInvalidActions(t *testing.T) {
	t.Parallel()
	if _, err := Score(Action(3), Rock); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for player, got %v", err)
	}
	if _, err := Score(Rock, Action(9)); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for opponent, got %v", err)
	}
}

func TestOutcomeFlip(t *testing.T) {
	t.Parallel()
	if PlayerWins.Flip() != OpponentWins || Draw.Flip() != Draw {
		t.Error("Flip should negate the outcome")
	}
}
