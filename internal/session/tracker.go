package session

import "github.com/lox/roshambo/rps"

// Totals is the running score and per-action frequency of both sides.
type Totals struct {
	Score    int
	Rounds   int
	Wins     int // rounds the player won
	Draws    int
	Losses   int
	Player   [rps.NumActions]int
	Opponent [rps.NumActions]int
}

// Tracker accumulates Totals. It is reporting only and never feeds back into
// the opponent's decisions.
type Tracker struct {
	totals Totals
}

// Record adds one round and returns the new cumulative score.
func (t *Tracker) Record(player, opponent rps.Action, outcome rps.Outcome) int {
	t.totals.Score += int(outcome)
	t.totals.Rounds++
	switch outcome {
	case rps.PlayerWins:
		t.totals.Wins++
	case rps.OpponentWins:
		t.totals.Losses++
	default:
		t.totals.Draws++
	}
	if player.Valid() {
		t.totals.Player[player]++
	}
	if opponent.Valid() {
		t.totals.Opponent[opponent]++
	}
	return t.totals.Score
}

// Total returns the cumulative score so far.
func (t *Tracker) Total() int {
	return t.totals.Score
}

// Totals returns a copy of everything tracked so far.
func (t *Tracker) Totals() Totals {
	return t.totals
}
