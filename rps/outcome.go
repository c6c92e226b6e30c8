package rps

import "fmt"

// Outcome is the signed result of a round from the player's perspective.
type Outcome int

const (
	OpponentWins Outcome = -1
	Draw         Outcome = 0
	PlayerWins   Outcome = 1
)

// Flip returns the same result seen from the other side of the table
func (o Outcome) Flip() Outcome {
	return -o
}

func (o Outcome) String() string {
	switch o {
	case OpponentWins:
		return "opponent wins"
	case Draw:
		return "draw"
	case PlayerWins:
		return "player wins"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Score applies the dominance relation to a single round. Paper beats rock,
// rock beats scissors and scissors beats paper; equal throws draw.
func Score(player, opponent Action) (Outcome, error) {
	if !player.Valid() {
		return Draw, fmt.Errorf("%w: player %d", ErrInvalidAction, uint8(player))
	}
	if !opponent.Valid() {
		return Draw, fmt.Errorf("%w: opponent %d", ErrInvalidAction, uint8(opponent))
	}

	switch {
	case player == opponent:
		return Draw, nil
	case Beats(player, opponent):
		return PlayerWins, nil
	default:
		return OpponentWins, nil
	}
}
