package console

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lox/roshambo/internal/session"
)

// ErrUnknownInput is returned for lines that name no channel at all.
var ErrUnknownInput = errors.New("unknown input")

// Words offered by the line completer.
var Words = []string{"rock", "paper", "scissors", "quit", "help"}

// ParseSignals turns a typed line into the three channel states. Each
// action can be named in full or by its letter; letters may be run
// together ("rp"), which activates several channels at once. "quit" and
// "all" activate every channel, the end-of-session gesture.
func ParseSignals(line string) (session.Signals, error) {
	var sig session.Signals
	for _, field := range strings.Fields(strings.ToLower(line)) {
		switch field {
		case "rock":
			sig.Rock = true
		case "paper":
			sig.Paper = true
		case "scissors":
			sig.Scissors = true
		case "q", "quit", "exit", "all":
			return session.Signals{Rock: true, Paper: true, Scissors: true}, nil
		default:
			for _, c := range field {
				switch c {
				case 'r':
					sig.Rock = true
				case 'p':
					sig.Paper = true
				case 's':
					sig.Scissors = true
				default:
					return session.Signals{}, fmt.Errorf("%w: %q", ErrUnknownInput, field)
				}
			}
		}
	}
	return sig, nil
}
