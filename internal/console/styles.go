package console

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lox/roshambo/rps"
)

// Styles contains styling for the console
type Styles struct {
	Prompt  lipgloss.Style
	Info    lipgloss.Style
	Error   lipgloss.Style
	Throw   lipgloss.Style
	Win     lipgloss.Style
	Loss    lipgloss.Style
	Draw    lipgloss.Style
	Score   lipgloss.Style
	Summary lipgloss.Style
	Pass    lipgloss.Style
	Fail    lipgloss.Style
}

// NewRenderer returns a renderer for w. Without color every style renders
// as plain ASCII.
func NewRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

// NewStyles builds the console styles on r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Prompt:  r.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#626262")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Throw:   r.NewStyle().Bold(true),
		Win:     r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Loss:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		Draw:    r.NewStyle().Foreground(lipgloss.Color("#FFEAA7")),
		Score:   r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Summary: r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2),
		Pass:    r.NewStyle().Foreground(lipgloss.Color("#96CEB4")).Bold(true),
		Fail:    r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
}

// Outcome picks the style for a round result, from the player's side.
func (s Styles) Outcome(o rps.Outcome) lipgloss.Style {
	switch o {
	case rps.PlayerWins:
		return s.Win
	case rps.OpponentWins:
		return s.Loss
	default:
		return s.Draw
	}
}
