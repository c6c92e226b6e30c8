package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/roshambo/internal/session"
	"github.com/lox/roshambo/rps"
)

// TUIModel represents the Bubble Tea model for a session
type TUIModel struct {
	logger *log.Logger

	// UI components
	logViewport viewport.Model

	// State
	roundLog []string
	signals  chan session.Signals
	quitting bool
	rounds   int // round cap, 0 for unlimited
	totals   session.Totals
	last     *session.Round
	summary  *session.Summary

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// RoundMsg carries a finished round into the model
type RoundMsg struct {
	Round session.Round
}

// SummaryMsg carries the end-of-session summary into the model
type SummaryMsg struct {
	Summary session.Summary
}

// keySignals maps keys onto the three input channels.
var keySignals = map[string]session.Signals{
	"r":      {Rock: true},
	"p":      {Paper: true},
	"s":      {Scissors: true},
	"q":      {Rock: true, Paper: true, Scissors: true},
	"esc":    {Rock: true, Paper: true, Scissors: true},
	"ctrl+c": {Rock: true, Paper: true, Scissors: true},
}

// NewTUIModel creates a new TUI model
func NewTUIModel(logger *log.Logger, rounds int) *TUIModel {
	return NewTUIModelWithOptions(logger, rounds, false)
}

// NewTUIModelWithOptions creates a new TUI model with test mode option
func NewTUIModelWithOptions(logger *log.Logger, rounds int, testMode bool) *TUIModel {
	// Sized properly once WindowSizeMsg arrives
	vp := viewport.New(10, 5)
	vp.SetContent("")

	return &TUIModel{
		logger:      logger.WithPrefix("tui"),
		logViewport: vp,
		roundLog:    []string{},
		signals:     make(chan session.Signals, 1),
		rounds:      rounds,
		testMode:    testMode,
		capturedLog: []string{},
	}
}

// Init initializes the TUI model
func (m *TUIModel) Init() tea.Cmd {
	return nil
}

// Signals returns the channel key presses are published on
func (m *TUIModel) Signals() <-chan session.Signals {
	return m.signals
}

// Update handles messages in the TUI
func (m *TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case RoundMsg:
		m.applyRound(msg.Round)

	case SummaryMsg:
		s := msg.Summary
		m.summary = &s
		m.totals = s.Totals
		m.AddLogEntry("")
		for _, line := range s.Lines() {
			m.AddLogEntry(line)
		}
		m.AddLogEntry("Press any key to exit")

	case tea.KeyMsg:
		key := msg.String()

		if m.summary != nil || key == "ctrl+c" {
			if key == "ctrl+c" {
				m.publish(keySignals[key])
			}
			m.quitting = true
			return m, tea.Quit
		}

		if sig, ok := keySignals[key]; ok {
			m.logger.Debug("Key pressed", "key", key)
			m.publish(sig)
			return m, nil
		}

		switch key {
		case "up", "k":
			m.logViewport.ScrollUp(1)
		case "down", "j":
			m.logViewport.ScrollDown(1)
		case "pgup", "b":
			m.logViewport.HalfPageUp()
		case "pgdown", "f":
			m.logViewport.HalfPageDown()
		case "home", "g":
			m.logViewport.GotoTop()
		case "end", "G":
			m.logViewport.GotoBottom()
		}
	}

	var cmd tea.Cmd
	m.logViewport, cmd = m.logViewport.Update(msg)
	return m, cmd
}

// publish hands a signal to the session without ever blocking the UI. A
// throw pressed while an earlier one is still pending is dropped; ending
// the session replaces whatever is pending.
func (m *TUIModel) publish(sig session.Signals) {
	if sig.AllActive() {
		select {
		case <-m.signals:
			m.logger.Debug("Replacing pending key press with end of session")
		default:
		}
	}
	select {
	case m.signals <- sig:
	default:
		m.logger.Debug("Dropping key press, previous one still pending")
	}
}

func (m *TUIModel) applyRound(r session.Round) {
	m.last = &r
	m.totals.Score = r.Total
	m.totals.Rounds = r.Index
	m.totals.Player[r.Player]++
	m.totals.Opponent[r.Opponent]++
	switch r.Outcome {
	case rps.PlayerWins:
		m.totals.Wins++
	case rps.OpponentWins:
		m.totals.Losses++
	default:
		m.totals.Draws++
	}
	m.AddLogEntry(strings.Join(r.Lines(), "  "))
}

// View renders the TUI
func (m *TUIModel) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := HeaderStyle.Render(m.renderHeader())
	footer := InfoStyle.Render(m.renderHelp())

	sidebar := m.renderSidebarPane()
	sidebarWidth := max(lipgloss.Width(sidebar), 22)
	paneHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer)-2, 1)

	sidebarPane := PaneStyle.
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebar)

	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	m.logViewport.SetContent(strings.Join(m.roundLog, "\n"))

	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logPane := PaneStyle.
		BorderForeground(lipgloss.Color("#04B575")).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, logPane, sidebarPane)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *TUIModel) renderHeader() string {
	if m.rounds > 0 {
		return fmt.Sprintf("Rock Paper Scissors  round %d/%d", m.totals.Rounds, m.rounds)
	}
	return fmt.Sprintf("Rock Paper Scissors  round %d", m.totals.Rounds)
}

func (m *TUIModel) renderHelp() string {
	if m.summary != nil {
		return "Press any key to exit"
	}
	return "r rock • p paper • s scissors • q end session • ↑↓ scroll"
}

// renderSidebarPane creates the sidebar content
func (m *TUIModel) renderSidebarPane() string {
	var content strings.Builder

	content.WriteString(ScoreStyle.Render(fmt.Sprintf("Score: %d", m.totals.Score)))
	content.WriteString("\n\n")

	if m.last != nil {
		content.WriteString(ThrowStyle.Render(m.last.Lines()[0]))
		content.WriteString("\n")
		content.WriteString(outcomeStyle(m.last.Outcome).Render(session.OutcomeText(m.last.Outcome)))
		content.WriteString("\n\n")
	}

	content.WriteString(InfoStyle.Render(fmt.Sprintf("W %d  D %d  L %d", m.totals.Wins, m.totals.Draws, m.totals.Losses)))
	content.WriteString("\n\n")

	content.WriteString(KeysStyle.Render("        you  cpu"))
	content.WriteString("\n")
	for _, a := range rps.Actions() {
		content.WriteString(fmt.Sprintf("%-8s %3d  %3d\n", a.Title(), m.totals.Player[a], m.totals.Opponent[a]))
	}

	if m.summary != nil {
		content.WriteString("\n")
		style := ErrorStyle
		if m.summary.Passed() {
			style = SuccessStyle
		}
		content.WriteString(style.Render(m.summary.Verdict()))
	}

	return content.String()
}

func outcomeStyle(o rps.Outcome) lipgloss.Style {
	switch o {
	case rps.PlayerWins:
		return SuccessStyle
	case rps.OpponentWins:
		return ErrorStyle
	default:
		return WarningStyle
	}
}

// AddLogEntry adds an entry to the round log
func (m *TUIModel) AddLogEntry(entry string) {
	m.roundLog = append(m.roundLog, entry)

	// In test mode, also capture the log entry
	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.roundLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// Totals returns what the sidebar currently shows
func (m *TUIModel) Totals() session.Totals {
	return m.totals
}

// IsTestMode returns whether the TUI is in test mode
func (m *TUIModel) IsTestMode() bool {
	return m.testMode
}

// GetCapturedLog returns the captured log entries (test mode only)
func (m *TUIModel) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	return append([]string(nil), m.capturedLog...)
}
