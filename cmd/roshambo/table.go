package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lox/roshambo/cmd/roshambo/shared"
	"github.com/lox/roshambo/internal/agent"
	"github.com/lox/roshambo/internal/simulator"
	"github.com/lox/roshambo/rps"
)

type TableCmd struct {
	OpponentFlags

	Bot string `default:"rock" enum:"${bots}" help:"Scripted player to train against (${bots})"`
}

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	tableCellStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	tableBestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#96CEB4"))
	tableInfoStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

func (c *TableCmd) Run(g *Globals) error {
	cfg, err := c.apply(g)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	start, err := cfg.Start()
	if err != nil {
		return err
	}

	rounds := cfg.Session.Rounds
	if rounds == 0 {
		return fmt.Errorf("table needs a round limit")
	}

	ctx, stop := shared.SetupSignalHandlerWithLogger(logger)
	defer stop()

	table, summary, err := simulator.New(simulator.Config{
		Sessions: 1,
		Rounds:   rounds,
		Gamma:    cfg.Session.Gamma,
		Policy:   cfg.Session.Policy,
		Bot:      c.Bot,
		Seed:     cfg.Session.Seed,
		Start:    start,
		Logger:   logger,
	}).Train(ctx)
	if err != nil {
		return err
	}

	fmt.Println(tableInfoStyle.Render(fmt.Sprintf(
		"After %d rounds against %s-bot (seed %d), bot score %d:",
		summary.Rounds, c.Bot, cfg.Session.Seed, summary.Total)))
	fmt.Println(renderTable(table))
	return nil
}

// renderTable lays the value table out one state per row with the greedy
// choice marked.
func renderTable(t *agent.Table) string {
	var b strings.Builder

	header := fmt.Sprintf("%-20s", "state (you,cpu)")
	for _, a := range rps.Actions() {
		header += fmt.Sprintf(" %9s", a.Title())
	}
	b.WriteString(tableHeaderStyle.Render(header))
	b.WriteString("\n")

	t.Each(func(s rps.State, row agent.Row) {
		best := row.Argmax()
		b.WriteString(tableCellStyle.Render(fmt.Sprintf("%-20s", s.String())))
		for _, a := range rps.Actions() {
			cell := fmt.Sprintf(" %8.4f", row[a])
			if a == best {
				b.WriteString(tableBestStyle.Render(cell + "*"))
			} else {
				b.WriteString(tableCellStyle.Render(cell + " "))
			}
		}
		b.WriteString("\n")
	})

	return strings.TrimRight(b.String(), "\n")
}
