package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

// Globals are the flags shared by every command
type Globals struct {
	Config  string `short:"c" type:"path" default:"roshambo.hcl" env:"ROSHAMBO_CONFIG" help:"HCL config file (missing file uses defaults)"`
	Debug   bool   `help:"Enable debug logging"`
	LogJSON bool   `help:"Output JSON logs instead of console format"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Play     PlayCmd          `cmd:"" default:"withargs" help:"Play against the adaptive opponent"`
	Simulate SimulateCmd      `cmd:"" help:"Play many sessions between the opponent and a scripted bot"`
	Table    TableCmd         `cmd:"" help:"Train against a bot and print the learned value table"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("roshambo"),
		kong.Description("Rock, paper, scissors against an opponent that learns how you play"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
			"bots":    botNames(),
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
