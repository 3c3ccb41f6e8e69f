package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Config   string           `short:"c" default:"holdemclient.hcl" help:"Path to HCL configuration file"`
	LogLevel string           `short:"l" help:"Log level (overrides config)"`

	Play     PlayCmd     `cmd:"" default:"1" help:"Play an interactive round in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run open-hand simulation rounds without the TUI"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("holdemclient"),
		kong.Description("Terminal client for a hosted Texas hold'em engine"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
