package main

import (
	"fmt"
	"os"
	"time"

	"github.com/lox/holdemclient/cmd/holdemclient/shared"
	"github.com/lox/holdemclient/internal/engine"
	"github.com/lox/holdemclient/internal/holdem"
	"github.com/lox/holdemclient/internal/runner"
	"github.com/lox/holdemclient/internal/session"
)

type SimulateCmd struct {
	Server  string        `short:"s" help:"Engine URL (overrides config)"`
	Players int           `short:"p" help:"Number of seats (overrides config)"`
	Chips   int           `help:"Starting chips per seat (overrides config)"`
	Rounds  int           `short:"r" default:"1" help:"Rounds to play per table"`
	Tables  int           `short:"t" default:"1" help:"Concurrent tables to run"`
	Pause   time.Duration `default:"1s" help:"Pause between deal steps"`
}

func (s *SimulateCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli, s.Server, s.Players, s.Chips)
	if err != nil {
		return err
	}
	cfg.Game.Mode = "simulation"
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if s.Rounds < 1 || s.Tables < 1 {
		return fmt.Errorf("rounds and tables must be positive")
	}

	logger := shared.SetupLogger(os.Stderr, cfg.UI.LogLevel)
	logger.Info("starting simulation",
		"server", cfg.Server.URL, "rounds", s.Rounds, "tables", s.Tables)

	roundCfg := holdem.RoundConfig{
		PlayerCount:   cfg.Game.PlayerCount,
		Mode:          holdem.ModeSimulation,
		StartingChips: cfg.Game.StartingChips,
	}

	runners := make([]*runner.Runner, s.Tables)
	for i := range runners {
		eng := engine.NewClient(cfg.Server.URL, logger,
			engine.WithTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second))
		ctrl := session.New(eng, logger)
		runners[i] = runner.New(ctrl, logger, runner.WithPause(s.Pause))
	}

	ctx := shared.SetupSignalHandler()
	if err := runner.RunMany(ctx, runners, roundCfg, s.Rounds); err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}
	logger.Info("simulation complete", "tables", s.Tables, "rounds", s.Rounds)
	return nil
}
