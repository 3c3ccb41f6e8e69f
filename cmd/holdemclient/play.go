package main

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/holdemclient/cmd/holdemclient/shared"
	"github.com/lox/holdemclient/internal/config"
	"github.com/lox/holdemclient/internal/engine"
	"github.com/lox/holdemclient/internal/holdem"
	"github.com/lox/holdemclient/internal/session"
	"github.com/lox/holdemclient/internal/tui"
	"github.com/lox/holdemclient/internal/view"
)

type PlayCmd struct {
	Server  string `short:"s" help:"Engine URL (overrides config)"`
	Players int    `short:"p" help:"Number of seats including yours (overrides config)"`
	Chips   int    `help:"Starting chips per seat (overrides config)"`
	LogFile string `default:"holdemclient.log" help:"Log file path (the TUI owns the terminal)"`
}

func (p *PlayCmd) Run(cli *CLI) error {
	cfg, err := loadConfig(cli, p.Server, p.Players, p.Chips)
	if err != nil {
		return err
	}
	cfg.Game.Mode = "interactive"
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logFile, err := os.OpenFile(p.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	logger := shared.SetupLogger(logFile, cfg.UI.LogLevel)
	logger.Info("starting client", "server", cfg.Server.URL, "config", cli.Config)

	eng := engine.NewClient(cfg.Server.URL, logger,
		engine.WithTimeout(time.Duration(cfg.Server.RequestTimeout)*time.Second))
	ctrl := session.New(eng, logger)

	renderer := view.NewRenderer(
		view.WithCardBack(cfg.UI.CardBacks),
		view.WithOdds(cfg.UI.ShowOdds),
	)

	roundCfg := holdem.RoundConfig{
		PlayerCount:   cfg.Game.PlayerCount,
		Mode:          holdem.ModeInteractive,
		StartingChips: cfg.Game.StartingChips,
	}

	model := tui.New(ctrl, renderer, roundCfg, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}

// loadConfig reads the HCL file and applies CLI overrides on top.
func loadConfig(cli *CLI, server string, players, chips int) (*config.Config, error) {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if server != "" {
		cfg.Server.URL = server
	}
	if players > 0 {
		cfg.Game.PlayerCount = players
	}
	if chips > 0 {
		cfg.Game.StartingChips = chips
	}
	if cli.LogLevel != "" {
		cfg.UI.LogLevel = cli.LogLevel
	}
	return cfg, nil
}
