// Package config loads the client configuration from an HCL file. Missing
// files fall back to defaults so the client runs with no config at all.
package config

import (
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// Config is the complete client configuration.
type Config struct {
	Server ServerSettings `hcl:"server,block"`
	Game   GameSettings   `hcl:"game,block"`
	UI     UISettings     `hcl:"ui,block"`
}

// ServerSettings covers the connection to the remote engine.
type ServerSettings struct {
	URL            string `hcl:"url"`
	RequestTimeout int    `hcl:"request_timeout,optional"`
}

// GameSettings are the defaults for starting a round.
type GameSettings struct {
	PlayerCount   int    `hcl:"player_count,optional"`
	StartingChips int    `hcl:"starting_chips,optional"`
	Mode          string `hcl:"mode,optional"`
}

// UISettings control presentation.
type UISettings struct {
	LogLevel  string `hcl:"log_level,optional"`
	ShowOdds  bool   `hcl:"show_odds,optional"`
	CardBacks string `hcl:"card_backs,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Server: ServerSettings{
			URL:            "http://localhost:3000",
			RequestTimeout: 30,
		},
		Game: GameSettings{
			PlayerCount:   2,
			StartingChips: 1000,
			Mode:          "interactive",
		},
		UI: UISettings{
			LogLevel:  "warn",
			ShowOdds:  true,
			CardBacks: "▒▒",
		},
	}
}

// Load reads configuration from an HCL file, applying defaults for any value
// left unset. A missing file is not an error.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %s", filename, diags.Error())
	}

	var cfg Config
	diags = gohcl.DecodeBody(file.Body, nil, &cfg)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %s", filename, diags.Error())
	}

	defaults := Default()
	if cfg.Server.URL == "" {
		cfg.Server.URL = defaults.Server.URL
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaults.Server.RequestTimeout
	}
	if cfg.Game.PlayerCount == 0 {
		cfg.Game.PlayerCount = defaults.Game.PlayerCount
	}
	if cfg.Game.StartingChips == 0 {
		cfg.Game.StartingChips = defaults.Game.StartingChips
	}
	if cfg.Game.Mode == "" {
		cfg.Game.Mode = defaults.Game.Mode
	}
	if cfg.UI.LogLevel == "" {
		cfg.UI.LogLevel = defaults.UI.LogLevel
	}
	if cfg.UI.CardBacks == "" {
		cfg.UI.CardBacks = defaults.UI.CardBacks
	}
	return &cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	if c.Server.URL == "" {
		return fmt.Errorf("server URL is required")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	if c.Game.PlayerCount < 2 {
		return fmt.Errorf("player count must be at least 2")
	}
	if c.Game.StartingChips <= 0 {
		return fmt.Errorf("starting chips must be positive")
	}
	switch c.Game.Mode {
	case "simulation", "interactive":
	default:
		return fmt.Errorf("invalid mode: %s", c.Game.Mode)
	}
	switch c.UI.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.UI.LogLevel)
	}
	return nil
}
