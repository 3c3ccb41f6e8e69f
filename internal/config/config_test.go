package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "client.hcl")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.URL != "http://localhost:3000" {
		t.Errorf("default URL = %q", cfg.Server.URL)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadOverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
server {
  url = "http://engine.internal:3000"
}

game {
  player_count   = 4
  starting_chips = 500
}

ui {
  log_level = "debug"
}
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.URL != "http://engine.internal:3000" {
		t.Errorf("URL = %q", cfg.Server.URL)
	}
	if cfg.Server.RequestTimeout != 30 {
		t.Errorf("timeout default not applied: %d", cfg.Server.RequestTimeout)
	}
	if cfg.Game.PlayerCount != 4 || cfg.Game.StartingChips != 500 {
		t.Errorf("game settings = %+v", cfg.Game)
	}
	if cfg.Game.Mode != "interactive" {
		t.Errorf("mode default not applied: %q", cfg.Game.Mode)
	}
	if cfg.UI.LogLevel != "debug" {
		t.Errorf("log level = %q", cfg.UI.LogLevel)
	}
}

func TestLoadRejectsBadHCL(t *testing.T) {
	path := writeConfig(t, `server { url = `)
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults valid", func(*Config) {}, false},
		{"empty url", func(c *Config) { c.Server.URL = "" }, true},
		{"one player", func(c *Config) { c.Game.PlayerCount = 1 }, true},
		{"bad mode", func(c *Config) { c.Game.Mode = "spectate" }, true},
		{"bad log level", func(c *Config) { c.UI.LogLevel = "trace" }, true},
		{"simulation mode ok", func(c *Config) { c.Game.Mode = "simulation" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
