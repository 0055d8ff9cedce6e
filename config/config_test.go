package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"

	"github.com/timpalpant/brdynamics"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.NumGames != 10000 {
		t.Errorf("expected 10000 games, got %d", cfg.NumGames)
	}
	if cfg.NumPlayers != 5 {
		t.Errorf("expected 5 players, got %d", cfg.NumPlayers)
	}
	if cfg.HistogramBins != 20 {
		t.Errorf("expected 20 histogram bins, got %d", cfg.HistogramBins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
num_games: 500
num_players: 8
seed: 1234
workers: 2
output:
  archive: out/outcomes.gob.gz
  database: out/runs.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.NumGames != 500 || cfg.NumPlayers != 8 || cfg.Seed != 1234 || cfg.Workers != 2 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	if cfg.Output.Archive != "out/outcomes.gob.gz" || cfg.Output.Database != "out/runs.db" {
		t.Errorf("unexpected output config: %+v", cfg.Output)
	}

	// Unset values keep their defaults.
	if cfg.HistogramBins != 20 || cfg.Output.NPZ != "" {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadFromFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("num_games: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BRDYNAMICS_NUM_GAMES", "42")
	t.Setenv("BRDYNAMICS_SEED", "-7")
	t.Setenv("BRDYNAMICS_DATABASE", "/tmp/runs.db")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	if cfg.NumGames != 42 || cfg.Seed != -7 || cfg.Output.Database != "/tmp/runs.db" {
		t.Errorf("overrides not applied: %+v", cfg)
	}

	t.Setenv("BRDYNAMICS_WORKERS", "many")
	if _, err := Load(""); err == nil {
		t.Error("expected error for non-numeric override")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		modify   func(c *Config)
		expected error
	}{
		{func(c *Config) { c.NumGames = 0 }, brdynamics.ErrInvalidArgument},
		{func(c *Config) { c.NumPlayers = 0 }, brdynamics.ErrInvalidArgument},
		{func(c *Config) { c.NumPlayers = brdynamics.MaxPlayers + 1 }, brdynamics.ErrResourceLimit},
		{func(c *Config) { c.Workers = -1 }, brdynamics.ErrInvalidArgument},
		{func(c *Config) { c.HistogramBins = 0 }, brdynamics.ErrInvalidArgument},
	}

	for i, tc := range testCases {
		cfg := Default()
		tc.modify(cfg)
		if err := cfg.Validate(); errors.Cause(err) != tc.expected {
			t.Errorf("case %d: got %v, expected %v", i, err, tc.expected)
		}
	}
}
