// Package config loads settings for simulation batches from YAML files
// and environment variables.
package config

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/timpalpant/brdynamics"
)

// Config describes one batch of simulated games and where to put the results.
type Config struct {
	// NumGames is the number of independent games to simulate.
	NumGames int `yaml:"num_games"`

	// NumPlayers is the number of players in each game.
	NumPlayers int `yaml:"num_players"`

	// Seed seeds the random payoffs. 0 means seed from the current time.
	Seed int64 `yaml:"seed"`

	// Workers is the number of goroutines running games (0 = one per CPU,
	// 1 = run serially).
	Workers int `yaml:"workers"`

	// HistogramBins is the maximum number of bins in reported histograms.
	HistogramBins int `yaml:"histogram_bins"`

	Output Output `yaml:"output"`
}

// Output configures where outcomes are written. Empty paths are skipped.
type Output struct {
	// Archive is a gzipped gob of all outcomes.
	Archive string `yaml:"archive"`

	// NPZ is a numpy archive of outcome columns.
	NPZ string `yaml:"npz"`

	// Database is a SQLite database that accumulates runs.
	Database string `yaml:"database"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		NumGames:      10000,
		NumPlayers:    5,
		Seed:          0,
		Workers:       0,
		HistogramBins: 20,
	}
}

// Load returns the configuration in path (or the defaults if path is
// empty) with environment variable overrides applied.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		cfg, err = LoadFromFile(path)
		if err != nil {
			return nil, err
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromFile reads the YAML configuration in path. Settings missing
// from the file keep their defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading config file")
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %v", path)
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable batch.
func (c *Config) Validate() error {
	if c.NumGames < 1 {
		return errors.Wrapf(brdynamics.ErrInvalidArgument, "num_games must be positive, got %d", c.NumGames)
	}

	if c.NumPlayers < 1 {
		return errors.Wrapf(brdynamics.ErrInvalidArgument, "num_players must be positive, got %d", c.NumPlayers)
	}

	if c.NumPlayers > brdynamics.MaxPlayers {
		return errors.Wrapf(brdynamics.ErrResourceLimit, "num_players must be at most %d, got %d",
			brdynamics.MaxPlayers, c.NumPlayers)
	}

	if c.Workers < 0 {
		return errors.Wrapf(brdynamics.ErrInvalidArgument, "workers must be non-negative, got %d", c.Workers)
	}

	if c.HistogramBins < 1 {
		return errors.Wrapf(brdynamics.ErrInvalidArgument, "histogram_bins must be positive, got %d", c.HistogramBins)
	}

	return nil
}

var intOverrides = []struct {
	name string
	dst  func(c *Config) *int
}{
	{"BRDYNAMICS_NUM_GAMES", func(c *Config) *int { return &c.NumGames }},
	{"BRDYNAMICS_NUM_PLAYERS", func(c *Config) *int { return &c.NumPlayers }},
	{"BRDYNAMICS_WORKERS", func(c *Config) *int { return &c.Workers }},
	{"BRDYNAMICS_HISTOGRAM_BINS", func(c *Config) *int { return &c.HistogramBins }},
}

func applyEnvOverrides(c *Config) error {
	for _, o := range intOverrides {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parsing %s", o.name)
		}
		*o.dst(c) = n
	}

	if v := os.Getenv("BRDYNAMICS_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrap(err, "parsing BRDYNAMICS_SEED")
		}
		c.Seed = seed
	}

	if v := os.Getenv("BRDYNAMICS_DATABASE"); v != "" {
		c.Output.Database = v
	}

	return nil
}
