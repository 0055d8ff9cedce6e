// Simulate best-response dynamics on a batch of random games and report
// how often, and how quickly, a pure-strategy Nash equilibrium is reached.
package main

import (
	"context"
	"expvar"
	"flag"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"time"

	"github.com/golang/glog"

	"github.com/timpalpant/brdynamics"
	"github.com/timpalpant/brdynamics/config"
	"github.com/timpalpant/brdynamics/outcomeio"
	"github.com/timpalpant/brdynamics/report"
	"github.com/timpalpant/brdynamics/store"
)

var (
	gamesPlayed = expvar.NewInt("games_played")
	gamesFound  = expvar.NewInt("equilibria_found")
)

func main() {
	configPath := flag.String("config", "", "YAML config file (flags override its values)")
	numGames := flag.Int("num_games", 0, "Number of random games to simulate")
	numPlayers := flag.Int("num_players", 0, "Number of players in each game")
	seed := flag.Int64("seed", 0, "Random seed (0 = use current time)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (0 = one per CPU, 1 = serial)")
	bins := flag.Int("histogram_bins", 0, "Maximum number of histogram bins")
	archive := flag.String("output", "", "Save outcomes as gzipped gob to this file")
	npz := flag.String("npz_output", "", "Save outcome columns as numpy .npz to this file")
	dbPath := flag.String("db", "", "Append the run to this SQLite database")
	debugAddr := flag.String("debug_addr", "localhost:4123", "Address for pprof and expvar (empty to disable)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		glog.Fatal(err)
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "num_games":
			cfg.NumGames = *numGames
		case "num_players":
			cfg.NumPlayers = *numPlayers
		case "seed":
			cfg.Seed = *seed
		case "workers":
			cfg.Workers = *workers
		case "histogram_bins":
			cfg.HistogramBins = *bins
		case "output":
			cfg.Output.Archive = *archive
		case "npz_output":
			cfg.Output.NPZ = *npz
		case "db":
			cfg.Output.Database = *dbPath
		}
	})

	if err := cfg.Validate(); err != nil {
		glog.Fatal(err)
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if *debugAddr != "" {
		go http.ListenAndServe(*debugAddr, nil)
	}

	glog.Infof("Simulating %d games with %d players (seed %d)", cfg.NumGames, cfg.NumPlayers, cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))
	start := time.Now()
	var outcomes []brdynamics.GameOutcome
	if cfg.Workers == 1 {
		outcomes, err = brdynamics.RunBatch(rng, cfg.NumGames, cfg.NumPlayers)
	} else {
		outcomes, err = brdynamics.RunBatchParallel(rng, cfg.NumGames, cfg.NumPlayers, cfg.Workers)
	}
	if err != nil {
		glog.Fatal(err)
	}

	elapsed := time.Since(start)
	gamesPlayed.Add(int64(len(outcomes)))
	summary := report.Summarize(outcomes, cfg.NumPlayers, cfg.HistogramBins)
	gamesFound.Add(int64(summary.Get(brdynamics.EquilibriumFound).Count))
	glog.Infof("Finished %d games in %v (%.1f games/sec), %.2f%% reached an equilibrium",
		len(outcomes), elapsed, float64(len(outcomes))/elapsed.Seconds(), 100*summary.FractionFound())

	if err := report.WriteText(os.Stdout, summary); err != nil {
		glog.Fatal(err)
	}

	batch := outcomeio.Batch{
		NumPlayers: cfg.NumPlayers,
		Seed:       cfg.Seed,
		Outcomes:   outcomes,
	}

	if cfg.Output.Archive != "" {
		if err := outcomeio.Save(cfg.Output.Archive, batch); err != nil {
			glog.Fatal(err)
		}
	}

	if cfg.Output.NPZ != "" {
		if err := outcomeio.SaveNPZ(cfg.Output.NPZ, batch); err != nil {
			glog.Fatal(err)
		}
	}

	if cfg.Output.Database != "" {
		saveRun(cfg.Output.Database, batch)
	}
}

func saveRun(dbPath string, batch outcomeio.Batch) {
	ctx := context.Background()
	db, err := store.Open(ctx, dbPath)
	if err != nil {
		glog.Fatal(err)
	}
	defer db.Close()

	run, err := db.SaveRun(ctx, batch.NumPlayers, batch.Seed, batch.Outcomes)
	if err != nil {
		glog.Fatal(err)
	}

	glog.Infof("Saved run %v to %v", run.ID, dbPath)
}
