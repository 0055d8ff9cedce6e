// Compare, for a range of player counts, how often best-response
// dynamics reach an equilibrium with how often one exists at all.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"net/http"
	_ "net/http/pprof"
	"os"
	"text/tabwriter"

	"github.com/golang/glog"

	"github.com/timpalpant/brdynamics"
	"github.com/timpalpant/brdynamics/report"
	"github.com/timpalpant/brdynamics/store"
)

func main() {
	minPlayers := flag.Int("min_players", 2, "Smallest number of players")
	maxPlayers := flag.Int("max_players", 10, "Largest number of players")
	numGames := flag.Int("num_games", 1000, "Number of random games per player count")
	seed := flag.Int64("seed", 123, "Random seed")
	workers := flag.Int("workers", 0, "Number of worker goroutines (0 = one per CPU)")
	dbPath := flag.String("db", "", "Append each run to this SQLite database")
	flag.Parse()

	go http.ListenAndServe("localhost:4123", nil)

	var db *store.Store
	if *dbPath != "" {
		var err error
		db, err = store.Open(context.Background(), *dbPath)
		if err != nil {
			glog.Fatal(err)
		}
		defer db.Close()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "players\tgames\treached\texists\tmean iterations\tmean movements\t")
	for n := *minPlayers; n <= *maxPlayers; n++ {
		glog.Infof("Simulating %d games with %d players", *numGames, n)
		outcomes, err := brdynamics.RunBatchParallel(rand.New(rand.NewSource(*seed)), *numGames, n, *workers)
		if err != nil {
			glog.Fatal(err)
		}

		nExist, err := countWithEquilibrium(rand.New(rand.NewSource(*seed)), outcomes, n)
		if err != nil {
			glog.Fatal(err)
		}

		s := report.Summarize(outcomes, n, 1)
		found := s.Get(brdynamics.EquilibriumFound)
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.2f\t%.2f\t\n", n, len(outcomes), found.Fraction,
			float64(nExist)/float64(len(outcomes)), found.Iterations.Mean, found.Movements.Mean)

		if db != nil {
			if _, err := db.SaveRun(context.Background(), n, *seed, outcomes); err != nil {
				glog.Fatal(err)
			}
		}
	}

	w.Flush()
}

// countWithEquilibrium regenerates the games of a batch from rng and
// counts those that have a pure-strategy Nash equilibrium.
func countWithEquilibrium(rng *rand.Rand, outcomes []brdynamics.GameOutcome, nPlayers int) (int, error) {
	count := 0
	for i, outcome := range outcomes {
		game, err := brdynamics.NewRandomGame(rng, nPlayers, brdynamics.NumStrategies)
		if err != nil {
			return 0, err
		}

		if !brdynamics.HasPureNash(game) {
			if outcome.Status == brdynamics.EquilibriumFound {
				glog.Errorf("Game %d reached an equilibrium but has none: %v", i, outcome)
			}
			continue
		}

		count++
		if outcome.Status == brdynamics.EquilibriumNotFound {
			// Exhaustion visits every profile, and the dynamics
			// always stop at an equilibrium once it is visited.
			glog.Errorf("Game %d has an equilibrium that was never reached: %v", i, outcome)
		}
	}

	return count, nil
}
