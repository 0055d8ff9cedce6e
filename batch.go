package brdynamics

import (
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// RunBatch simulates nGames independent random games with nPlayers
// players. Games are drawn from rng in order, so a batch is
// reproducible given the seed of rng.
func RunBatch(rng *rand.Rand, nGames, nPlayers int) ([]GameOutcome, error) {
	if err := validateBatch(nGames, nPlayers); err != nil {
		return nil, err
	}

	start := time.Now()
	results := make([]GameOutcome, nGames)
	for i := range results {
		game, err := NewRandomGame(rng, nPlayers, NumStrategies)
		if err != nil {
			return nil, err
		}

		results[i] = RunSingleGame(game)
		glog.V(3).Infof("Game %d: %v", i, results[i])
		logProgress(i+1, nGames, start)
	}

	return results, nil
}

type gameJob struct {
	id   int
	game *Game
}

// RunBatchParallel is like RunBatch but runs the games on nWorkers
// goroutines (runtime.NumCPU() if nWorkers <= 0). Games are still drawn
// from rng in order by a single producer, so the results are identical
// to those of RunBatch with the same rng.
func RunBatchParallel(rng *rand.Rand, nGames, nPlayers, nWorkers int) ([]GameOutcome, error) {
	if err := validateBatch(nGames, nPlayers); err != nil {
		return nil, err
	}

	if nWorkers <= 0 {
		nWorkers = runtime.NumCPU()
	}

	jobs := make(chan gameJob, nWorkers)
	results := make([]GameOutcome, nGames)
	var wg sync.WaitGroup
	for w := 0; w < nWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				// Each job writes a distinct index.
				results[job.id] = RunSingleGame(job.game)
			}
		}()
	}

	start := time.Now()
	for i := 0; i < nGames; i++ {
		// Arguments were validated above, so game creation cannot fail.
		game, _ := NewRandomGame(rng, nPlayers, NumStrategies)
		jobs <- gameJob{id: i, game: game}
		logProgress(i+1, nGames, start)
	}
	close(jobs)

	wg.Wait()
	return results, nil
}

func validateBatch(nGames, nPlayers int) error {
	if nGames < 1 {
		return errors.Wrapf(ErrInvalidArgument, "number of games must be positive, got %d", nGames)
	}

	return validateSize(nPlayers, NumStrategies)
}

func logProgress(done, total int, start time.Time) {
	if total < 10 || done%(total/10) != 0 {
		return
	}

	gps := float64(done) / time.Since(start).Seconds()
	glog.V(1).Infof("Started %d of %d games (%.1f games/sec)", done, total, gps)
}
