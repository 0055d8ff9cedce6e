// Package outcomeio saves and loads the outcomes of a batch of runs.
package outcomeio

import (
	"bytes"
	"encoding/gob"
	"io"
	"os"

	"github.com/golang/glog"
	gzip "github.com/klauspost/pgzip"
	"github.com/pkg/errors"

	"github.com/timpalpant/brdynamics"
	"github.com/timpalpant/brdynamics/outcomeio/internal/npyio"
)

// Batch is the outcomes of one batch of n-player games, as archived.
type Batch struct {
	NumPlayers int
	Seed       int64
	Outcomes   []brdynamics.GameOutcome
}

// Save writes the batch as a gzipped gob to filename.
func Save(filename string, batch Batch) error {
	glog.Infof("Saving %d outcomes to: %v", len(batch.Outcomes), filename)
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := gzip.NewWriter(f)
	enc := gob.NewEncoder(w)
	if err := enc.Encode(batch); err != nil {
		return errors.Wrapf(err, "encoding outcomes to %v", filename)
	}

	if err := w.Close(); err != nil {
		return err
	}

	return f.Close()
}

// Load reads a batch written by Save.
func Load(filename string) (Batch, error) {
	var batch Batch
	f, err := os.Open(filename)
	if err != nil {
		return batch, err
	}
	defer f.Close()

	r, err := gzip.NewReader(f)
	if err != nil {
		return batch, errors.Wrapf(err, "reading %v", filename)
	}
	defer r.Close()

	dec := gob.NewDecoder(r)
	if err := dec.Decode(&batch); err != nil {
		return batch, errors.Wrapf(err, "decoding outcomes from %v", filename)
	}

	return batch, nil
}

// SaveNPZ writes the outcomes as a numpy .npz archive with columns
// "found" (1 if an equilibrium was reached, else 0), "iterations",
// "movements", "restarts" and "n_players" (a single element).
func SaveNPZ(filename string, batch Batch) error {
	n := len(batch.Outcomes)
	found := make([]int64, n)
	iterations := make([]int64, n)
	movements := make([]int64, n)
	restarts := make([]int64, n)
	for i, o := range batch.Outcomes {
		if o.Status == brdynamics.EquilibriumFound {
			found[i] = 1
		}
		iterations[i] = int64(o.Iterations)
		movements[i] = int64(o.Movements)
		restarts[i] = int64(o.Restarts)
	}

	columns := map[string][]int64{
		"found":      found,
		"iterations": iterations,
		"movements":  movements,
		"restarts":   restarts,
		"n_players":  {int64(batch.NumPlayers)},
	}

	npyFiles := make(map[string]io.Reader, len(columns))
	for name, col := range columns {
		var buf bytes.Buffer
		if err := npyio.WriteInt64(&buf, col); err != nil {
			return errors.Wrapf(err, "encoding column %v", name)
		}
		npyFiles[name] = &buf
	}

	glog.V(1).Infof("Writing %d outcomes to %v", n, filename)
	return npyio.MakeNPZ(npyFiles, filename)
}
