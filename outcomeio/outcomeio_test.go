package outcomeio

import (
	"archive/zip"
	"bytes"
	"encoding/binary"
	"io"
	"math/rand"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/timpalpant/brdynamics"
)

func testBatch(t *testing.T) Batch {
	outcomes, err := brdynamics.RunBatch(rand.New(rand.NewSource(11)), 40, 4)
	if err != nil {
		t.Fatal(err)
	}

	return Batch{NumPlayers: 4, Seed: 11, Outcomes: outcomes}
}

func TestSaveLoad(t *testing.T) {
	batch := testBatch(t)
	filename := filepath.Join(t.TempDir(), "outcomes.gob.gz")
	if err := Save(filename, batch); err != nil {
		t.Fatal(err)
	}

	reloaded, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(batch, reloaded) {
		t.Errorf("expected: %v, got: %v", batch, reloaded)
	}
}

func TestLoad_Missing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error loading missing file")
	}
}

func TestSaveNPZ(t *testing.T) {
	batch := testBatch(t)
	filename := filepath.Join(t.TempDir(), "outcomes.npz")
	if err := SaveNPZ(filename, batch); err != nil {
		t.Fatal(err)
	}

	z, err := zip.OpenReader(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer z.Close()

	entries := make(map[string][]byte)
	for _, f := range z.File {
		r, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		buf, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			t.Fatal(err)
		}
		entries[f.Name] = buf
	}

	for _, name := range []string{"found.npy", "iterations.npy", "movements.npy", "restarts.npy", "n_players.npy"} {
		if _, ok := entries[name]; !ok {
			t.Errorf("archive missing %v", name)
		}
	}

	iterations := decodeNPY(t, entries["iterations.npy"])
	if len(iterations) != len(batch.Outcomes) {
		t.Fatalf("expected %d iterations, got %d", len(batch.Outcomes), len(iterations))
	}

	for i, o := range batch.Outcomes {
		if iterations[i] != int64(o.Iterations) {
			t.Errorf("outcome %d: expected %d iterations, got %d", i, o.Iterations, iterations[i])
		}
	}

	if nPlayers := decodeNPY(t, entries["n_players.npy"]); !reflect.DeepEqual(nPlayers, []int64{4}) {
		t.Errorf("unexpected n_players column: %v", nPlayers)
	}
}

// decodeNPY decodes a version 2.0 .npy array of int64.
func decodeNPY(t *testing.T, buf []byte) []int64 {
	if !bytes.HasPrefix(buf, []byte("\x93NUMPY\x02\x00")) {
		t.Fatalf("bad npy preamble: %q", buf[:8])
	}

	hdrLen := int(binary.LittleEndian.Uint32(buf[8:12]))
	if (12+hdrLen)%16 != 0 {
		t.Errorf("npy header not aligned: %d", 12+hdrLen)
	}

	data := buf[12+hdrLen:]
	result := make([]int64, len(data)/8)
	for i := range result {
		result[i] = int64(binary.LittleEndian.Uint64(data[8*i:]))
	}

	return result
}
