// Package store persists batches of simulation outcomes in SQLite so
// that runs with different player counts can be compared later.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/timpalpant/brdynamics"
	"github.com/timpalpant/brdynamics/profile"
)

// Run describes one stored batch.
type Run struct {
	ID         string
	NumPlayers int
	NumGames   int
	Seed       int64
	CreatedAt  time.Time
}

// Store is a SQLite database of runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, errors.Wrapf(err, "opening database %v", path)
	}

	// SQLite works best with a single writer.
	db.SetMaxOpenConns(1)

	if err := InitSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the outcomes of one batch and returns the new run.
func (s *Store) SaveRun(ctx context.Context, nPlayers int, seed int64, outcomes []brdynamics.GameOutcome) (Run, error) {
	run := Run{
		ID:         uuid.New().String(),
		NumPlayers: nPlayers,
		NumGames:   len(outcomes),
		Seed:       seed,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, errors.Wrap(err, "beginning transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, num_players, num_games, seed, created_at) VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.NumPlayers, run.NumGames, run.Seed, run.CreatedAt.Format(time.RFC3339)); err != nil {
		return run, errors.Wrap(err, "inserting run")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes (run_id, game, status, iterations, movements, restarts, profile)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return run, errors.Wrap(err, "preparing outcome insert")
	}
	defer stmt.Close()

	for i, o := range outcomes {
		if _, err := stmt.ExecContext(ctx, run.ID, i, string(o.Status),
			o.Iterations, o.Movements, o.Restarts, int64(o.Profile)); err != nil {
			return run, errors.Wrapf(err, "inserting outcome %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return run, errors.Wrap(err, "committing run")
	}

	glog.V(1).Infof("Stored run %v (%d games, %d players)", run.ID, run.NumGames, run.NumPlayers)
	return run, nil
}

// Runs lists the stored runs, oldest first. If nPlayers > 0 only runs
// with that many players are returned.
func (s *Store) Runs(ctx context.Context, nPlayers int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, num_players, num_games, seed, created_at FROM runs
		WHERE ? <= 0 OR num_players = ?
		ORDER BY created_at, rowid`, nPlayers, nPlayers)
	if err != nil {
		return nil, errors.Wrap(err, "querying runs")
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.NumPlayers, &run.NumGames, &run.Seed, &createdAt); err != nil {
			return nil, errors.Wrap(err, "scanning run")
		}

		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing creation time of run %v", run.ID)
		}

		result = append(result, run)
	}

	return result, errors.Wrap(rows.Err(), "iterating runs")
}

// Outcomes returns the outcomes of the given run in game order.
func (s *Store) Outcomes(ctx context.Context, runID string) ([]brdynamics.GameOutcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT status, iterations, movements, restarts, profile FROM outcomes
		WHERE run_id = ? ORDER BY game`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "querying outcomes of run %v", runID)
	}
	defer rows.Close()

	var result []brdynamics.GameOutcome
	for rows.Next() {
		var o brdynamics.GameOutcome
		var status string
		var p int64
		if err := rows.Scan(&status, &o.Iterations, &o.Movements, &o.Restarts, &p); err != nil {
			return nil, errors.Wrap(err, "scanning outcome")
		}

		o.Status = brdynamics.Status(status)
		o.Profile = profile.Profile(p)
		result = append(result, o)
	}

	return result, errors.Wrap(rows.Err(), "iterating outcomes")
}
