package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

const schemaV1 = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    num_players INTEGER NOT NULL,
    num_games INTEGER NOT NULL,
    seed INTEGER NOT NULL,
    created_at TEXT NOT NULL
);

-- One row per simulated game, in game-index order within a run.
CREATE TABLE IF NOT EXISTS outcomes (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    game INTEGER NOT NULL,
    status TEXT NOT NULL,
    iterations INTEGER NOT NULL,
    movements INTEGER NOT NULL,
    restarts INTEGER NOT NULL,
    profile INTEGER NOT NULL,
    PRIMARY KEY (run_id, game)
);
CREATE INDEX IF NOT EXISTS idx_outcomes_status ON outcomes(run_id, status);

CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema creates the tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaV1); err != nil {
		return errors.Wrap(err, "creating schema")
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion)
	return errors.Wrap(err, "recording schema version")
}
