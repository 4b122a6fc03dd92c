// Package persistence provides SQLite-based storage of generation runs.
// A run records the chain parameters; its strips are appended in sequence
// so a surface can be reloaded column by column.
package persistence

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Run records the parameters of one generation run.
type Run struct {
	ID        string  `db:"id"`
	CreatedAt string  `db:"created_at"`
	Levels    int     `db:"levels"`
	Smoothing bool    `db:"smoothing"`
	Length    float64 `db:"length"`
	Start     float64 `db:"start"`
	Mean      float64 `db:"mean"`
	Dimension float64 `db:"dimension"`
	Seed      int64   `db:"seed"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		levels INTEGER NOT NULL,
		smoothing INTEGER NOT NULL,
		length REAL NOT NULL,
		start REAL NOT NULL,
		mean REAL NOT NULL,
		dimension REAL NOT NULL,
		seed INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS strips (
		run_id TEXT NOT NULL REFERENCES runs(id),
		seq INTEGER NOT NULL,
		heights_json TEXT NOT NULL,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_strips_run ON strips(run_id);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// CreateRun inserts a new run record and returns it with a fresh ID.
func (db *DB) CreateRun(run Run) (*Run, error) {
	run.ID = uuid.NewString()
	run.CreatedAt = time.Now().UTC().Format(time.RFC3339)

	_, err := db.conn.NamedExec(`
		INSERT INTO runs (id, created_at, levels, smoothing, length, start, mean, dimension, seed)
		VALUES (:id, :created_at, :levels, :smoothing, :length, :start, :mean, :dimension, :seed)`,
		run)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return &run, nil
}

// GetRun loads a run record by ID.
func (db *DB) GetRun(id string) (*Run, error) {
	var run Run
	if err := db.conn.Get(&run, `SELECT * FROM runs WHERE id = ?`, id); err != nil {
		return nil, fmt.Errorf("load run %s: %w", id, err)
	}
	return &run, nil
}

// AppendStrip stores one strip as the next column of a run.
func (db *DB) AppendStrip(runID string, seq int, heights []float64) error {
	blob, err := json.Marshal(heights)
	if err != nil {
		return fmt.Errorf("marshal strip: %w", err)
	}
	_, err = db.conn.Exec(`INSERT INTO strips (run_id, seq, heights_json) VALUES (?, ?, ?)`,
		runID, seq, string(blob))
	if err != nil {
		return fmt.Errorf("insert strip %d: %w", seq, err)
	}
	return nil
}

// LoadStrips returns all strips of a run in sequence order.
func (db *DB) LoadStrips(runID string) ([][]float64, error) {
	var rows []struct {
		Seq     int    `db:"seq"`
		Heights string `db:"heights_json"`
	}
	err := db.conn.Select(&rows, `SELECT seq, heights_json FROM strips WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("load strips: %w", err)
	}

	strips := make([][]float64, 0, len(rows))
	for _, row := range rows {
		var heights []float64
		if err := json.Unmarshal([]byte(row.Heights), &heights); err != nil {
			return nil, fmt.Errorf("unmarshal strip %d: %w", row.Seq, err)
		}
		strips = append(strips, heights)
	}
	return strips, nil
}

// StripCount returns the number of strips stored for a run.
func (db *DB) StripCount(runID string) (int, error) {
	var count int
	if err := db.conn.Get(&count, `SELECT COUNT(*) FROM strips WHERE run_id = ?`, runID); err != nil {
		return 0, fmt.Errorf("count strips: %w", err)
	}
	return count, nil
}

// ListRuns returns all run records, newest first.
func (db *DB) ListRuns() ([]Run, error) {
	var runs []Run
	if err := db.conn.Select(&runs, `SELECT * FROM runs ORDER BY created_at DESC`); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}
