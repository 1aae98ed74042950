package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jimezsa/careerwatch/internal/models"
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS observations (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	observed_at TEXT    NOT NULL,
	url         TEXT    NOT NULL,
	selector    TEXT    NOT NULL,
	count       INTEGER NOT NULL,
	previous    INTEGER,
	changed     INTEGER NOT NULL,
	notified    INTEGER NOT NULL
)`

// SQLiteStore appends one row per successful run.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath and ensures the
// observations table exists.
func NewSQLiteStore(ctx context.Context, dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating observations table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Record(ctx context.Context, obs models.Observation) error {
	var previous sql.NullInt64
	if obs.Previous.Known {
		previous = sql.NullInt64{Int64: int64(obs.Previous.Value), Valid: true}
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO observations (observed_at, url, selector, count, previous, changed, notified)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		obs.ObservedAt.UTC().Format(time.RFC3339Nano),
		obs.URL,
		obs.Selector,
		obs.Count,
		previous,
		obs.Changed,
		obs.Notified,
	)
	if err != nil {
		return fmt.Errorf("recording observation: %w", err)
	}
	return nil
}

// Recent returns up to limit observations, newest first. A limit <= 0 returns all.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]models.Observation, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT observed_at, url, selector, count, previous, changed, notified
		 FROM observations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying observations: %w", err)
	}
	defer rows.Close()

	var out []models.Observation
	for rows.Next() {
		var (
			obs        models.Observation
			observedAt string
			previous   sql.NullInt64
		)
		if err := rows.Scan(&observedAt, &obs.URL, &obs.Selector, &obs.Count, &previous, &obs.Changed, &obs.Notified); err != nil {
			return nil, fmt.Errorf("scanning observation: %w", err)
		}
		obs.ObservedAt, err = time.Parse(time.RFC3339Nano, observedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing observed_at %q: %w", observedAt, err)
		}
		if previous.Valid {
			obs.Previous = models.KnownCount(int(previous.Int64))
		}
		out = append(out, obs)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
