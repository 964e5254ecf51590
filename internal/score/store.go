// Package score persists finished-game results to a local SQLite database
// and serves the high-score table.
package score

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Record is one finished game.
type Record struct {
	ID        string
	Player    string
	Score     int
	Lines     int
	Level     int
	Duration  time.Duration
	StartedAt time.Time
}

// Store manages the high-score database.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore creates or opens the score database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create score db dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open score db: %w", err)
	}

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init score schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS scores (
		id          TEXT PRIMARY KEY,
		player      TEXT NOT NULL DEFAULT '',
		score       INTEGER NOT NULL,
		lines       INTEGER NOT NULL,
		level       INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		started_at  DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_scores_score ON scores(score DESC, started_at ASC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Add records a finished game and returns its generated id.
func (s *Store) Add(ctx context.Context, r Record) (string, error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scores (id, player, score, lines, level, duration_ms, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Player, r.Score, r.Lines, r.Level,
		r.Duration.Milliseconds(), r.StartedAt.UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("insert score: %w", err)
	}
	return r.ID, nil
}

// Top returns the best n scores, highest first; ties go to the earlier game.
func (s *Store) Top(ctx context.Context, n int) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player, score, lines, level, duration_ms, started_at
		FROM scores
		ORDER BY score DESC, started_at ASC
		LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var ms int64
		if err := rows.Scan(&r.ID, &r.Player, &r.Score, &r.Lines, &r.Level, &ms, &r.StartedAt); err != nil {
			return nil, fmt.Errorf("scan score row: %w", err)
		}
		r.Duration = time.Duration(ms) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}

// Best returns the highest score on record, or 0 for an empty table.
func (s *Store) Best(ctx context.Context) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(score) FROM scores`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("query best score: %w", err)
	}
	return int(best.Int64), nil
}
