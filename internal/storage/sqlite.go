// Package storage provides SQLite-based persistence for highscores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// Score is a finished game to be recorded.
type Score struct {
	Mode       string // Game mode ID, e.g. "depthscraper"
	Score      int
	PlayerName string
	PlayerID   string
	Moves      int // Moves played in the game
}

// ScoreEntry represents a single recorded score.
type ScoreEntry struct {
	ID         int64
	Mode       string
	Score      int
	PlayerName string
	PlayerID   string
	Moves      int
	CreatedAt  time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	// Submissions run on their own goroutines; one writer avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			player_name TEXT NOT NULL DEFAULT 'anon',
			player_id TEXT NOT NULL DEFAULT '',
			moves INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(mode, player_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(ctx context.Context, sc Score) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (mode, score, player_name, player_id, moves) VALUES (?, ?, ?, ?, ?)",
		sc.Mode, sc.Score, sc.PlayerName, sc.PlayerID, sc.Moves,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const selectColumns = `SELECT id, mode, score, player_name, player_id, moves, created_at FROM scores`

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending, earlier scores first on ties.
func (s *Store) TopScores(ctx context.Context, mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		selectColumns+`
		 WHERE mode = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// PlayerBest returns the best score of a player in a mode and its rank
// (1-based, ties ranked by insertion order). ok is false when the player has
// no score.
func (s *Store) PlayerBest(ctx context.Context, mode, playerID string) (entry ScoreEntry, rank int, ok bool, err error) {
	row := s.db.QueryRowContext(ctx,
		selectColumns+`
		 WHERE mode = ? AND player_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT 1`,
		mode, playerID,
	)
	entry, err = scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return ScoreEntry{}, 0, false, nil
	}
	if err != nil {
		return ScoreEntry{}, 0, false, err
	}

	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM scores
		 WHERE mode = ? AND (score > ? OR (score = ? AND id < ?))`,
		mode, entry.Score, entry.Score, entry.ID,
	).Scan(&rank)
	if err != nil {
		return ScoreEntry{}, 0, false, fmt.Errorf("storage: cannot rank score: %w", err)
	}

	return entry, rank + 1, true, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(ctx context.Context, mode string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(ctx context.Context, mode string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int
	AvgScore   float64
	Players    int
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a mode.
func (s *Store) Stats(ctx context.Context, mode string) (ModeStats, error) {
	stats := ModeStats{Mode: mode}
	var lastPlayed any

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COUNT(DISTINCT player_id), MAX(created_at)
		 FROM scores WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.Players, &lastPlayed)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(sc scanner) (ScoreEntry, error) {
	var e ScoreEntry
	var createdAt any
	err := sc.Scan(&e.ID, &e.Mode, &e.Score, &e.PlayerName, &e.PlayerID, &e.Moves, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return e, err
	}
	if err != nil {
		return e, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	e.CreatedAt = parseTime(createdAt)
	return e, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
