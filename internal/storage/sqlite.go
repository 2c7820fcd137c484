// Package storage provides SQLite-based persistence for round results.
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

	"github.com/vovakirdan/hitcircle/internal/game"
)

// Store manages the SQLite database connection for result history.
type Store struct {
	db *sql.DB
}

// Result is one recorded win.
type Result struct {
	ID          int64     `json:"id"`
	RoundID     string    `json:"round_id"`
	MapID       string    `json:"map_id"`
	Difficulty  string    `json:"difficulty"`
	Score       float64   `json:"score"`
	Hits        int       `json:"hits"`
	MaxHits     int       `json:"max_hits"`
	Accuracy    float64   `json:"accuracy"` // Fraction in [0, 1]
	Rank        game.Rank `json:"rank"`
	ElapsedSecs int       `json:"elapsed_secs"`
	CreatedAt   time.Time `json:"created_at"`
}

// AccuracyPercent returns accuracy as a percentage.
func (r Result) AccuracyPercent() float64 {
	return r.Accuracy * 100
}

// Best is the top result of one difficulty on a map.
type Best struct {
	Difficulty string
	Score      float64
	Accuracy   float64
	Rank       game.Rank
	Plays      int
}

// MapStats contains aggregated statistics for a map.
type MapStats struct {
	MapID       string
	Plays       int
	BestScore   float64
	AvgAccuracy float64
	LastPlayed  time.Time
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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			round_id TEXT NOT NULL,
			map_id TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			score REAL NOT NULL,
			hits INTEGER NOT NULL,
			max_hits INTEGER NOT NULL,
			accuracy REAL NOT NULL,
			rank TEXT NOT NULL,
			elapsed_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_map_id ON results(map_id);
		CREATE INDEX IF NOT EXISTS idx_results_best ON results(map_id, difficulty, score DESC);
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

// SaveResult records a won round. Returns the ID of the inserted record.
func (s *Store) SaveResult(ctx context.Context, sum game.Summary) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO results
		 (round_id, map_id, difficulty, score, hits, max_hits, accuracy, rank, elapsed_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RoundID,
		sum.MapID,
		sum.Difficulty,
		sum.Score,
		sum.Hits,
		sum.MaxHits,
		sum.Accuracy,
		string(sum.Rank),
		sum.ElapsedSeconds(),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecordResult implements game.ResultRecorder.
func (s *Store) RecordResult(ctx context.Context, sum game.Summary) error {
	_, err := s.SaveResult(ctx, sum)
	return err
}

var _ game.ResultRecorder = (*Store)(nil)

// History retrieves the most recent results for a map, newest first.
// A limit of zero or less returns at most 20 results.
func (s *Store) History(mapID string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, round_id, map_id, difficulty, score, hits, max_hits, accuracy, rank, elapsed_secs, created_at
		 FROM results
		 WHERE map_id = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		mapID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query history: %w", err)
	}
	defer rows.Close()

	results := []Result{}
	for rows.Next() {
		var r Result
		var rank string
		var createdAt any
		if err := rows.Scan(&r.ID, &r.RoundID, &r.MapID, &r.Difficulty, &r.Score,
			&r.Hits, &r.MaxHits, &r.Accuracy, &rank, &r.ElapsedSecs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Rank = game.Rank(rank)
		r.CreatedAt = parseTime(createdAt)
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// BestByDifficulty returns the top-scoring result of each difficulty played
// on a map, ordered by difficulty name.
func (s *Store) BestByDifficulty(mapID string) ([]Best, error) {
	rows, err := s.db.Query(
		`SELECT r.difficulty, r.score, r.accuracy, r.rank, c.plays
		 FROM results r
		 JOIN (
			SELECT difficulty, MAX(score) AS best, COUNT(*) AS plays
			FROM results WHERE map_id = ? GROUP BY difficulty
		 ) c ON c.difficulty = r.difficulty AND c.best = r.score
		 WHERE r.map_id = ?
		 GROUP BY r.difficulty
		 ORDER BY r.difficulty`,
		mapID, mapID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best results: %w", err)
	}
	defer rows.Close()

	var bests []Best
	for rows.Next() {
		var b Best
		var rank string
		if err := rows.Scan(&b.Difficulty, &b.Score, &b.Accuracy, &rank, &b.Plays); err != nil {
			return nil, fmt.Errorf("storage: cannot scan best row: %w", err)
		}
		b.Rank = game.Rank(rank)
		bests = append(bests, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return bests, nil
}

// Stats retrieves aggregated statistics for a map.
func (s *Store) Stats(mapID string) (*MapStats, error) {
	stats := &MapStats{MapID: mapID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(accuracy), 0)
		 FROM results WHERE map_id = ?`,
		mapID,
	).Scan(&stats.Plays, &stats.BestScore, &stats.AvgAccuracy)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM results WHERE map_id = ? ORDER BY id DESC LIMIT 1`,
		mapID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearHistory deletes all results for a map.
func (s *Store) ClearHistory(mapID string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE map_id = ?", mapID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear history: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string forms of DATETIME columns.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
