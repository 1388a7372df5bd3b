// Package storage provides SQLite-based persistence for run history and
// per-player progress. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/progress"
)

// LocalPlayer is the player name used for terminal (non-SSH) play.
const LocalPlayer = "local"

// Progress row kinds
const (
	kindHighScore = "high_score"
	kindChallenge = "challenge"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunEntry is one finished run.
type RunEntry struct {
	ID        int64
	Player    string
	Level     int
	LevelName string
	Score     int
	Jumps     int
	ModesUsed int
	LivesLeft int
	Ticks     int
	Reason    string
	CreatedAt time.Time
}

// NewRunEntry builds a history row from a finished run.
func NewRunEntry(player string, s core.RunSummary) RunEntry {
	return RunEntry{
		Player:    player,
		Level:     s.Level,
		LevelName: s.LevelName,
		Score:     s.Score,
		Jumps:     s.Jumps,
		ModesUsed: s.ModesUsed,
		LivesLeft: s.LivesLeft,
		Ticks:     s.Ticks,
		Reason:    s.Reason,
	}
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

	// One writer at a time; SSH sessions share this handle
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
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			level INTEGER NOT NULL,
			level_name TEXT NOT NULL,
			score INTEGER NOT NULL,
			jumps INTEGER NOT NULL DEFAULT 0,
			modes_used INTEGER NOT NULL DEFAULT 1,
			lives_left INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_level ON runs(level);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(level, score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS progress (
			player TEXT NOT NULL,
			kind TEXT NOT NULL,
			idx INTEGER NOT NULL,
			value INTEGER NOT NULL,
			PRIMARY KEY (player, kind, idx)
		);
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

// SaveRun records a finished run. Returns the ID of the inserted record.
func (s *Store) SaveRun(e RunEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (player, level, level_name, score, jumps, modes_used, lives_left, ticks, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Player, e.Level, e.LevelName, e.Score, e.Jumps, e.ModesUsed, e.LivesLeft, e.Ticks, e.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopRuns retrieves the best N runs on a level, highest score first.
// Ties go to the earlier run.
func (s *Store) TopRuns(level, limit int) ([]RunEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, level, level_name, score, jumps, modes_used, lives_left, ticks, end_reason, created_at
		 FROM runs
		 WHERE level = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		level, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var entries []RunEntry
	for rows.Next() {
		var e RunEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Level, &e.LevelName, &e.Score, &e.Jumps,
			&e.ModesUsed, &e.LivesLeft, &e.Ticks, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// BestScore returns the highest recorded score on a level.
// Returns 0 if no runs exist.
func (s *Store) BestScore(level int) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE level = ?",
		level,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes the run history of a level.
func (s *Store) ClearRuns(level int) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE level = ?", level)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// LevelStats contains aggregated statistics for a level.
type LevelStats struct {
	Level      int
	Runs       int
	BestScore  int
	AvgScore   float64
	Deaths     int
	TotalJumps int64
	LastPlayed time.Time
}

// LevelStats retrieves aggregated statistics for a level.
func (s *Store) LevelStats(level int) (*LevelStats, error) {
	stats := &LevelStats{Level: level}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(CASE WHEN end_reason = 'died' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(jumps), 0)
		 FROM runs WHERE level = ?`,
		level,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.Deaths, &stats.TotalJumps)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE level = ? ORDER BY id DESC LIMIT 1`,
		level,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// LoadProgress reads a player's progress. Unknown players get empty progress;
// callers normalize to the catalog sizes.
func (s *Store) LoadProgress(player string) (progress.Progress, error) {
	rows, err := s.db.Query(
		`SELECT kind, idx, value FROM progress WHERE player = ? ORDER BY kind, idx`,
		player,
	)
	if err != nil {
		return progress.Progress{}, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var p progress.Progress
	for rows.Next() {
		var kind string
		var idx, value int
		if err := rows.Scan(&kind, &idx, &value); err != nil {
			return progress.Progress{}, fmt.Errorf("storage: cannot scan progress row: %w", err)
		}
		if idx < 0 {
			continue
		}
		switch kind {
		case kindHighScore:
			for len(p.HighScores) <= idx {
				p.HighScores = append(p.HighScores, 0)
			}
			p.HighScores[idx] = value
		case kindChallenge:
			for len(p.Challenges) <= idx {
				p.Challenges = append(p.Challenges, false)
			}
			p.Challenges[idx] = value != 0
		}
	}

	if err := rows.Err(); err != nil {
		return progress.Progress{}, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return p, nil
}

// SaveProgress merges p into a player's stored progress in a single
// transaction. Stored values only grow: a lower high score or an unset
// challenge flag from a stale session never overwrites what is already saved.
func (s *Store) SaveProgress(player string, p progress.Progress) (err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	stmt, err := tx.Prepare(`
		INSERT INTO progress (player, kind, idx, value) VALUES (?, ?, ?, ?)
		ON CONFLICT(player, kind, idx) DO UPDATE SET value = MAX(value, excluded.value)
	`)
	if err != nil {
		return fmt.Errorf("storage: cannot prepare progress upsert: %w", err)
	}
	defer stmt.Close()

	for i, score := range p.HighScores {
		if _, err = stmt.Exec(player, kindHighScore, i, score); err != nil {
			return fmt.Errorf("storage: cannot save high score: %w", err)
		}
	}
	for i, done := range p.Challenges {
		v := 0
		if done {
			v = 1
		}
		if _, err = stmt.Exec(player, kindChallenge, i, v); err != nil {
			return fmt.Errorf("storage: cannot save challenge: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit progress: %w", err)
	}
	return nil
}

// playerProgress adapts the store to progress.Store for one player.
type playerProgress struct {
	store  *Store
	player string
}

// ProgressFor returns a progress store backed by this database for player.
func (s *Store) ProgressFor(player string) progress.Store {
	return &playerProgress{store: s, player: player}
}

func (p *playerProgress) Load() (progress.Progress, error) {
	return p.store.LoadProgress(p.player)
}

func (p *playerProgress) Save(pr progress.Progress) error {
	return p.store.SaveProgress(p.player, pr)
}

// parseTime handles both time.Time and string datetimes from the driver.
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
