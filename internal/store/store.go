// Package store provides SQLite-based persistence for games in progress and
// finished-match history. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vmordasov/metagrid/internal/engine"
)

// AutosaveSlot is the slot name used for the single in-progress game.
const AutosaveSlot = "autosave"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// MatchEntry is one finished game in the history table.
type MatchEntry struct {
	ID        int64
	MatchID   string
	Size      int
	Winner    string // "X", "O", or "" for a draw
	Draw      bool
	Moves     int
	CreatedAt time.Time
}

// migrations is the versioned schema. Each entry upgrades the database by
// one PRAGMA user_version step; new shapes append here, they never edit old
// entries.
var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS saves (
		slot TEXT PRIMARY KEY,
		size INTEGER NOT NULL,
		boards TEXT NOT NULL,
		statuses TEXT NOT NULL,
		current TEXT NOT NULL,
		forced INTEGER NOT NULL DEFAULT -1,
		winner TEXT NOT NULL DEFAULT '',
		draw INTEGER NOT NULL DEFAULT 0,
		move_count INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS matches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		match_id TEXT NOT NULL UNIQUE,
		size INTEGER NOT NULL,
		winner TEXT NOT NULL DEFAULT '',
		draw INTEGER NOT NULL DEFAULT 0,
		moves INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);
	`,
}

// Open creates or opens a SQLite database at the given path. It creates the
// parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("store: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("store: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: cannot connect to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migration failed: %w", err)
	}

	return s, nil
}

// migrate applies any schema versions newer than the database's
// user_version.
func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("cannot read schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		if _, err := s.db.Exec(migrations[v]); err != nil {
			return fmt.Errorf("migration %d: %w", v+1, err)
		}
		if _, err := s.db.Exec(fmt.Sprintf("PRAGMA user_version = %d", v+1)); err != nil {
			return fmt.Errorf("cannot bump schema version to %d: %w", v+1, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveGame writes the game state into the given slot, replacing any previous
// save.
func (s *Store) SaveGame(slot string, state *engine.GameState) error {
	r := FromState(state)
	_, err := s.db.Exec(
		`INSERT INTO saves (slot, size, boards, statuses, current, forced, winner, draw, move_count, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(slot) DO UPDATE SET
			size = excluded.size,
			boards = excluded.boards,
			statuses = excluded.statuses,
			current = excluded.current,
			forced = excluded.forced,
			winner = excluded.winner,
			draw = excluded.draw,
			move_count = excluded.move_count,
			updated_at = CURRENT_TIMESTAMP`,
		slot, r.Size, r.Boards, r.Statuses, r.Current, r.Forced, r.Winner, boolInt(r.Draw), r.MoveCount,
	)
	if err != nil {
		return fmt.Errorf("store: cannot save game: %w", err)
	}
	return nil
}

// LoadGame reads the game saved in the given slot. Returns (nil, nil) when
// the slot is empty. Rows with corrupt or legacy content are coerced into a
// valid state rather than rejected; the caller always receives a playable
// game or nothing.
func (s *Store) LoadGame(slot string) (*engine.GameState, error) {
	var (
		size      sql.NullInt64
		boards    sql.NullString
		statuses  sql.NullString
		current   sql.NullString
		forced    sql.NullInt64
		winner    sql.NullString
		draw      sql.NullInt64
		moveCount sql.NullInt64
	)

	err := s.db.QueryRow(
		`SELECT size, boards, statuses, current, forced, winner, draw, move_count
		 FROM saves WHERE slot = ?`,
		slot,
	).Scan(&size, &boards, &statuses, &current, &forced, &winner, &draw, &moveCount)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: cannot load game: %w", err)
	}

	r := Record{
		Size:      int(size.Int64),
		Boards:    boards.String,
		Statuses:  statuses.String,
		Current:   current.String,
		Forced:    int(forced.Int64),
		Winner:    winner.String,
		Draw:      draw.Int64 != 0,
		MoveCount: int(moveCount.Int64),
	}
	if !forced.Valid {
		r.Forced = engine.NoBoard
	}
	return r.Coerce(), nil
}

// DeleteGame removes the save in the given slot, if any.
func (s *Store) DeleteGame(slot string) error {
	if _, err := s.db.Exec("DELETE FROM saves WHERE slot = ?", slot); err != nil {
		return fmt.Errorf("store: cannot delete save: %w", err)
	}
	return nil
}

// RecordMatch appends a finished game to the history table and returns the
// generated match ID.
func (s *Store) RecordMatch(state *engine.GameState) (string, error) {
	matchID := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO matches (match_id, size, winner, draw, moves) VALUES (?, ?, ?, ?, ?)`,
		matchID, state.Size, string(state.Winner), boolInt(state.Draw), state.MoveCount,
	)
	if err != nil {
		return "", fmt.Errorf("store: cannot record match: %w", err)
	}
	return matchID, nil
}

// RecentMatches retrieves the most recent finished games, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, match_id, size, winner, draw, moves, created_at
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("store: cannot query matches: %w", err)
	}
	defer rows.Close()

	var entries []MatchEntry
	for rows.Next() {
		var (
			e         MatchEntry
			draw      int64
			createdAt any
		)
		if err := rows.Scan(&e.ID, &e.MatchID, &e.Size, &e.Winner, &draw, &e.Moves, &createdAt); err != nil {
			return nil, fmt.Errorf("store: cannot scan row: %w", err)
		}
		e.Draw = draw != 0

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: row iteration error: %w", err)
	}
	return entries, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
