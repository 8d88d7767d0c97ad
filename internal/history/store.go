// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// store.go - the SQLite-backed command log.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed = errors.New("history store closed")
)

// =============================================================================
// STORE
// =============================================================================

// Entry is one recorded command.
type Entry struct {
	ID        int64
	SessionID string
	Line      string
	Command   string
	OK        bool
	CreatedAt time.Time
}

// Store is a SQLite-backed command log. Not safe for concurrent use;
// the shell is single-threaded.
type Store struct {
	db    *sql.DB
	limit int
	last  string // last recorded line, for consecutive-duplicate suppression
}

const schema = `
CREATE TABLE IF NOT EXISTS entries (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	line       TEXT NOT NULL,
	command    TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_entries_created ON entries(created_at);
`

// Open opens (creating if needed) the history database at path. The
// limit caps the number of retained rows; older rows are pruned on
// append.
func Open(path string, limit int) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	if limit <= 0 {
		limit = 1000
	}
	return &Store{db: db, limit: limit}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Append records a command. Consecutive duplicates of the same line
// are recorded once; failures are recorded like successes.
func (s *Store) Append(sessionID, line, command string, ok bool) error {
	if s.db == nil {
		return ErrClosed
	}
	if line == s.last {
		return nil
	}

	_, err := s.db.Exec(
		`INSERT INTO entries (session_id, line, command, ok, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, line, command, boolToInt(ok), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to append history: %w", err)
	}
	s.last = line

	// Prune beyond the retention limit.
	_, err = s.db.Exec(
		`DELETE FROM entries WHERE id NOT IN (SELECT id FROM entries ORDER BY id DESC LIMIT ?)`,
		s.limit,
	)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

// Recent returns up to n entries, oldest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, line, command, ok, created_at
		 FROM (SELECT * FROM entries ORDER BY id DESC LIMIT ?)
		 ORDER BY id ASC`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Search returns entries whose line contains term, oldest first.
func (s *Store) Search(term string) ([]Entry, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.Query(
		`SELECT id, session_id, line, command, ok, created_at
		 FROM entries WHERE line LIKE ? ORDER BY id ASC`,
		"%"+term+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search history: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

// Count returns the number of retained entries.
func (s *Store) Count() (int, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count history: %w", err)
	}
	return n, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var out []Entry
	for rows.Next() {
		var e Entry
		var ok int
		var created int64
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Line, &e.Command, &ok, &created); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.OK = ok != 0
		e.CreatedAt = time.Unix(created, 0)
		out = append(out, e)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
