package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry は開いたファイルの記録
type Entry struct {
	Path       string
	TopLine    int
	CursorLine int
	OpenedAt   time.Time
}

// Store は開いたファイルの履歴を SQLite に保存する
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS files (
    path TEXT PRIMARY KEY,
    top_line INTEGER NOT NULL DEFAULT 1,
    cursor_line INTEGER NOT NULL DEFAULT 1,
    opened_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_files_opened_at ON files(opened_at);
`

// Open は履歴データベースを開く。なければ作る
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Touch はファイルを開いた記録と表示位置を保存する
func (s *Store) Touch(path string, topLine, cursorLine int) error {
	_, err := s.db.Exec(`
INSERT INTO files (path, top_line, cursor_line, opened_at) VALUES (?, ?, ?, ?)
ON CONFLICT(path) DO UPDATE SET
    top_line = excluded.top_line,
    cursor_line = excluded.cursor_line,
    opened_at = excluded.opened_at
`, path, topLine, cursorLine, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("failed to record %s: %w", path, err)
	}
	return nil
}

// Lookup は前回の表示位置を返す。記録がなければ ok が false になる
func (s *Store) Lookup(path string) (Entry, bool, error) {
	var e Entry
	var openedAt int64
	err := s.db.QueryRow(
		`SELECT path, top_line, cursor_line, opened_at FROM files WHERE path = ?`, path).
		Scan(&e.Path, &e.TopLine, &e.CursorLine, &openedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, false, nil
	}
	if err != nil {
		return Entry{}, false, err
	}
	e.OpenedAt = time.Unix(0, openedAt)
	return e, true, nil
}

// Recent は最近開いたファイルを新しい順に返す
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT path, top_line, cursor_line, opened_at FROM files ORDER BY opened_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var openedAt int64
		if err := rows.Scan(&e.Path, &e.TopLine, &e.CursorLine, &openedAt); err != nil {
			return nil, err
		}
		e.OpenedAt = time.Unix(0, openedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
