// Package history records completed scan runs in a small SQLite database so
// `digitize history` can show what was scanned where.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one completed scan run.
type Entry struct {
	ID         int64
	RunID      string
	Profile    string
	Name       string
	OutputPath string
	Pages      int
	OCR        bool
	Keywords   []string
	CreatedAt  time.Time
}

// Store manages scan history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path and applies
// the schema.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.applySchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) applySchema(ctx context.Context) error {
	const schema = `CREATE TABLE IF NOT EXISTS scans (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        run_id TEXT NOT NULL,
        profile TEXT NOT NULL DEFAULT '',
        name TEXT NOT NULL,
        output_path TEXT NOT NULL,
        pages INTEGER NOT NULL DEFAULT 0,
        ocr INTEGER NOT NULL DEFAULT 0,
        keywords TEXT NOT NULL DEFAULT '[]',
        created_at TEXT NOT NULL
    )`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// Add inserts a completed scan and returns the stored entry with its ID and
// creation time populated.
func (s *Store) Add(ctx context.Context, entry Entry) (Entry, error) {
	now := time.Now().UTC()
	keywords, err := json.Marshal(orEmpty(entry.Keywords))
	if err != nil {
		return Entry{}, fmt.Errorf("encode keywords: %w", err)
	}

	res, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scans (run_id, profile, name, output_path, pages, ocr, keywords, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.RunID,
		entry.Profile,
		entry.Name,
		entry.OutputPath,
		entry.Pages,
		boolToInt(entry.OCR),
		string(keywords),
		now.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("insert scan: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id
	entry.CreatedAt = now
	entry.Keywords = orEmpty(entry.Keywords)
	return entry, nil
}

// List returns the most recent entries, newest first. A limit of zero means
// no limit.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	query := `SELECT id, run_id, profile, name, output_path, pages, ocr, keywords, created_at
        FROM scans ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scans: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry    Entry
			ocr      int
			keywords string
			created  string
		)
		if err := rows.Scan(&entry.ID, &entry.RunID, &entry.Profile, &entry.Name, &entry.OutputPath, &entry.Pages, &ocr, &keywords, &created); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		entry.OCR = ocr != 0
		if err := json.Unmarshal([]byte(keywords), &entry.Keywords); err != nil {
			return nil, fmt.Errorf("decode keywords: %w", err)
		}
		if entry.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func orEmpty(keywords []string) []string {
	if keywords == nil {
		return []string{}
	}
	return keywords
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
