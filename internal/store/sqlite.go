package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// SQLite is a file-backed Store for hosts without a Redis server.
// Uses WAL mode for concurrent read access. Increment and append are
// single-statement atomic, which is all the Store contract asks for.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite creates or opens a SQLite database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path string) (*SQLite, error) {
	// Open database (creates file if doesn't exist)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Verify connection works
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM kv WHERE key = ?
	`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", key, err)
	}
	return value, nil
}

// Set stores value under key, overwriting any previous value.
func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

// Incr atomically increments the counter at key and returns the new value.
// The counter is stored as base-10 text in the kv table, so it reads back
// through Get the same way a Redis counter reads back through GET.
func (s *SQLite) Incr(ctx context.Context, key string) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO kv (key, value) VALUES (?, '1')
		ON CONFLICT(key) DO UPDATE
			SET value = CAST(CAST(value AS INTEGER) + 1 AS TEXT)
		RETURNING CAST(value AS INTEGER)
	`, key).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("incr %q: %w", key, err)
	}
	return n, nil
}

// RPush appends value to the list at key. Position assignment and insert
// happen in one statement, so concurrent appends cannot collide.
func (s *SQLite) RPush(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO list_entries (list_key, pos, value)
		SELECT ?1, COALESCE(MAX(pos), -1) + 1, ?2
		FROM list_entries WHERE list_key = ?1
	`, key, value)
	if err != nil {
		return fmt.Errorf("rpush %q: %w", key, err)
	}
	return nil
}

// LRange returns list entries from start through stop inclusive, with
// Redis index semantics.
func (s *SQLite) LRange(ctx context.Context, key string, start, stop int64) ([][]byte, error) {
	var length int64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM list_entries WHERE list_key = ?
	`, key).Scan(&length)
	if err != nil {
		return nil, fmt.Errorf("lrange %q: %w", key, err)
	}

	lo, hi, ok := clampRange(start, stop, length)
	if !ok {
		return [][]byte{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT value FROM list_entries
		WHERE list_key = ?
		ORDER BY pos ASC
		LIMIT ? OFFSET ?
	`, key, hi-lo, lo)
	if err != nil {
		return nil, fmt.Errorf("lrange %q: %w", key, err)
	}
	defer rows.Close()

	var entries [][]byte
	for rows.Next() {
		var v []byte
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan list entry: %w", err)
		}
		entries = append(entries, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate list entries: %w", err)
	}

	if entries == nil {
		entries = [][]byte{}
	}

	return entries, nil
}

// FlushAll erases every key, counter, and list in the database.
func (s *SQLite) FlushAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv`); err != nil {
		return fmt.Errorf("flushall: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM list_entries`); err != nil {
		return fmt.Errorf("flushall: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
