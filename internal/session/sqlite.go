package session

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases must be deleted rather than migrated.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("session: schema version mismatch")

// SQLiteStore persists conversation history in a SQLite database so sessions
// survive process restarts.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	ttl      time.Duration
	maxTurns int
	now      func() time.Time
}

// SQLiteOption customizes a SQLiteStore.
type SQLiteOption func(*SQLiteStore)

// WithSQLiteClock overrides the store's time source.
func WithSQLiteClock(now func() time.Time) SQLiteOption {
	return func(s *SQLiteStore) {
		if now != nil {
			s.now = now
		}
	}
}

// OpenSQLite initializes or connects to the session database at path and
// verifies its schema.
func OpenSQLite(path string, ttl time.Duration, maxTurns int, opts ...SQLiteOption) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure session db directory: %w", err)
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

	store := &SQLiteStore{
		db:       db,
		path:     path,
		ttl:      ttl,
		maxTurns: maxTurns,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *SQLiteStore) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, key string) ([]Turn, error) {
	key = normalizeKey(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	var turnsJSON, updatedAt string
	err := s.db.QueryRowContext(ctx,
		"SELECT turns_json, updated_at FROM sessions WHERE session_key = ?", key,
	).Scan(&turnsJSON, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return []Turn{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	if s.ttl > 0 {
		updated, parseErr := time.Parse(time.RFC3339Nano, updatedAt)
		if parseErr != nil || s.now().Sub(updated) > s.ttl {
			if evictErr := s.Evict(ctx, key); evictErr != nil {
				return nil, evictErr
			}
			return []Turn{}, nil
		}
	}

	var turns []Turn
	if err := json.Unmarshal([]byte(turnsJSON), &turns); err != nil {
		return nil, fmt.Errorf("decode session turns: %w", err)
	}
	if turns == nil {
		turns = []Turn{}
	}
	return turns, nil
}

func (s *SQLiteStore) Put(ctx context.Context, key string, turns []Turn) error {
	key = normalizeKey(key)
	if key == "" {
		return ErrEmptyKey
	}

	trimmed := Trim(turns, s.maxTurns)
	payload, err := json.Marshal(trimmed)
	if err != nil {
		return fmt.Errorf("encode session turns: %w", err)
	}

	timestamp := s.now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO sessions (session_key, turns_json, updated_at) VALUES (?, ?, ?)
         ON CONFLICT(session_key) DO UPDATE SET turns_json = excluded.turns_json, updated_at = excluded.updated_at`,
		key, string(payload), timestamp,
	)
	if err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Evict(ctx context.Context, key string) error {
	key = normalizeKey(key)
	if key == "" {
		return ErrEmptyKey
	}
	if _, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE session_key = ?", key); err != nil {
		return fmt.Errorf("evict session: %w", err)
	}
	return nil
}

// Sweep removes every session whose last update is older than the TTL.
func (s *SQLiteStore) Sweep(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	cutoff := s.now().UTC().Add(-s.ttl).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("sweep sessions: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sweep rows affected: %w", err)
	}
	return removed, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
