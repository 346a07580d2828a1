package llmcache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	_ "embed"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// ErrSchemaMismatch indicates the cache database was written by a different
// schema version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Entry is a cached response.
type Entry struct {
	Key       string
	Provider  string
	Model     string
	Response  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Stats summarizes cache contents.
type Stats struct {
	Entries int
	Expired int
}

// Store manages the response cache database.
type Store struct {
	db   *sql.DB
	path string
	now  func() time.Time
}

// StoreOption customizes a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for expiry.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Settings are the request parameters that shape a provider's response.
// Responses are only reused when every field matches.
type Settings struct {
	Provider    string
	Model       string
	Endpoint    string
	Temperature float64
	MaxTokens   int
}

// Key derives the cache key for a prompt sent with settings.
func Key(settings Settings, prompt string) string {
	h := sha256.New()
	for _, part := range []string{
		strings.TrimSpace(settings.Provider),
		strings.TrimSpace(settings.Model),
		strings.TrimRight(strings.TrimSpace(settings.Endpoint), "/"),
		strconv.FormatFloat(settings.Temperature, 'g', -1, 64),
		strconv.Itoa(settings.MaxTokens),
	} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	h.Write([]byte(prompt))
	return hex.EncodeToString(h.Sum(nil))
}

// Open initializes or connects to the cache database at path.
func Open(path string, opts ...StoreOption) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("llmcache: database path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
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

	store := &Store{db: db, path: path, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(store)
		}
	}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
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
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset the cache)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
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
	return tx.Commit()
}

// Get returns the unexpired entry for key.
func (s *Store) Get(ctx context.Context, key string) (Entry, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT cache_key, provider, model, response, created_at, expires_at
           FROM responses WHERE cache_key = ? AND expires_at > ?`,
		key, s.now().UnixNano(),
	)
	var (
		entry              Entry
		created, expiresAt int64
	)
	if err := row.Scan(&entry.Key, &entry.Provider, &entry.Model, &entry.Response, &created, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, false, nil
		}
		return Entry{}, false, fmt.Errorf("query cache entry: %w", err)
	}
	entry.CreatedAt = time.Unix(0, created).UTC()
	entry.ExpiresAt = time.Unix(0, expiresAt).UTC()
	return entry, true, nil
}

// Put stores response under key for ttl. A non-positive ttl is a no-op.
func (s *Store) Put(ctx context.Context, key, provider, model, response string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := s.now()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO responses (cache_key, provider, model, response, created_at, expires_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(cache_key) DO UPDATE SET
             response = excluded.response,
             created_at = excluded.created_at,
             expires_at = excluded.expires_at`,
		key, provider, model, response, now.UnixNano(), now.Add(ttl).UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}

// Prune deletes expired entries and returns how many were removed.
func (s *Store) Prune(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM responses WHERE expires_at <= ?", s.now().UnixNano())
	if err != nil {
		return 0, fmt.Errorf("prune cache: %w", err)
	}
	return res.RowsAffected()
}

// Clear deletes every entry and returns how many were removed.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM responses")
	if err != nil {
		return 0, fmt.Errorf("clear cache: %w", err)
	}
	return res.RowsAffected()
}

// Stats reports the number of total and expired entries.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1), COALESCE(SUM(CASE WHEN expires_at <= ? THEN 1 ELSE 0 END), 0) FROM responses",
		s.now().UnixNano(),
	).Scan(&stats.Entries, &stats.Expired)
	if err != nil {
		return Stats{}, fmt.Errorf("cache stats: %w", err)
	}
	return stats, nil
}
