// Package sqlite implements the persistent collection store on an embedded
// sqlite database. One row per collection: namespaced key, JSON array value,
// write version. The store is the single source of truth — there is no
// secondary in-memory cache, so every reader observes the latest committed
// write.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/sqlscan"
	_ "github.com/mattn/go-sqlite3"

	"mochini/internal/core/apperror"
)

// SchemaVersion identifies the on-disk layout. Bump on incompatible change.
const SchemaVersion = 1

// Config holds store settings.
type Config struct {
	// Path is the sqlite database file.
	Path string

	// Namespace prefixes every collection key.
	Namespace string

	// Collections are ensured to exist (empty) on open.
	Collections []string
}

// Store is the durable key-value store of JSON-encoded collections.
type Store struct {
	db        *sql.DB
	namespace string
}

// Open opens (creating if needed) the store file and ensures the schema and
// the configured collections exist.
func Open(cfg Config) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", cfg.Path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, apperror.NewStorage("open", err)
	}

	s := &Store{db: db, namespace: cfg.Namespace}
	if err := s.migrate(context.Background(), cfg.Collections); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Namespace returns the configured key prefix.
func (s *Store) Namespace() string {
	return s.namespace
}

// DB exposes the underlying handle for the transaction manager.
func (s *Store) DB() *sql.DB {
	return s.db
}

func (s *Store) migrate(ctx context.Context, collections []string) error {
	const schema = `
CREATE TABLE IF NOT EXISTS collections (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	version    INTEGER NOT NULL DEFAULT 0,
	updated_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS schema_info (
	version    INTEGER NOT NULL,
	applied_at TIMESTAMP NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return apperror.NewStorage("migrate", err)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_info`).Scan(&count); err != nil {
		return apperror.NewStorage("migrate", err)
	}
	if count == 0 {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO schema_info (version, applied_at) VALUES (?, ?)`,
			SchemaVersion, time.Now().UTC()); err != nil {
			return apperror.NewStorage("migrate", err)
		}
	}

	for _, name := range collections {
		if _, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO collections (key, value, version, updated_at) VALUES (?, '[]', 0, ?)`,
			s.key(name), time.Now().UTC()); err != nil {
			return apperror.NewStorage("migrate", err)
		}
	}
	return nil
}

// SchemaVersion reads the stored layout version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var v int
	err := s.conn(ctx).QueryRowContext(ctx, `SELECT version FROM schema_info LIMIT 1`).Scan(&v)
	if err != nil {
		return 0, apperror.NewStorage("read schema version", err)
	}
	return v, nil
}

func (s *Store) key(name string) string {
	return s.namespace + name
}

// builder returns a squirrel builder with the default '?' placeholders
// sqlite expects.
func (s *Store) builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// conn returns the active transaction from context, or the raw handle.
func (s *Store) conn(ctx context.Context) querier {
	if tx := txFromContext(ctx); tx != nil {
		return tx
	}
	return s.db
}

type collectionRow struct {
	Value   string `db:"value"`
	Version int64  `db:"version"`
}

// Get reads a collection's raw JSON array and its write version.
// A collection that was never written reads as an empty array at version 0.
func (s *Store) Get(ctx context.Context, name string) ([]byte, int64, error) {
	query, args, err := s.builder().
		Select("value", "version").
		From("collections").
		Where(sq.Eq{"key": s.key(name)}).
		ToSql()
	if err != nil {
		return nil, 0, apperror.NewStorage("build query", err)
	}

	var row collectionRow
	if err := sqlscan.Get(ctx, s.conn(ctx), &row, query, args...); err != nil {
		if sqlscan.NotFound(err) {
			return []byte("[]"), 0, nil
		}
		return nil, 0, apperror.NewStorage("read "+name, err)
	}
	return []byte(row.Value), row.Version, nil
}

// Put replaces a collection's value unconditionally, bumping its version.
func (s *Store) Put(ctx context.Context, name string, value []byte) error {
	query, args, err := s.builder().
		Insert("collections").
		Columns("key", "value", "version", "updated_at").
		Values(s.key(name), string(value), 1, time.Now().UTC()).
		Suffix(`ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			version = collections.version + 1,
			updated_at = excluded.updated_at`).
		ToSql()
	if err != nil {
		return apperror.NewStorage("build upsert", err)
	}

	if _, err := s.conn(ctx).ExecContext(ctx, query, args...); err != nil {
		return apperror.NewStorage("write "+name, err)
	}
	return nil
}

// PutVersioned replaces a collection's value only if its version still equals
// expected, detecting writes that raced in between.
func (s *Store) PutVersioned(ctx context.Context, name string, value []byte, expected int64) error {
	query, args, err := s.builder().
		Update("collections").
		Set("value", string(value)).
		Set("version", expected+1).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"key": s.key(name), "version": expected}).
		ToSql()
	if err != nil {
		return apperror.NewStorage("build update", err)
	}

	res, err := s.conn(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return apperror.NewStorage("write "+name, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return apperror.NewStorage("write "+name, err)
	}
	if affected == 1 {
		return nil
	}

	// Row may not exist yet; a fresh collection is writable at expected 0.
	if expected == 0 {
		insert, insArgs, err := s.builder().
			Insert("collections").
			Columns("key", "value", "version", "updated_at").
			Values(s.key(name), string(value), 1, time.Now().UTC()).
			ToSql()
		if err != nil {
			return apperror.NewStorage("build insert", err)
		}
		if _, err := s.conn(ctx).ExecContext(ctx, insert, insArgs...); err == nil {
			return nil
		}
	}
	return apperror.NewConcurrentModification(name)
}

// Collections lists the names (namespace stripped) of all stored collections.
func (s *Store) Collections(ctx context.Context) ([]string, error) {
	query, args, err := s.builder().
		Select("key").
		From("collections").
		Where(sq.Like{"key": s.namespace + "%"}).
		OrderBy("key").
		ToSql()
	if err != nil {
		return nil, apperror.NewStorage("build query", err)
	}

	var keys []string
	if err := sqlscan.Select(ctx, s.conn(ctx), &keys, query, args...); err != nil {
		return nil, apperror.NewStorage("list collections", err)
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, k[len(s.namespace):])
	}
	return names, nil
}
