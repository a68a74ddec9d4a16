// SPDX-License-Identifier: MIT

package store

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/leotrs/smol/matrix"
	"github.com/leotrs/smol/pipeline"
)

//go:embed schema.sql
var schemaSQL string

// Schema versions:
// 0 - initial schema
// 1 - index on cospectral_pairs(n, matrix_type)
const currentSchemaVersion = 1

var (
	// ErrNotFound is returned by GetRecord for an unknown graph.
	ErrNotFound = errors.New("store: not found")

	// ErrInvalidKind is returned for a matrix kind outside the declared set.
	ErrInvalidKind = errors.New("store: invalid matrix kind")
)

// Store persists records, cospectral pairs, mechanisms and runs in SQLite.
// It implements pipeline.Sink and pipeline.Catalog.
type Store struct {
	db  *sql.DB
	log zerolog.Logger
}

var (
	_ pipeline.Sink    = (*Store)(nil)
	_ pipeline.Catalog = (*Store)(nil)
)

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for schema events.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open creates or opens the database at path and brings its schema up to
// date. ":memory:" gives a private in-memory database.
//
// The connection runs in WAL mode with NORMAL synchronous writes, a 5 s busy
// timeout and a single open connection (SQLite has one writer).
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(s)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.applySchema(db); err != nil {
		db.Close()
		return nil, err
	}
	s.db = db
	s.log.Debug().Str("path", path).Int("schema_version", currentSchemaVersion).Msg("store opened")

	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("store: %q: %w", p, err)
		}
	}

	return nil
}

func (s *Store) applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("store: schema: %w", err)
	}

	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("store: user_version: %w", err)
	}
	if version < 1 {
		if _, err := db.Exec(`
			CREATE INDEX IF NOT EXISTS idx_pairs_n_kind
			ON cospectral_pairs(n, matrix_type)
		`); err != nil {
			return fmt.Errorf("store: migrate to v1: %w", err)
		}
		s.log.Info().Int("from", version).Int("to", 1).Msg("schema migrated")
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("store: set user_version: %w", err)
	}

	return nil
}

// fingerprintColumn maps a kind to its column. Only declared kinds reach SQL.
func fingerprintColumn(k matrix.Kind) (string, error) {
	if !k.Valid() {
		return "", fmt.Errorf("%w: %d", ErrInvalidKind, int(k))
	}

	return "fp_" + k.String(), nil
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}

	return err
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
