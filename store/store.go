// Package store runs SQL against the DuckDB drug database with the graph,
// full-text and vector search extensions loaded and the embeddings() scalar
// function registered.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"

	_ "github.com/duckdb/duckdb-go/v2"
)

// Store owns a DuckDB handle. Extension install and scalar function
// registration happen once per process on a pinned connection held for the
// store's lifetime; the registration lives in the shared catalog, so a
// second registration would collide. Per-call connections are acquired
// fresh and fully torn down on release.
type Store struct {
	db  *sql.DB
	cfg Config

	mu   sync.Mutex
	init *sql.Conn
}

// Open opens the DuckDB database described by cfg.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	db, err := sql.Open("duckdb", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("store: open %q: %w", cfg.Path, err)
	}
	// Idle connections are not retained: every call acquires a fresh
	// connection and fully tears it down on release.
	db.SetMaxIdleConns(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: open %q: %w", cfg.Path, err)
	}
	return &Store{db: db, cfg: cfg}, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close releases the pinned initialization connection and the database
// handle.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.init != nil {
		_ = s.init.Close()
		s.init = nil
	}
	s.mu.Unlock()
	return s.db.Close()
}

// conn acquires a connection with extensions loaded. The caller must close
// it.
func (s *Store) conn(ctx context.Context) (*sql.Conn, error) {
	if err := s.ensureInitialized(ctx); err != nil {
		return nil, err
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: acquire connection: %w", err)
	}
	if err := loadExtensions(ctx, conn, s.cfg.Extensions); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return conn, nil
}

// ensureInitialized installs extensions and registers the embeddings
// function on a dedicated connection kept open for the store's lifetime. A
// failed attempt is retried on the next call; only success latches.
func (s *Store) ensureInitialized(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.init != nil {
		return nil
	}
	if len(s.cfg.Extensions) == 0 && s.cfg.Embedder == nil {
		return nil
	}
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("store: acquire connection: %w", err)
	}
	if err := installExtensions(ctx, conn, s.cfg.Extensions); err != nil {
		_ = conn.Close()
		return err
	}
	if err := loadExtensions(ctx, conn, s.cfg.Extensions); err != nil {
		_ = conn.Close()
		return err
	}
	if s.cfg.Embedder != nil {
		if err := registerEmbeddings(ctx, conn, s.cfg.funcName(), s.cfg.Embedder); err != nil {
			_ = conn.Close()
			return err
		}
	}
	s.init = conn
	return nil
}

func installExtensions(ctx context.Context, conn *sql.Conn, extensions []Extension) error {
	for _, ext := range extensions {
		stmt := fmt.Sprintf("INSTALL '%s'", ext.Name)
		if repo := strings.TrimSpace(ext.Repository); repo != "" {
			stmt = fmt.Sprintf("INSTALL '%s' FROM %s", ext.Name, repo)
		}
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: install extension %s: %w", ext.Name, err)
		}
	}
	return nil
}

func loadExtensions(ctx context.Context, conn *sql.Conn, extensions []Extension) error {
	for _, ext := range extensions {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("LOAD '%s'", ext.Name)); err != nil {
			return fmt.Errorf("store: load extension %s: %w", ext.Name, err)
		}
	}
	return nil
}
