// Package store owns the process-lifetime read-only handle to the credit
// union database. The handle is opened once at startup and shared by every
// request; per-request work runs on a dedicated session checked out from
// it and released when the request finishes.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/kylelegare/cu-MCP/internal/config"
	"github.com/kylelegare/cu-MCP/internal/errors"
)

const pingTimeout = 5 * time.Second

// Store wraps the shared read-only handle.
type Store struct {
	db        *sql.DB
	path      string
	closeOnce sync.Once
	closeErr  error
}

// Open establishes the read-only handle and verifies the file is
// reachable. The mode=ro URI flag makes the engine refuse writes at open
// time and the query_only pragma refuses them per statement as well.
func Open(cfg config.StoreConfig) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=query_only(1)", cfg.Path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store %s: %w", cfg.Path, err)
	}

	db.SetMaxOpenConns(cfg.MaxSessions)
	db.SetMaxIdleConns(cfg.MaxSessions)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("open store %s: %w", cfg.Path, err)
	}

	return &Store{db: db, path: cfg.Path}, nil
}

// Session checks out a dedicated session for one request. The caller must
// close it on every exit path. Acquisition failures are execution errors,
// never timeouts.
func (s *Store) Session(ctx context.Context) (*sql.Conn, error) {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.Execution, "failed to acquire a database session", err)
	}
	return conn, nil
}

// DB exposes the shared handle for health checks and stats.
func (s *Store) DB() *sql.DB { return s.db }

// Path returns the database file path the handle was opened on.
func (s *Store) Path() string { return s.path }

// Close releases the shared handle. Safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}
