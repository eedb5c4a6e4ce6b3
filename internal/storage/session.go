package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"homecal/internal/core"

	_ "modernc.org/sqlite"
)

// Foreign keys are off by default in SQLite; every connection enables them.
const dsnPragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

type OpenOptions struct {
	// Fresh discards any existing file at the path and creates a new store.
	Fresh bool
}

// Session is one open backing store file. It is not safe for concurrent use.
type Session struct {
	db      *sql.DB
	queries *Queries
	path    string
	created bool
	closed  bool
}

// Open opens the store at path, creating it when it does not exist or when
// opts.Fresh is set. Created reports which of the two happened.
func Open(ctx context.Context, path string, opts OpenOptions) (*Session, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: empty database path", core.ErrIO)
	}

	exists, err := fileExists(path)
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %w", core.ErrIO, path, err)
	}

	create := opts.Fresh || !exists
	if create && exists {
		if err := removeDatabaseFiles(path); err != nil {
			return nil, fmt.Errorf("%w: remove existing database: %w", core.ErrIO, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("%w: create db directory: %w", core.ErrIO, err)
	}

	db, err := sql.Open("sqlite", path+dsnPragmas)
	if err != nil {
		return nil, fmt.Errorf("%w: open sqlite database: %w", core.ErrIO, err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ping database: %w", core.ErrIO, err)
	}

	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", core.ErrIO, err)
	}

	slog.InfoContext(ctx, "Backing store opened", "path", path, "created", create)

	return &Session{
		db:      db,
		queries: New(db),
		path:    path,
		created: create,
	}, nil
}

// Close releases the database handle. It returns once every connection is
// closed, so the file can be reopened or removed right after. Safe to call twice.
func (s *Session) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database %s: %w", s.path, err)
	}
	slog.Info("Backing store closed", "path", s.path)
	return nil
}

// Remove closes the session and deletes its database file along with any
// journal files.
func (s *Session) Remove() error {
	if err := s.Close(); err != nil {
		return err
	}
	if err := removeDatabaseFiles(s.path); err != nil {
		return fmt.Errorf("%w: remove database %s: %w", core.ErrIO, s.path, err)
	}
	return nil
}

func (s *Session) Path() string {
	return s.path
}

// Created reports whether Open created a new store rather than opening one.
func (s *Session) Created() bool {
	return s.created
}

func (s *Session) Categories() *CategoryStore {
	return &CategoryStore{db: s.db, queries: s.queries}
}

func (s *Session) Events() *EventStore {
	return &EventStore{queries: s.queries}
}

// CategoryTypes returns the static type lookup rows.
func (s *Session) CategoryTypes(ctx context.Context) ([]CategoryType, error) {
	types, err := s.queries.ListCategoryTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list category types: %w", translateError(err))
	}
	return types, nil
}

func fileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, fmt.Errorf("%s is a directory", path)
	}
	return true, nil
}

func removeDatabaseFiles(path string) error {
	for _, p := range []string{path, path + "-wal", path + "-shm", path + "-journal"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
