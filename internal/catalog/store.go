package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"sigview/internal/config"
)

// lockTimeout bounds how long a writer waits for the lock when the caller's
// context carries no deadline of its own.
const lockTimeout = 10 * time.Second

// Store manages catalog persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
	now  func() time.Time
}

// Open initializes or connects to the catalog database and applies migrations.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(cfg.CatalogPath(), cfg.CatalogLockPath())
}

// OpenPath opens the catalog database at dbPath, guarding writes with a lock
// file at lockPath.
func OpenPath(dbPath, lockPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// foreign_keys is per connection; pin the pool to one so it always applies.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(lockPath),
		now:  time.Now,
	}
	if err := store.migrate(context.Background()); err != nil {
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

// Path returns the database file path.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// withWriteLock runs fn while holding the catalog writer lock.
func (s *Store) withWriteLock(ctx context.Context, fn func() error) error {
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, lockTimeout)
		defer cancel()
	}

	locked, err := s.lock.TryLockContext(ctx, 50*time.Millisecond)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrLocked, filepath.Base(s.lock.Path()))
		}
		return fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return ErrLocked
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

func (s *Store) timestamp() string {
	return s.now().UTC().Format(time.RFC3339Nano)
}
