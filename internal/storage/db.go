// Package storage provides the database layer for Crewboard.
package storage

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	badger "github.com/dgraph-io/badger/v4"

	"github.com/manav03panchal/crewboard/internal/logging"
)

const (
	// AppName is the application name used for data directories.
	AppName = "crewboard"
)

// DB wraps a Badger database connection.
type DB struct {
	db   *badger.DB
	lock *FileLock
}

// Options configures the database connection.
type Options struct {
	// Path is the database directory path. Empty string uses in-memory mode.
	Path string
	// InMemory forces in-memory mode regardless of Path.
	InMemory bool
}

// DefaultPath returns the default database path following XDG spec.
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, AppName, "db")
}

// Open opens or creates a database at the given path. On-disk databases are
// guarded by a lock file so a running scheduler and a CLI command do not
// fight over the directory.
func Open(opts Options) (*DB, error) {
	if opts.InMemory || opts.Path == "" {
		db, err := badger.Open(badger.DefaultOptions("").
			WithInMemory(true).
			WithLoggingLevel(badger.ERROR))
		if err != nil {
			return nil, err
		}
		return &DB{db: db}, nil
	}

	if err := os.MkdirAll(opts.Path, 0o700); err != nil {
		return nil, err
	}

	lock := NewFileLock(opts.Path)
	if err := lock.Acquire(); err != nil {
		return nil, NewLockError(err)
	}

	db, err := badger.Open(badger.DefaultOptions(opts.Path).WithLoggingLevel(badger.ERROR))
	if err != nil {
		_ = lock.Release()
		return nil, err
	}

	logging.DebugLog("database opened", "path", opts.Path)
	return &DB{db: db, lock: lock}, nil
}

// Close closes the database connection and releases the lock.
func (d *DB) Close() error {
	err := d.db.Close()
	if d.lock != nil {
		if lerr := d.lock.Release(); err == nil {
			err = lerr
		}
	}
	return err
}

// Badger returns the underlying Badger database for advanced operations.
func (d *DB) Badger() *badger.DB {
	return d.db
}
