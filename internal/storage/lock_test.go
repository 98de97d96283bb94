package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_AcquireRelease(t *testing.T) {
	t.Run("writes pid and removes file on release", func(t *testing.T) {
		dir := t.TempDir()
		lock := NewFileLock(dir)
		require.NoError(t, lock.Acquire())

		data, err := os.ReadFile(filepath.Join(dir, LockFileName))
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(os.Getpid()), string(data))

		require.NoError(t, lock.Release())
		_, err = os.Stat(filepath.Join(dir, LockFileName))
		assert.True(t, os.IsNotExist(err), "lock file should be removed after release")

		assert.NoError(t, lock.Release(), "release is idempotent")
	})

	t.Run("second lock fails while first is held", func(t *testing.T) {
		dir := t.TempDir()
		first := NewFileLock(dir)
		require.NoError(t, first.Acquire())
		defer first.Release()

		err := NewFileLock(dir).Acquire()
		assert.ErrorIs(t, err, ErrLockAlreadyHeld)
		assert.Contains(t, err.Error(), fmt.Sprintf("PID %d", os.Getpid()))
	})

	t.Run("lock can be taken again after release", func(t *testing.T) {
		dir := t.TempDir()
		first := NewFileLock(dir)
		require.NoError(t, first.Acquire())
		require.NoError(t, first.Release())

		second := NewFileLock(dir)
		require.NoError(t, second.Acquire())
		defer second.Release()
	})
}

func TestFileLock_StaleLockCleanup(t *testing.T) {
	dir := t.TempDir()
	stalePID := 99999999
	require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte(strconv.Itoa(stalePID)), 0o644))

	lock := NewFileLock(dir)
	if err := lock.Acquire(); err != nil {
		if isProcessRunning(stalePID) {
			t.Skip("stale PID is unexpectedly running")
		}
		t.Fatalf("expected to acquire lock after stale cleanup: %v", err)
	}
	defer lock.Release()
}

func TestFileLock_ReadPID(t *testing.T) {
	tests := []struct {
		name     string
		content  *string
		expected int
	}{
		{"valid", strPtr("12345"), 12345},
		{"whitespace", strPtr(" 42\n"), 42},
		{"invalid", strPtr("not-a-number"), 0},
		{"missing", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.content != nil {
				require.NoError(t, os.WriteFile(filepath.Join(dir, LockFileName), []byte(*tt.content), 0o644))
			}
			assert.Equal(t, tt.expected, NewFileLock(dir).readPID())
		})
	}
}

func strPtr(s string) *string { return &s }

func TestLockError(t *testing.T) {
	err := NewLockError(fmt.Errorf("%w: PID 4321", ErrLockAlreadyHeld))
	assert.Equal(t, 4321, err.PID)
	assert.Contains(t, err.Error(), "PID 4321")
	assert.ErrorIs(t, err, ErrLockAlreadyHeld)

	plain := NewLockError(ErrLockAcquireFailed)
	assert.Zero(t, plain.PID)
	assert.Contains(t, plain.Error(), "cannot access database")
}

func TestDB_OpenWithLock(t *testing.T) {
	t.Run("on-disk database holds the lock", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dbPath})
		require.NoError(t, err)
		defer db.Close()

		assert.NotNil(t, db.lock)
		_, err = os.Stat(filepath.Join(dbPath, LockFileName))
		assert.NoError(t, err)

		_, err = Open(Options{Path: dbPath})
		var lockErr *LockError
		assert.ErrorAs(t, err, &lockErr)
	})

	t.Run("in-memory database has no lock", func(t *testing.T) {
		db, err := Open(Options{InMemory: true})
		require.NoError(t, err)
		defer db.Close()
		assert.Nil(t, db.lock)
	})

	t.Run("close releases the lock", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "db")
		db, err := Open(Options{Path: dbPath})
		require.NoError(t, err)
		require.NoError(t, db.Close())

		_, err = os.Stat(filepath.Join(dbPath, LockFileName))
		assert.True(t, os.IsNotExist(err))

		db2, err := Open(Options{Path: dbPath})
		require.NoError(t, err)
		defer db2.Close()
	})
}
