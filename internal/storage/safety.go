package storage

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"github.com/manav03panchal/crewboard/internal/errors"
)

// SafeWrite writes data to path atomically: it writes a temp file in the
// same directory, syncs it and renames it over the target.
func SafeWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmpFile, err := os.CreateTemp(dir, ".crewboard-*.tmp")
	if err != nil {
		return wrapWriteError("create temp file", err)
	}
	tmpPath := tmpFile.Name()

	// Ensure cleanup on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return wrapWriteError("write", err)
	}

	// Sync to ensure data is on disk
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return wrapWriteError("sync", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// Atomic rename
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

func wrapWriteError(op string, err error) error {
	switch {
	case isDiskFullError(err):
		return errors.NewSystemErrorWithOp(op, "disk full", errors.ErrDiskFull)
	case stderrors.Is(err, os.ErrPermission):
		return errors.NewSystemErrorWithOp(op, err.Error(), errors.ErrPermissionDenied)
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}

// isDiskFullError checks if an error indicates disk full condition.
func isDiskFullError(err error) bool {
	return stderrors.Is(err, syscall.ENOSPC)
}
