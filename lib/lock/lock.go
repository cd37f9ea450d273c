package lock

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const retryInterval = 100 * time.Millisecond

// FileLock provides a simple file-based locking mechanism. It keeps two imports
// from rewriting the same database at once.
type FileLock struct {
	dir    string
	logger *slog.Logger
}

// NewFileLock creates a lock that keeps its lock files in dir. An empty dir uses
// a directory under os.TempDir.
func NewFileLock(dir string, logger *slog.Logger) *FileLock {
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "launchdash-locks")
	}
	return &FileLock{
		dir:    dir,
		logger: logger,
	}
}

// TryLock attempts to acquire a lock with the given key, waiting up to timeout.
// It returns false without an error when the lock is still held at the deadline.
func (fl *FileLock) TryLock(ctx context.Context, key string, timeout time.Duration) (bool, error) {
	lockFile := fl.path(key)

	if err := os.MkdirAll(fl.dir, 0750); err != nil {
		return false, fmt.Errorf("failed to create lock directory: %w", err)
	}

	deadline := time.Now().Add(timeout)

	for {
		// #nosec G304 - lockFile is built by path from a sanitized key
		file, err := os.OpenFile(lockFile, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
		if err == nil {
			if _, err := fmt.Fprintf(file, "%d\n%d\n", time.Now().Unix(), os.Getpid()); err != nil {
				_ = file.Close()
				_ = os.Remove(lockFile)
				return false, fmt.Errorf("failed to write to lock file: %w", err)
			}
			if err := file.Close(); err != nil {
				return false, fmt.Errorf("failed to close lock file: %w", err)
			}

			fl.logger.Debug("Acquired lock", slog.String("key", key), slog.String("file", lockFile))
			return true, nil
		}
		if !os.IsExist(err) {
			return false, fmt.Errorf("failed to create lock file: %w", err)
		}

		if fl.isStale(lockFile, timeout*2) {
			fl.logger.Warn("Removing stale lock file", slog.String("file", lockFile))
			if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
				fl.logger.Error("Failed to remove stale lock file", slog.String("file", lockFile), slog.Any("error", err))
			}
			continue
		}

		if !time.Now().Before(deadline) {
			return false, nil
		}

		select {
		case <-ctx.Done():
			return false, ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}

// Unlock releases the lock for the given key.
func (fl *FileLock) Unlock(ctx context.Context, key string) error {
	lockFile := fl.path(key)

	if err := os.Remove(lockFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lock file: %w", err)
	}

	fl.logger.Debug("Released lock", slog.String("key", key), slog.String("file", lockFile))
	return nil
}

// path returns the lock file for key. Separators are replaced so a key can
// never point outside the lock directory.
func (fl *FileLock) path(key string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(fl.dir, safe+".lock")
}

// isStale reports whether the lock file is older than staleAfter.
func (fl *FileLock) isStale(lockFile string, staleAfter time.Duration) bool {
	info, err := os.Stat(lockFile)
	if err != nil {
		return os.IsNotExist(err)
	}
	return time.Since(info.ModTime()) > staleAfter
}
