package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/icco/launchdash/lib/dataset"
	"github.com/icco/launchdash/lib/db"
	"github.com/icco/launchdash/lib/lock"
	"github.com/spf13/cobra"
)

const importLockTimeout = 30 * time.Second

// ErrImportLocked is returned when another import holds the database lock.
var ErrImportLocked = errors.New("another import is already running for this database")

var (
	importCSV     string
	importURL     string
	importDB      string
	importLockDir string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load the launch records CSV into the SQLite database",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		src := csvSource(cfg)
		if importCSV != "" || importURL != "" {
			src = dataset.Source{FilePath: importCSV, URL: importURL}
		}
		dbPath := cfg.Data.DBPath
		if importDB != "" {
			dbPath = importDB
		}

		n, err := runImport(cmd.Context(), src, dbPath, lock.NewFileLock(importLockDir, logger), logger)
		if err != nil {
			logger.Error("Import failed", slog.Any("error", err))
			return err
		}

		logger.Info("Import completed", slog.String("db", dbPath), slog.Int("records", n))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importCSV, "csv", "", "CSV file to import (defaults to data.csv_path)")
	importCmd.Flags().StringVar(&importURL, "url", "", "URL of a CSV to import")
	importCmd.Flags().StringVar(&importDB, "db", "", "SQLite database path (defaults to data.db_path)")
	importCmd.Flags().StringVar(&importLockDir, "lock-dir", "", "directory for import lock files")
	rootCmd.AddCommand(importCmd)
}

// runImport replaces the records stored at dbPath with the ones read from src
// and returns how many were written.
func runImport(ctx context.Context, src dataset.Source, dbPath string, fl *lock.FileLock, logger *slog.Logger) (int, error) {
	ds, err := dataset.Load(ctx, src)
	if err != nil {
		return 0, err
	}

	key := "import-" + filepath.Base(dbPath)
	acquired, err := fl.TryLock(ctx, key, importLockTimeout)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire import lock: %w", err)
	}
	if !acquired {
		return 0, ErrImportLocked
	}
	defer func() {
		if err := fl.Unlock(ctx, key); err != nil {
			logger.Error("Failed to release import lock", slog.Any("error", err))
		}
	}()

	gormDB, err := db.Open(ctx, dbPath, logger)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := db.Close(gormDB); err != nil {
			logger.Error("Failed to close database", slog.Any("error", err))
		}
	}()

	if err := db.ReplaceRecords(ctx, gormDB, ds.Records()); err != nil {
		return 0, err
	}

	count, err := db.CountRecords(ctx, gormDB)
	if err != nil {
		return 0, err
	}
	if int(count) != ds.Len() {
		return 0, fmt.Errorf("imported %d records but database holds %d", ds.Len(), count)
	}

	return ds.Len(), nil
}
