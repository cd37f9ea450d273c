package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icco/launchdash/models"
	"gorm.io/gorm"
)

// RunMigrations prepares the launch record schema.
func RunMigrations(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	enableSQLiteOptimizations(ctx, db, logger)

	if err := db.WithContext(ctx).AutoMigrate(&models.LaunchRecord{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	createAdditionalIndexes(ctx, db, logger)
	return nil
}

// enableSQLiteOptimizations applies pragmas; a failing pragma is logged, not fatal.
func enableSQLiteOptimizations(ctx context.Context, db *gorm.DB, logger *slog.Logger) {
	optimizations := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range optimizations {
		if err := db.WithContext(ctx).Exec(pragma).Error; err != nil {
			logger.WarnContext(ctx, "Failed to execute pragma", slog.String("pragma", pragma), slog.Any("error", err))
		} else {
			logger.DebugContext(ctx, "Executed pragma", slog.String("pragma", pragma))
		}
	}
}

// createAdditionalIndexes adds the composite index the site/payload lookups use.
func createAdditionalIndexes(ctx context.Context, db *gorm.DB, logger *slog.Logger) {
	additionalIndexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_launch_records_site_payload ON launch_records(launch_site, payload_mass_kg)",
	}

	for _, indexSQL := range additionalIndexes {
		if err := db.WithContext(ctx).Exec(indexSQL).Error; err != nil {
			logger.WarnContext(ctx, "Failed to create index", slog.String("sql", indexSQL), slog.Any("error", err))
		} else {
			logger.DebugContext(ctx, "Created index", slog.String("sql", indexSQL))
		}
	}
}
