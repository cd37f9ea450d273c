package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/icco/launchdash/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const insertBatchSize = 200

// Open connects to the SQLite database at path and runs migrations.
func Open(ctx context.Context, path string, logger *slog.Logger) (*gorm.DB, error) {
	logger.Info("Connecting to database", slog.String("path", path))
	gormDB, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := migrateOrClose(ctx, gormDB, logger); err != nil {
		return nil, err
	}

	return gormDB, nil
}

// migrateOrClose runs migrations and closes db when they fail.
func migrateOrClose(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	if err := RunMigrations(ctx, db, logger); err != nil {
		if cerr := Close(db); cerr != nil {
			logger.Error("Failed to close database", slog.Any("error", cerr))
		}
		return err
	}
	return nil
}

// Close releases the connection pool behind db.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database connection: %w", err)
	}
	return sqlDB.Close()
}

// ReplaceRecords swaps the stored dataset for records in one transaction, so a
// reader never sees a half-imported table.
func ReplaceRecords(ctx context.Context, db *gorm.DB, records []models.LaunchRecord) error {
	rows := make([]models.LaunchRecord, len(records))
	for i, rec := range records {
		rec.ID = 0
		rec.Position = i
		rows[i] = rec
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.LaunchRecord{}).Error; err != nil {
			return fmt.Errorf("failed to clear launch records: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("failed to insert launch records: %w", err)
		}
		return nil
	})
}

// LoadRecords returns every stored record in import order.
func LoadRecords(ctx context.Context, db *gorm.DB) ([]models.LaunchRecord, error) {
	var records []models.LaunchRecord
	if err := db.WithContext(ctx).Order("position asc").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load launch records: %w", err)
	}
	return records, nil
}

// CountRecords returns the number of stored records.
func CountRecords(ctx context.Context, db *gorm.DB) (int64, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.LaunchRecord{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count launch records: %w", err)
	}
	return count, nil
}
