package walletstatedb

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	walletlog "github.com/Maphikza/trust-wallet-client.git/internal/logger"
)

// ErrNotFound is returned when a metadata key has no row.
var ErrNotFound = errors.New("metadata key not found")

// InitSQLiteDB opens (creating if needed) the wallet state database
func InitSQLiteDB(dbPath string) (*gorm.DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	// Configure GORM to be less verbose
	config := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	}

	db, err := gorm.Open(sqlite.Open(dbPath), config)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&SQLiteMetadata{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	walletlog.Debug("SQLite database initialized", "path", dbPath)
	return db, nil
}

// Close releases the underlying connection pool.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// SetMetadata upserts key. Pass a transaction to group several writes.
func SetMetadata(db *gorm.DB, key, value string) error {
	row := SQLiteMetadata{Key: key, Value: value}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save metadata %s: %w", key, err)
	}
	return nil
}

func GetMetadata(db *gorm.DB, key string) (string, error) {
	var row SQLiteMetadata
	err := db.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to read metadata %s: %w", key, err)
	}
	return row.Value, nil
}

// DeleteMetadata removes the given keys. Missing keys are not an error.
func DeleteMetadata(db *gorm.DB, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := db.Unscoped().Where("key IN ?", keys).Delete(&SQLiteMetadata{}).Error; err != nil {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	return nil
}
