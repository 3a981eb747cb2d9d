package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// RememberedLocation is the row behind SQLiteMemory
type RememberedLocation struct {
	Key       string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"not null"`
	ExpiresAt time.Time
	UpdatedAt time.Time
}

// SQLiteMemory keeps the remembered location in a local SQLite database
type SQLiteMemory struct {
	db  *gorm.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) the database at path and migrates it
func OpenSQLite(path string) (*SQLiteMemory, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	return NewSQLiteMemory(db)
}

// NewSQLiteMemory wraps an open gorm handle
func NewSQLiteMemory(db *gorm.DB) (*SQLiteMemory, error) {
	if err := db.AutoMigrate(&RememberedLocation{}); err != nil {
		return nil, fmt.Errorf("migrate remembered_locations: %w", err)
	}
	return &SQLiteMemory{db: db, now: time.Now}, nil
}

// Load returns the stored location unless it has expired
func (m *SQLiteMemory) Load(ctx context.Context) (string, bool, error) {
	var row RememberedLocation
	err := m.db.WithContext(ctx).First(&row, "key = ?", Key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load %s: %w", Key, err)
	}
	if !row.ExpiresAt.IsZero() && m.now().After(row.ExpiresAt) {
		return "", false, nil
	}
	if row.Value == "" {
		return "", false, nil
	}
	return row.Value, true, nil
}

// Save upserts the location and pushes its expiry out
func (m *SQLiteMemory) Save(ctx context.Context, query string) error {
	now := m.now()
	row := RememberedLocation{
		Key:       Key,
		Value:     query,
		ExpiresAt: now.Add(Expiry),
		UpdatedAt: now,
	}
	err := m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("save %s: %w", Key, err)
	}
	return nil
}

// Close releases the underlying connection pool
func (m *SQLiteMemory) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ LocationMemory = (*SQLiteMemory)(nil)
