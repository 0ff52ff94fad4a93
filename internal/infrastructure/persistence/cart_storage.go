package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/respawnadega/storefront/internal/domain/cart"
	"github.com/respawnadega/storefront/internal/domain/shared"
	"github.com/respawnadega/storefront/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartStorage implements cart.Storage on a SQL table with one row per
// (session, key)
type GormCartStorage struct {
	db  *gorm.DB
	now func() time.Time
}

var _ cart.Storage = (*GormCartStorage)(nil)

// NewGormCartStorage creates a new GormCartStorage
func NewGormCartStorage(db *gorm.DB) *GormCartStorage {
	return &GormCartStorage{db: db, now: time.Now}
}

// Read returns the raw record, or shared.ErrNotFound
func (s *GormCartStorage) Read(ctx context.Context, sessionID, key string) ([]byte, error) {
	var record models.CartRecord
	err := s.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", sessionID, key).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return []byte(record.Data), nil
}

// Write inserts or replaces the record
func (s *GormCartStorage) Write(ctx context.Context, sessionID, key string, data []byte) error {
	record := models.CartRecord{
		SessionID: sessionID,
		RecordKey: key,
		Data:      string(data),
		UpdatedAt: s.now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}, {Name: "record_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(&record).Error
}

// Delete removes the record. Deleting an absent record is not an error.
func (s *GormCartStorage) Delete(ctx context.Context, sessionID, key string) error {
	return s.db.WithContext(ctx).
		Where("session_id = ? AND record_key = ?", sessionID, key).
		Delete(&models.CartRecord{}).Error
}

// PurgeIdle deletes records not written since before. It returns the number
// of rows removed.
func (s *GormCartStorage) PurgeIdle(ctx context.Context, before time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("updated_at < ?", before.UTC()).
		Delete(&models.CartRecord{})
	return result.RowsAffected, result.Error
}
