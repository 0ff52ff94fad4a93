package models

import "time"

// CartRecord is one persisted cart record: the versioned items document or
// the customer document of a session
type CartRecord struct {
	SessionID string    `gorm:"column:session_id;type:varchar(64);primaryKey"`
	RecordKey string    `gorm:"column:record_key;type:varchar(64);primaryKey"`
	Data      string    `gorm:"column:data;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null;index"`
}

// TableName returns the table name for GORM
func (CartRecord) TableName() string {
	return "cart_records"
}
