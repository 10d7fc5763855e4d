package model

import (
	"time"

	"github.com/google/uuid"
)

// DefaultStepSource is recorded when a sync does not name its sensor.
const DefaultStepSource = "Phone Sensor"

// DailyStepRecord holds the step count for one user on one calendar day in
// the reporting timezone. Day is the start-of-day instant in UTC; the
// (user_id, day) pair is unique, so re-syncs for the same day update in
// place with max-merge semantics instead of inserting.
type DailyStepRecord struct {
	ID       uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_user_day;not null"`
	Day      time.Time `json:"date" gorm:"uniqueIndex:idx_user_day;not null"`
	Steps    int       `json:"steps" gorm:"not null;default:0"`
	Source   string    `json:"source" gorm:"size:100;default:'Phone Sensor'"`
	SyncedAt time.Time `json:"synced_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
