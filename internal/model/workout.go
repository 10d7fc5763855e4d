package model

import (
	"time"

	"github.com/google/uuid"
)

// WorkoutLogEntry is an append-only record of one completed workout session.
// Entries are never updated after creation.
type WorkoutLogEntry struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID          uuid.UUID `json:"user_id" gorm:"type:uuid;index;not null"`
	WorkoutType     string    `json:"workout_type" gorm:"size:100;not null"`
	StartTime       time.Time `json:"start_time" gorm:"not null"`
	DurationSeconds int       `json:"duration_seconds" gorm:"not null"`
	Calories        float64   `json:"calories" gorm:"not null;default:0"`
	MET             *float64  `json:"met,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}
