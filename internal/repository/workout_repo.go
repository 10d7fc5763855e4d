package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/model"
)

// WorkoutRepository handles database operations for WorkoutLogEntry
type WorkoutRepository struct {
	db *gorm.DB
}

func NewWorkoutRepository(db *gorm.DB) *WorkoutRepository {
	return &WorkoutRepository{db: db}
}

// Create appends a workout entry. Entries are never updated afterwards.
func (r *WorkoutRepository) Create(entry *model.WorkoutLogEntry) error {
	return r.db.Create(entry).Error
}

// ListForUser returns workouts ordered by start time descending.
func (r *WorkoutRepository) ListForUser(userID uuid.UUID, limit int) ([]model.WorkoutLogEntry, error) {
	entries := []model.WorkoutLogEntry{}
	err := r.db.
		Where("user_id = ?", userID).
		Order("start_time DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
