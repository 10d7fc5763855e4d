package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/fittrackapp/fittrack-api/internal/model"
)

// StepsRepository handles database operations for DailyStepRecord
type StepsRepository struct {
	db *gorm.DB
}

func NewStepsRepository(db *gorm.DB) *StepsRepository {
	return &StepsRepository{db: db}
}

// Upsert inserts the record or, when a row for (user_id, day) already
// exists, merges into it keeping the higher step count. Source and synced_at
// are always overwritten. Concurrent first syncs for a new day race on the
// unique pair; ON CONFLICT turns the loser's insert into the update, so the
// race never surfaces as an error.
func (r *StepsRepository) Upsert(rec *model.DailyStepRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "day"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"steps":     gorm.Expr("GREATEST(daily_step_records.steps, excluded.steps)"),
			"source":    rec.Source,
			"synced_at": rec.SyncedAt,
		}),
	}).Create(rec).Error
}

// GetForDay returns the record for one normalized day, or gorm.ErrRecordNotFound
func (r *StepsRepository) GetForDay(userID uuid.UUID, day time.Time) (*model.DailyStepRecord, error) {
	var rec model.DailyStepRecord
	err := r.db.Where("user_id = ? AND day = ?", userID, day).First(&rec).Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// History returns records for the user ordered by day descending, optionally
// bounded by an inclusive date range.
func (r *StepsRepository) History(userID uuid.UUID, start, end *time.Time, limit int) ([]model.DailyStepRecord, error) {
	records := []model.DailyStepRecord{}
	query := r.db.Where("user_id = ?", userID).Order("day DESC").Limit(limit)
	if start != nil {
		query = query.Where("day >= ?", *start)
	}
	if end != nil {
		query = query.Where("day <= ?", *end)
	}
	err := query.Find(&records).Error
	return records, err
}
