package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/pkg/timezone"
)

const (
	historyDefaultLimit = 30
	historyMaxLimit     = 200
)

// StepsStore is the daily-aggregate persistence the steps service needs.
type StepsStore interface {
	Upsert(rec *model.DailyStepRecord) error
	GetForDay(userID uuid.UUID, day time.Time) (*model.DailyStepRecord, error)
	History(userID uuid.UUID, start, end *time.Time, limit int) ([]model.DailyStepRecord, error)
}

// StepsService handles daily step aggregation in the reporting timezone.
type StepsService struct {
	repo          StepsStore
	offsetMinutes int
}

func NewStepsService(repo StepsStore, offsetMinutes int) *StepsService {
	return &StepsService{repo: repo, offsetMinutes: offsetMinutes}
}

// RecordSteps upserts the step count for one calendar day. Re-syncs keep the
// higher count, so duplicate or out-of-order sensor readings can never lower
// a day's total; source and synced_at always reflect the latest sync.
func (s *StepsService) RecordSteps(userID uuid.UUID, req model.RecordStepsRequest) (*model.StepsResponse, error) {
	if req.Steps == nil {
		return nil, apperr.Validation("Valid steps count is required")
	}
	if *req.Steps < 0 {
		return nil, apperr.Validation("Valid steps count is required")
	}

	at := time.Now()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			return nil, apperr.Validation("Invalid date")
		}
		at = parsed
	}
	day := timezone.NormalizeDay(at, s.offsetMinutes)

	source := req.Source
	if source == "" {
		source = model.DefaultStepSource
	}

	rec := &model.DailyStepRecord{
		UserID:   userID,
		Day:      day,
		Steps:    *req.Steps,
		Source:   source,
		SyncedAt: time.Now(),
	}
	if err := s.repo.Upsert(rec); err != nil {
		return nil, apperr.Internal("Server error while storing steps", err)
	}

	// Re-read so a max-merged count is returned, not the submitted one.
	stored, err := s.repo.GetForDay(userID, day)
	if err != nil {
		return nil, apperr.Internal("Server error while storing steps", err)
	}
	return stepsResponse(stored), nil
}

// GetHistory returns records ordered by day descending. Both bounds are
// inclusive and normalized to day boundaries. An empty result is not an error.
func (s *StepsService) GetHistory(userID uuid.UUID, query model.StepsHistoryQuery) ([]model.StepsResponse, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = historyDefaultLimit
	}
	if limit > historyMaxLimit {
		limit = historyMaxLimit
	}

	var start, end *time.Time
	if query.StartDate != "" {
		parsed, err := parseDate(query.StartDate)
		if err != nil {
			return nil, apperr.Validation("Invalid start_date")
		}
		day := timezone.NormalizeDay(parsed, s.offsetMinutes)
		start = &day
	}
	if query.EndDate != "" {
		parsed, err := parseDate(query.EndDate)
		if err != nil {
			return nil, apperr.Validation("Invalid end_date")
		}
		day := timezone.NormalizeDay(parsed, s.offsetMinutes)
		end = &day
	}

	records, err := s.repo.History(userID, start, end, limit)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching steps history", err)
	}

	result := make([]model.StepsResponse, 0, len(records))
	for i := range records {
		result = append(result, *stepsResponse(&records[i]))
	}
	return result, nil
}

// GetToday returns today's record in the reporting timezone, or a zero-valued
// placeholder that is never persisted.
func (s *StepsService) GetToday(userID uuid.UUID) (*model.StepsResponse, error) {
	day := timezone.Today(s.offsetMinutes)
	rec, err := s.repo.GetForDay(userID, day)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.StepsResponse{Date: day, Steps: 0}, nil
		}
		return nil, apperr.Internal("Server error while fetching today's steps", err)
	}
	return stepsResponse(rec), nil
}

func stepsResponse(rec *model.DailyStepRecord) *model.StepsResponse {
	id := rec.ID
	syncedAt := rec.SyncedAt
	return &model.StepsResponse{
		ID:       &id,
		Date:     rec.Day,
		Steps:    rec.Steps,
		Source:   rec.Source,
		SyncedAt: &syncedAt,
	}
}

// parseDate accepts RFC3339 instants and bare YYYY-MM-DD dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
