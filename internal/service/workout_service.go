package service

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
)

const (
	workoutDefaultLimit = 50
	workoutMaxLimit     = 200
)

// WorkoutStore is the workout-log persistence the workout service needs.
type WorkoutStore interface {
	Create(entry *model.WorkoutLogEntry) error
	ListForUser(userID uuid.UUID, limit int) ([]model.WorkoutLogEntry, error)
}

// WorkoutService handles the append-only workout log.
type WorkoutService struct {
	repo WorkoutStore
}

func NewWorkoutService(repo WorkoutStore) *WorkoutService {
	return &WorkoutService{repo: repo}
}

// LogWorkout validates and appends one completed session. Validation errors
// name the offending field; a created entry is never updated afterwards.
func (s *WorkoutService) LogWorkout(userID uuid.UUID, req model.LogWorkoutRequest) (*model.WorkoutLogEntry, error) {
	workoutType := strings.TrimSpace(req.WorkoutType)
	if workoutType == "" {
		return nil, apperr.Validation("workout_type is required")
	}

	if req.StartTime == "" {
		return nil, apperr.Validation("start_time is required")
	}
	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		return nil, apperr.Validation("start_time must be a valid timestamp")
	}

	if req.DurationSeconds == nil || !isFinite(*req.DurationSeconds) || *req.DurationSeconds <= 0 {
		return nil, apperr.Validation("duration_seconds must be a positive number")
	}
	duration := int(math.Round(*req.DurationSeconds))
	if duration <= 0 {
		return nil, apperr.Validation("duration_seconds must be a positive number")
	}

	if req.Calories == nil || !isFinite(*req.Calories) || *req.Calories < 0 {
		return nil, apperr.Validation("calories must be a non-negative number")
	}

	if req.MET != nil && !isFinite(*req.MET) {
		return nil, apperr.Validation("met must be a finite number")
	}

	entry := &model.WorkoutLogEntry{
		UserID:          userID,
		WorkoutType:     workoutType,
		StartTime:       startTime,
		DurationSeconds: duration,
		Calories:        *req.Calories,
		MET:             req.MET,
	}
	if err := s.repo.Create(entry); err != nil {
		return nil, apperr.Internal("Server error while logging workout", err)
	}
	return entry, nil
}

// ListWorkouts returns the user's workouts ordered by start time descending.
func (s *WorkoutService) ListWorkouts(userID uuid.UUID, query model.WorkoutListQuery) ([]model.WorkoutLogEntry, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = workoutDefaultLimit
	}
	if limit > workoutMaxLimit {
		limit = workoutMaxLimit
	}

	entries, err := s.repo.ListForUser(userID, limit)
	if err != nil {
		return nil, apperr.Internal("Server error while fetching workouts", err)
	}
	return entries, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
