package service

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
)

func validWorkoutRequest() model.LogWorkoutRequest {
	return model.LogWorkoutRequest{
		WorkoutType:     "Running",
		StartTime:       "2024-01-10T07:00:00Z",
		DurationSeconds: floatPtr(1800),
		Calories:        floatPtr(250),
	}
}

func TestLogWorkout_Success(t *testing.T) {
	store := &fakeWorkoutStore{}
	svc := NewWorkoutService(store)
	userID := uuid.New()

	entry, err := svc.LogWorkout(userID, validWorkoutRequest())
	require.NoError(t, err)
	assert.Equal(t, userID, entry.UserID)
	assert.Equal(t, "Running", entry.WorkoutType)
	assert.Equal(t, 1800, entry.DurationSeconds)
	assert.Equal(t, 250.0, entry.Calories)
	assert.Nil(t, entry.MET)
	assert.Len(t, store.entries, 1)
}

func TestLogWorkout_TrimsType(t *testing.T) {
	svc := NewWorkoutService(&fakeWorkoutStore{})

	req := validWorkoutRequest()
	req.WorkoutType = "  Cycling  "
	entry, err := svc.LogWorkout(uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, "Cycling", entry.WorkoutType)
}

func TestLogWorkout_RoundsDuration(t *testing.T) {
	svc := NewWorkoutService(&fakeWorkoutStore{})

	req := validWorkoutRequest()
	req.DurationSeconds = floatPtr(1799.6)
	entry, err := svc.LogWorkout(uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 1800, entry.DurationSeconds)
}

func TestLogWorkout_Validation(t *testing.T) {
	svc := NewWorkoutService(&fakeWorkoutStore{})
	userID := uuid.New()

	tests := []struct {
		name   string
		mutate func(*model.LogWorkoutRequest)
	}{
		{"missing type", func(r *model.LogWorkoutRequest) { r.WorkoutType = "   " }},
		{"missing start time", func(r *model.LogWorkoutRequest) { r.StartTime = "" }},
		{"bad start time", func(r *model.LogWorkoutRequest) { r.StartTime = "yesterday" }},
		{"missing duration", func(r *model.LogWorkoutRequest) { r.DurationSeconds = nil }},
		{"zero duration", func(r *model.LogWorkoutRequest) { r.DurationSeconds = floatPtr(0) }},
		{"negative duration", func(r *model.LogWorkoutRequest) { r.DurationSeconds = floatPtr(-60) }},
		{"nan duration", func(r *model.LogWorkoutRequest) { r.DurationSeconds = floatPtr(math.NaN()) }},
		{"missing calories", func(r *model.LogWorkoutRequest) { r.Calories = nil }},
		{"negative calories", func(r *model.LogWorkoutRequest) { r.Calories = floatPtr(-1) }},
		{"infinite calories", func(r *model.LogWorkoutRequest) { r.Calories = floatPtr(math.Inf(1)) }},
		{"nan met", func(r *model.LogWorkoutRequest) { r.MET = floatPtr(math.NaN()) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validWorkoutRequest()
			tt.mutate(&req)
			_, err := svc.LogWorkout(userID, req)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestLogWorkout_ZeroCaloriesAllowed(t *testing.T) {
	svc := NewWorkoutService(&fakeWorkoutStore{})

	req := validWorkoutRequest()
	req.Calories = floatPtr(0)
	entry, err := svc.LogWorkout(uuid.New(), req)
	require.NoError(t, err)
	assert.Equal(t, 0.0, entry.Calories)
}

func TestListWorkouts_NewestFirst(t *testing.T) {
	store := &fakeWorkoutStore{}
	svc := NewWorkoutService(store)
	userID := uuid.New()

	for _, start := range []string{"2024-01-08T07:00:00Z", "2024-01-10T07:00:00Z", "2024-01-09T07:00:00Z"} {
		req := validWorkoutRequest()
		req.StartTime = start
		_, err := svc.LogWorkout(userID, req)
		require.NoError(t, err)
	}

	entries, err := svc.ListWorkouts(userID, model.WorkoutListQuery{})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.True(t, entries[0].StartTime.After(entries[1].StartTime))
	assert.True(t, entries[1].StartTime.After(entries[2].StartTime))
}

func TestListWorkouts_LimitClamped(t *testing.T) {
	store := &fakeWorkoutStore{}
	svc := NewWorkoutService(store)

	_, err := svc.ListWorkouts(uuid.New(), model.WorkoutListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 50, store.lastLimit)

	_, err = svc.ListWorkouts(uuid.New(), model.WorkoutListQuery{Limit: 9999})
	require.NoError(t, err)
	assert.Equal(t, 200, store.lastLimit)
}
