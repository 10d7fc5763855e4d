package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/pkg/timezone"
)

func newStepsService() (*StepsService, *fakeStepsStore) {
	store := newFakeStepsStore()
	return NewStepsService(store, timezone.DefaultOffsetMinutes), store
}

func TestRecordSteps_HigherCountWins(t *testing.T) {
	svc, _ := newStepsService()
	userID := uuid.New()

	resp, err := svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(500), Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.Steps)

	// A lower re-sync for the same day never lowers the stored count
	resp, err = svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(300), Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 500, resp.Steps)

	// A higher one replaces it
	resp, err = svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(900), Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 900, resp.Steps)
}

func TestRecordSteps_SameLocalDayCollapses(t *testing.T) {
	svc, store := newStepsService()
	userID := uuid.New()

	// Two instants on the same IST calendar day
	_, err := svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(100), Date: "2024-01-10T03:00:00Z"})
	require.NoError(t, err)
	_, err = svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(200), Date: "2024-01-10T06:30:00Z"})
	require.NoError(t, err)

	assert.Len(t, store.records, 1)
}

func TestRecordSteps_ValidationErrors(t *testing.T) {
	svc, _ := newStepsService()
	userID := uuid.New()

	_, err := svc.RecordSteps(userID, model.RecordStepsRequest{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(-5)})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(100), Date: "not-a-date"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRecordSteps_ZeroIsValid(t *testing.T) {
	svc, _ := newStepsService()

	resp, err := svc.RecordSteps(uuid.New(), model.RecordStepsRequest{Steps: intPtr(0), Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Steps)
}

func TestRecordSteps_DefaultSource(t *testing.T) {
	svc, _ := newStepsService()

	resp, err := svc.RecordSteps(uuid.New(), model.RecordStepsRequest{Steps: intPtr(100), Date: "2024-01-10"})
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStepSource, resp.Source)

	resp, err = svc.RecordSteps(uuid.New(), model.RecordStepsRequest{Steps: intPtr(100), Date: "2024-01-10", Source: "Garmin"})
	require.NoError(t, err)
	assert.Equal(t, "Garmin", resp.Source)
}

func TestGetToday_PlaceholderWhenEmpty(t *testing.T) {
	svc, store := newStepsService()

	resp, err := svc.GetToday(uuid.New())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Steps)
	assert.Nil(t, resp.ID)
	assert.Equal(t, timezone.Today(timezone.DefaultOffsetMinutes), resp.Date)
	// The placeholder is never persisted
	assert.Empty(t, store.records)
}

func TestGetToday_ReturnsStoredRecord(t *testing.T) {
	svc, _ := newStepsService()
	userID := uuid.New()

	_, err := svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(4200)})
	require.NoError(t, err)

	resp, err := svc.GetToday(userID)
	require.NoError(t, err)
	assert.Equal(t, 4200, resp.Steps)
	assert.NotNil(t, resp.ID)
}

func TestGetHistory_OrderAndBounds(t *testing.T) {
	svc, _ := newStepsService()
	userID := uuid.New()

	for i, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10", "2024-01-11"} {
		_, err := svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr((i + 1) * 1000), Date: day})
		require.NoError(t, err)
	}

	// Both bounds inclusive
	result, err := svc.GetHistory(userID, model.StepsHistoryQuery{StartDate: "2024-01-09", EndDate: "2024-01-10"})
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Newest first
	assert.Equal(t, 3000, result[0].Steps)
	assert.Equal(t, 2000, result[1].Steps)
}

func TestGetHistory_EmptyIsNotAnError(t *testing.T) {
	svc, _ := newStepsService()

	result, err := svc.GetHistory(uuid.New(), model.StepsHistoryQuery{})
	require.NoError(t, err)
	assert.Empty(t, result)
}

func TestGetHistory_LimitClamped(t *testing.T) {
	svc, store := newStepsService()
	userID := uuid.New()

	_, err := svc.GetHistory(userID, model.StepsHistoryQuery{})
	require.NoError(t, err)
	assert.Equal(t, 30, store.lastLimit)

	_, err = svc.GetHistory(userID, model.StepsHistoryQuery{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 200, store.lastLimit)
}

func TestGetHistory_InvalidBounds(t *testing.T) {
	svc, _ := newStepsService()

	_, err := svc.GetHistory(uuid.New(), model.StepsHistoryQuery{StartDate: "10/01/2024"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	_, err = svc.GetHistory(uuid.New(), model.StepsHistoryQuery{EndDate: "bogus"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestRecordSteps_DayIsNormalized(t *testing.T) {
	svc, _ := newStepsService()
	userID := uuid.New()

	resp, err := svc.RecordSteps(userID, model.RecordStepsRequest{Steps: intPtr(100), Date: "2024-01-10T12:00:00Z"})
	require.NoError(t, err)

	want := timezone.NormalizeDay(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC), timezone.DefaultOffsetMinutes)
	assert.Equal(t, want, resp.Date)
}
