package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/internal/service"
)

// WorkoutHandler handles workout-log HTTP endpoints
type WorkoutHandler struct {
	workoutService *service.WorkoutService
}

func NewWorkoutHandler(workoutService *service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// LogWorkout godoc
// @Summary Log a completed workout
// @Tags Workouts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.LogWorkoutRequest true "Workout payload"
// @Success 201 {object} model.WorkoutLogEntry
// @Failure 400 {object} model.ErrorResponse
// @Router /workouts [post]
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	var req model.LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	entry, err := h.workoutService.LogWorkout(userID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// ListWorkouts godoc
// @Summary List logged workouts, latest first
// @Tags Workouts
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max records (default 50, max 200)"
// @Success 200 {array} model.WorkoutLogEntry
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	var query model.WorkoutListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid query", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	entries, err := h.workoutService.ListWorkouts(userID, query)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}
