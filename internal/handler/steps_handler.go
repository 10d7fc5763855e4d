package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/internal/service"
)

// StepsHandler handles daily-steps HTTP endpoints
type StepsHandler struct {
	stepsService *service.StepsService
}

func NewStepsHandler(stepsService *service.StepsService) *StepsHandler {
	return &StepsHandler{stepsService: stepsService}
}

// RecordSteps godoc
// @Summary Sync the step count for a day
// @Description Upserts the day's record; a lower count than already stored never wins.
// @Tags Steps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.RecordStepsRequest true "Steps payload"
// @Success 200 {object} model.StepsResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /steps [post]
func (h *StepsHandler) RecordSteps(c *gin.Context) {
	var req model.RecordStepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	resp, err := h.stepsService.RecordSteps(userID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetHistory godoc
// @Summary Get step history
// @Tags Steps
// @Produce json
// @Security BearerAuth
// @Param start_date query string false "Inclusive start date (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive end date (YYYY-MM-DD)"
// @Param limit query int false "Max records (default 30, max 200)"
// @Success 200 {array} model.StepsResponse
// @Router /steps/history [get]
func (h *StepsHandler) GetHistory(c *gin.Context) {
	var query model.StepsHistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid query", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	history, err := h.stepsService.GetHistory(userID, query)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetToday godoc
// @Summary Get today's steps in the reporting timezone
// @Tags Steps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.StepsResponse
// @Router /steps/today [get]
func (h *StepsHandler) GetToday(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	today, err := h.stepsService.GetToday(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, today)
}
