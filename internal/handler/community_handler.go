package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/internal/service"
)

// CommunityHandler handles community and community-chat HTTP endpoints
type CommunityHandler struct {
	communityService *service.CommunityService
}

func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

// CreateCommunity godoc
// @Summary Create a community
// @Description Private communities receive a shareable 6-character join code.
// @Tags Community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateCommunityRequest true "Community payload"
// @Success 201 {object} model.CommunityResponse
// @Failure 400 {object} model.ErrorResponse
// @Router /community/create [post]
func (h *CommunityHandler) CreateCommunity(c *gin.Context) {
	var req model.CreateCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	resp, err := h.communityService.CreateCommunity(userID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListPublic godoc
// @Summary List public communities, newest first
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CommunityResponse
// @Router /community/list [get]
func (h *CommunityHandler) ListPublic(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	communities, err := h.communityService.ListPublic(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, communities)
}

// ListMine godoc
// @Summary List communities the user owns or belongs to
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.CommunityResponse
// @Router /community/my-communities [get]
func (h *CommunityHandler) ListMine(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	communities, err := h.communityService.ListMine(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, communities)
}

// JoinPublic godoc
// @Summary Join a public community
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} model.CommunityResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /community/{id}/join [post]
func (h *CommunityHandler) JoinPublic(c *gin.Context) {
	communityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid community ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	resp, err := h.communityService.JoinPublic(userID, communityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// JoinWithCode godoc
// @Summary Join a private community with its code
// @Description Codes are matched case-insensitively.
// @Tags Community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.JoinWithCodeRequest true "Join code"
// @Success 200 {object} model.CommunityResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /community/join-with-code [post]
func (h *CommunityHandler) JoinWithCode(c *gin.Context) {
	var req model.JoinWithCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Join code is required", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	resp, err := h.communityService.JoinWithCode(userID, req.JoinCode)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Leave godoc
// @Summary Leave a community
// @Tags Community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.LeaveCommunityRequest true "Community ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /community/leave [post]
func (h *CommunityHandler) Leave(c *gin.Context) {
	var req model.LeaveCommunityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Community ID required", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.communityService.Leave(userID, req.CommunityID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Left community successfully"})
}

// Delete godoc
// @Summary Delete a community and all its messages
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Param id path string true "Community ID"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /community/delete/{id} [delete]
func (h *CommunityHandler) Delete(c *gin.Context) {
	communityID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid community ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.communityService.Delete(userID, communityID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Community deleted successfully"})
}

// TransferOwner godoc
// @Summary Transfer community ownership to a member
// @Tags Community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.TransferOwnerRequest true "Transfer payload"
// @Success 200 {object} model.SuccessResponse
// @Failure 403 {object} model.ErrorResponse
// @Router /community/transfer-owner [post]
func (h *CommunityHandler) TransferOwner(c *gin.Context) {
	var req model.TransferOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid request", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	if err := h.communityService.TransferOwnership(userID, req.CommunityID, req.NewOwnerID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, model.SuccessResponse{Message: "Ownership transferred successfully"})
}

// PostMessage godoc
// @Summary Post a message to a community
// @Tags Community
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.PostMessageRequest true "Message payload"
// @Success 201 {object} model.CommunityMessage
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /community/messages [post]
func (h *CommunityHandler) PostMessage(c *gin.Context) {
	var req model.PostMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Community ID is required", Message: err.Error()})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	msg, err := h.communityService.PostMessage(userID, req)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// ListMessages godoc
// @Summary List community messages
// @Description order=asc returns the oldest messages first; order=desc returns the most recent, newest first.
// @Tags Community
// @Produce json
// @Security BearerAuth
// @Param community_id query string true "Community ID"
// @Param limit query int false "Max messages (default 50, max 200)"
// @Param order query string false "asc or desc"
// @Success 200 {array} model.CommunityMessage
// @Failure 403 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Router /community/messages [get]
func (h *CommunityHandler) ListMessages(c *gin.Context) {
	var query model.MessageListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Community ID is required", Message: err.Error()})
		return
	}

	communityID, err := uuid.Parse(query.CommunityID)
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid community ID"})
		return
	}

	userID := c.MustGet("user_id").(uuid.UUID)
	messages, err := h.communityService.ListMessages(userID, communityID, query.Limit, query.Order)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}
