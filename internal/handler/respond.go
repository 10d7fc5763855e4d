package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/fittrackapp/fittrack-api/internal/apperr"
	"github.com/fittrackapp/fittrack-api/internal/model"
)

// fail writes the error with the status its kind maps to. Unknown errors
// become a generic 500 so storage details never reach the client.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), model.ErrorResponse{Error: apperr.MessageOf(err)})
}
