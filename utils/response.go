package utils

import (
	"net/http"

	"travelhub/apperr"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a success envelope.
func Respond(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// RespondError writes the failure envelope for err and aborts the chain.
// Only the categorized message reaches the caller.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	kind := apperr.KindOf(err)
	status := kind.HTTPStatus()
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.String("path", c.FullPath()),
			zap.String("kind", kind.String()),
			zap.Error(err))
	} else {
		logger.Debug("Request rejected",
			zap.String("path", c.FullPath()),
			zap.String("kind", kind.String()),
			zap.Error(err))
	}
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Message: apperr.PublicMessage(err),
		Error:   kind.String(),
	})
}
