package handlers

import (
	"net/http"

	"travelhub/utils"

	"github.com/gin-gonic/gin"
)

// Health reports the last store health snapshot; 503 when either store is down.
func Health(monitor *utils.HealthMonitor) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := monitor.Status()
		if !status.Mongo || !status.Redis {
			c.JSON(http.StatusServiceUnavailable, utils.Envelope{
				Message: "Degraded",
				Error:   "unhealthy",
				Data:    status,
			})
			return
		}
		utils.Respond(c, http.StatusOK, "ok", status)
	}
}
