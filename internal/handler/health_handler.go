package handler

import (
	"net/http"
	"time"

	"issueboard/internal/api"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	version string
	now     func() time.Time
}

func NewHealthHandler(version string) *HealthHandler {
	return &HealthHandler{version: version, now: time.Now}
}

// Get reports liveness.
//
// @Summary Health check
// @Tags    Health
// @Produce json
// @Success 200 {object} api.HealthResponse
// @Router  /health [get]
func (h *HealthHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{
		Status:    "healthy",
		Timestamp: h.now().UTC(),
		Version:   h.version,
	})
}
