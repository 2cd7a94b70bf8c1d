package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/msquare-lighting/msquare-api/internal/models"
)

// timestampLayout is RFC 3339 with millisecond precision
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type HealthHandler struct {
	environment string
	now         func() time.Time
}

func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{
		environment: environment,
		now:         time.Now,
	}
}

func (h *HealthHandler) Healthcheck(c *gin.Context) {
	c.Header("Cache-Control", "no-cache, no-store, max-age=0, must-revalidate")

	c.JSON(http.StatusOK, models.HealthResponse{
		Success:     true,
		Message:     msgHealthy,
		Environment: h.environment,
		Timestamp:   h.now().UTC().Format(timestampLayout),
	})
}
