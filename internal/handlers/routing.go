package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msquare-lighting/msquare-api/internal/models"
	apperrors "github.com/msquare-lighting/msquare-api/pkg/errors"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"go.uber.org/zap"
)

// MethodNotAllowed answers verbs a route does not serve
func MethodNotAllowed(c *gin.Context) {
	respondError(c, http.StatusMethodNotAllowed, msgMethodNotAllowed, apperrors.ErrMethodNotAllowed)
}

// NotFound answers unknown routes
func NotFound(c *gin.Context) {
	respondError(c, http.StatusNotFound, msgRouteNotFound, nil)
}

// Recovery turns a handler panic into the generic 500 envelope
func Recovery(c *gin.Context, recovered any) {
	logger.Error("Recovered from panic",
		zap.Any("panic", recovered),
		zap.String("path", c.Request.URL.Path))
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.APIResponse{
		Success: false,
		Message: msgInternal,
	})
}

// Preflight answers OPTIONS with an empty 200. The CORS middleware normally
// ends the request before it gets here.
func Preflight(c *gin.Context) {
	c.Status(http.StatusOK)
}
