package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/msquare-lighting/msquare-api/internal/models"
)

// Client-facing messages. Causes go to the request log, never the body.
const (
	msgMethodNotAllowed = "Method not allowed"
	msgRouteNotFound    = "Route not found"
	msgInternal         = "Something went wrong!"
	msgTooManyRequests  = "Too many requests. Please try again later."
	msgValidationFailed = "Validation failed"
	msgInvalidBody      = "Invalid request body"
	msgNotifyFailed     = "Failed to send your message. Please try again later."
	msgContactAccepted  = "Thank you for your inquiry! We will get back to you soon."
	msgInvalidEmail     = "Please provide a valid email address."
	msgSubscribed       = "Successfully subscribed to our newsletter!"
	msgCatalogueDown    = "Catalogue unavailable"
	msgHealthy          = "M-Square Lighting API is running!"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends a failure envelope and attaches err for the request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, models.APIResponse{Success: false, Message: message})
}

// respondErrorWithDetails sends a failure envelope listing each problem.
func respondErrorWithDetails(c *gin.Context, status int, message string, details []string, err error) {
	attachError(c, err)
	c.JSON(status, models.APIResponse{Success: false, Message: message, Errors: details})
}

func respondOK(c *gin.Context, status int, message string) {
	c.JSON(status, models.APIResponse{Success: true, Message: message})
}
