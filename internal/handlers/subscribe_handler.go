package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/internal/services"
)

type SubscribeHandler struct {
	service services.NewsletterServiceInterface
}

func NewSubscribeHandler(service services.NewsletterServiceInterface) *SubscribeHandler {
	return &SubscribeHandler{service: service}
}

// Subscribe handles POST /subscribe
func (h *SubscribeHandler) Subscribe(c *gin.Context) {
	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidEmail, err)
		return
	}

	if err := h.service.Subscribe(c.Request.Context(), req.Email); err != nil {
		respondError(c, http.StatusBadRequest, msgInvalidEmail, err)
		return
	}

	respondOK(c, http.StatusOK, msgSubscribed)
}
