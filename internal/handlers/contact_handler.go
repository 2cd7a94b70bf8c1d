package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/internal/services"
	apperrors "github.com/msquare-lighting/msquare-api/pkg/errors"
)

type ContactHandler struct {
	service services.ContactServiceInterface
}

func NewContactHandler(service services.ContactServiceInterface) *ContactHandler {
	return &ContactHandler{service: service}
}

// Submit handles POST /contact. The rate limit is checked before the body
// is read.
func (h *ContactHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.service.Admit(ctx, ClientKey(c)); err != nil {
		respondError(c, http.StatusTooManyRequests, msgTooManyRequests, err)
		return
	}

	var sub models.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, msgValidationFailed, []string{msgInvalidBody},
			apperrors.InvalidInputError("body", err.Error()))
		return
	}

	err := h.service.Submit(ctx, &sub)
	var verr *apperrors.ValidationError
	switch {
	case err == nil:
		respondOK(c, http.StatusOK, msgContactAccepted)
	case errors.As(err, &verr):
		respondErrorWithDetails(c, http.StatusBadRequest, msgValidationFailed, verr.Violations, err)
	default:
		respondError(c, http.StatusInternalServerError, msgNotifyFailed, err)
	}
}
