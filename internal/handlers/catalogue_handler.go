package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/msquare-lighting/msquare-api/internal/services"
)

type CatalogueHandler struct {
	service services.CatalogueServiceInterface
}

func NewCatalogueHandler(service services.CatalogueServiceInterface) *CatalogueHandler {
	return &CatalogueHandler{service: service}
}

// List handles GET /catalogue
func (h *CatalogueHandler) List(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusServiceUnavailable, msgCatalogueDown, err)
		return
	}

	c.Header("Cache-Control", "public, max-age=300")
	c.JSON(http.StatusOK, items)
}
