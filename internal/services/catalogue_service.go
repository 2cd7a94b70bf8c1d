package services

import (
	"context"

	"github.com/msquare-lighting/msquare-api/internal/cache"
	"github.com/msquare-lighting/msquare-api/internal/models"
)

// CatalogueService serves the product catalogue from the in-memory cache
type CatalogueService struct {
	cache *cache.CatalogueCache
}

func NewCatalogueService(catalogueCache *cache.CatalogueCache) *CatalogueService {
	return &CatalogueService{cache: catalogueCache}
}

func (s *CatalogueService) Items(ctx context.Context) ([]models.CatalogueItem, error) {
	return s.cache.Get(ctx)
}
