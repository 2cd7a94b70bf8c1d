package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/msquare-lighting/msquare-api/pkg/logger"
	"github.com/msquare-lighting/msquare-api/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

// CatalogueSource loads the full product catalogue
type CatalogueSource interface {
	Load(ctx context.Context) ([]models.CatalogueItem, error)
}

const (
	catalogueCacheKey  = "catalogue:all"
	catalogueCacheName = "catalogue"
	cleanupInterval    = time.Hour
)

// ErrCatalogueNotReady is returned before a successful Initialize
var ErrCatalogueNotReady = fmt.Errorf("catalogue cache not initialized")

// CatalogueCache keeps the product catalogue in memory and reloads it from
// its source once the entry expires.
type CatalogueCache struct {
	cache  *gocache.Cache
	source CatalogueSource
	ttl    time.Duration
	mu     sync.RWMutex
	ready  bool
}

// NewCatalogueCache creates a catalogue cache. A non-positive ttl keeps the
// loaded catalogue until the process exits.
func NewCatalogueCache(source CatalogueSource, ttl time.Duration) *CatalogueCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &CatalogueCache{
		cache:  gocache.New(ttl, cleanupInterval),
		source: source,
		ttl:    ttl,
	}
}

// Initialize performs the initial load (synchronous, blocks until ready)
func (cc *CatalogueCache) Initialize(ctx context.Context) error {
	logger.Info("Initializing catalogue cache...")
	items, err := cc.refresh(ctx)
	if err != nil {
		logger.Error("Failed to initialize catalogue cache", zap.Error(err))
		return err
	}

	cc.mu.Lock()
	cc.ready = true
	cc.mu.Unlock()

	logger.Info("Catalogue cache initialized successfully", zap.Int("count", len(items)))
	return nil
}

// IsReady returns true if the cache has been successfully initialized
func (cc *CatalogueCache) IsReady() bool {
	cc.mu.RLock()
	defer cc.mu.RUnlock()
	return cc.ready
}

// Get returns the cached catalogue, reloading it on a miss
func (cc *CatalogueCache) Get(ctx context.Context) ([]models.CatalogueItem, error) {
	if !cc.IsReady() {
		return nil, ErrCatalogueNotReady
	}

	if data, found := cc.cache.Get(catalogueCacheKey); found {
		items, ok := data.([]models.CatalogueItem)
		if ok {
			metrics.CacheHits.WithLabelValues(catalogueCacheName).Inc()
			return items, nil
		}
		logger.Error("Invalid catalogue cache data type")
		cc.cache.Delete(catalogueCacheKey)
	}

	metrics.CacheMisses.WithLabelValues(catalogueCacheName).Inc()
	logger.Info("Catalogue cache miss, reloading")
	return cc.refresh(ctx)
}

func (cc *CatalogueCache) refresh(ctx context.Context) ([]models.CatalogueItem, error) {
	items, err := cc.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalogue: %w", err)
	}
	if items == nil {
		items = []models.CatalogueItem{}
	}

	cc.cache.Set(catalogueCacheKey, items, gocache.DefaultExpiration)
	metrics.CacheSize.WithLabelValues(catalogueCacheName).Set(float64(len(items)))

	logger.Debug("Catalogue cache refreshed", zap.Int("count", len(items)))
	return items, nil
}
