package services_test

import (
	"context"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockLimiter is a mock implementation of ratelimit.Limiter
type MockLimiter struct {
	mock.Mock
}

func (m *MockLimiter) Allow(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

// MockNotifier is a mock implementation of notify.Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, sub *models.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// MockCatalogueSource is a mock implementation of cache.CatalogueSource
type MockCatalogueSource struct {
	mock.Mock
}

func (m *MockCatalogueSource) Load(ctx context.Context) ([]models.CatalogueItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CatalogueItem), args.Error(1)
}
