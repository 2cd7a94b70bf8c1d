package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msquare-lighting/msquare-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	items []models.CatalogueItem
	err   error
	calls int
}

func (s *stubSource) Load(context.Context) ([]models.CatalogueItem, error) {
	s.calls++
	return s.items, s.err
}

func TestCatalogueCache_NotReadyBeforeInitialize(t *testing.T) {
	cc := NewCatalogueCache(&stubSource{}, time.Minute)

	assert.False(t, cc.IsReady())
	_, err := cc.Get(context.Background())
	assert.ErrorIs(t, err, ErrCatalogueNotReady)
}

func TestCatalogueCache_InitializeAndHit(t *testing.T) {
	src := &stubSource{items: []models.CatalogueItem{{Model: "MS-101", Wattage: "12W"}}}
	cc := NewCatalogueCache(src, time.Minute)
	ctx := context.Background()

	require.NoError(t, cc.Initialize(ctx))
	assert.True(t, cc.IsReady())

	items, err := cc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, src.items, items)

	_, err = cc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestCatalogueCache_InitializeFailure(t *testing.T) {
	cc := NewCatalogueCache(&stubSource{err: errors.New("no such file")}, time.Minute)

	err := cc.Initialize(context.Background())
	assert.ErrorContains(t, err, "no such file")
	assert.False(t, cc.IsReady())
}

func TestCatalogueCache_ReloadsAfterExpiry(t *testing.T) {
	src := &stubSource{items: []models.CatalogueItem{{Model: "MS-101"}}}
	cc := NewCatalogueCache(src, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, cc.Initialize(ctx))

	src.items = []models.CatalogueItem{{Model: "MS-101"}, {Model: "MS-202"}}
	time.Sleep(40 * time.Millisecond)

	items, err := cc.Get(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 2)
	assert.Equal(t, 2, src.calls)
}

func TestCatalogueCache_EmptyCatalogue(t *testing.T) {
	cc := NewCatalogueCache(&stubSource{}, 0)
	ctx := context.Background()
	require.NoError(t, cc.Initialize(ctx))

	items, err := cc.Get(ctx)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}
