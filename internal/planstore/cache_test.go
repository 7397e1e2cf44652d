package planstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/patrickwarner/planforge/internal/observability"
)

func newTestCache(t *testing.T) (*CachedStore, *Memory, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	inner := NewMemory()
	cached, err := InitRedisCache(inner, mr.Addr(), time.Minute, zap.NewNop(), &observability.MockMetricsRegistry{})
	require.NoError(t, err)
	t.Cleanup(cached.Close)
	return cached, inner, mr
}

func TestCachedStoreReadThrough(t *testing.T) {
	cached, _, mr := newTestCache(t)
	seedPlan(t, cached, 1, 9)
	ctx := context.Background()

	plan, err := cached.GetPlan(ctx, 1, 9)
	require.NoError(t, err)
	assert.Len(t, plan.Periods, 2)
	assert.True(t, mr.Exists(planKey(1, 9)), "first read must populate the cache")

	again, err := cached.GetPlan(ctx, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, plan, again)
}

func TestCachedStoreServesFromCache(t *testing.T) {
	cached, inner, _ := newTestCache(t)
	seedPlan(t, cached, 1, 9)
	ctx := context.Background()

	_, err := cached.GetPlan(ctx, 1, 9)
	require.NoError(t, err)

	// drop the plan behind the cache's back; the cached copy still serves
	_, err = inner.DeletePlan(ctx, 1, 9)
	require.NoError(t, err)

	plan, err := cached.GetPlan(ctx, 1, 9)
	require.NoError(t, err)
	assert.Len(t, plan.Periods, 2)
}

func TestCachedStoreDeleteInvalidates(t *testing.T) {
	cached, _, mr := newTestCache(t)
	seedPlan(t, cached, 1, 9)
	ctx := context.Background()

	_, err := cached.GetPlan(ctx, 1, 9)
	require.NoError(t, err)
	require.True(t, mr.Exists(planKey(1, 9)))

	deleted, err := cached.DeletePlan(ctx, 1, 9)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.False(t, mr.Exists(planKey(1, 9)))

	_, err = cached.GetPlan(ctx, 1, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCachedStoreCorruptEntryEvicted(t *testing.T) {
	cached, _, mr := newTestCache(t)
	seedPlan(t, cached, 1, 9)
	ctx := context.Background()

	require.NoError(t, mr.Set(planKey(1, 9), "{not json"))

	plan, err := cached.GetPlan(ctx, 1, 9)
	require.NoError(t, err)
	assert.Len(t, plan.Periods, 2)

	// the bad entry was replaced with the real plan
	raw, err := mr.Get(planKey(1, 9))
	require.NoError(t, err)
	assert.NotEqual(t, "{not json", raw)
}

func TestCachedStoreNotFoundPassesThrough(t *testing.T) {
	cached, _, _ := newTestCache(t)

	_, err := cached.GetPlan(context.Background(), 404, 9)
	assert.ErrorIs(t, err, ErrNotFound)
}
