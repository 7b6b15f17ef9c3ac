//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/internal/infrastructure/cache"
)

func TestIdempotencyStore_Redis(t *testing.T) {
	ctx := context.Background()

	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	rdb, err := cache.NewRedis(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	st := cache.NewIdempotencyStore(rdb, time.Minute)

	id, err := st.Reserve(ctx, "u1:k1")
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = st.Reserve(ctx, "u1:k1")
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, st.Complete(ctx, "u1:k1", "order-1"))
	id, err = st.Reserve(ctx, "u1:k1")
	require.NoError(t, err)
	assert.Equal(t, "order-1", id)

	require.NoError(t, st.Release(ctx, "u1:k1"))
	id, err = st.Reserve(ctx, "u1:k1")
	require.NoError(t, err)
	assert.Empty(t, id)
}
