package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCacheBasics(t *testing.T) {
	c := NewLocalCache(LocalConfig{MaxSize: 10, DefaultExpiration: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "a|1", []byte("one"), 0))
	require.NoError(t, c.Set(ctx, "a|2", []byte("two"), 0))
	require.NoError(t, c.Set(ctx, "b|1", []byte("other"), 0))

	v, ok := c.Get(ctx, "a|1")
	require.True(t, ok)
	assert.Equal(t, []byte("one"), v)

	require.NoError(t, c.DeletePrefix(ctx, "a|"))
	assert.False(t, c.Exists(ctx, "a|1"))
	assert.False(t, c.Exists(ctx, "a|2"))
	assert.True(t, c.Exists(ctx, "b|1"))

	require.NoError(t, c.Clear(ctx))
	assert.False(t, c.Exists(ctx, "b|1"))
}

func TestLocalCacheEviction(t *testing.T) {
	c := NewLocalCache(LocalConfig{MaxSize: 2, DefaultExpiration: time.Minute})
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", 1, 0))
	require.NoError(t, c.Set(ctx, "k2", 2, 0))
	require.NoError(t, c.Set(ctx, "k3", 3, 0))

	assert.False(t, c.Exists(ctx, "k1"), "oldest entry is evicted at capacity")
	assert.True(t, c.Exists(ctx, "k3"))
}
