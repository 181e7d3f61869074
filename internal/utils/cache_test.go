package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedValue struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestJSONHelpers(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	ctx := context.Background()

	var got cachedValue
	found, err := GetJSON(ctx, rdb, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetJSON(ctx, rdb, "k", cachedValue{Name: "a", Count: 2}, time.Minute))
	found, err = GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedValue{Name: "a", Count: 2}, got)

	mr.FastForward(2 * time.Minute)
	found, err = GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found, "expired keys are reported missing")

	require.NoError(t, SetJSON(ctx, rdb, "k", cachedValue{Name: "b"}, time.Minute))
	require.NoError(t, DeleteKey(ctx, rdb, "k"))
	found, err = GetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
