package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-publisher/internal/config"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

func setupTestCache(t *testing.T) *Cache {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	t.Cleanup(func() { mr.Close() })

	cfg := config.RedisConnection{
		AddressRedis: mr.Addr(),
		Password:     "",
		DB:           0,
		User:         "",
	}

	cache, err := InitServer(context.Background(), cfg)
	require.NoError(t, err)
	return cache
}

func TestSetAndGet(t *testing.T) {
	cache := setupTestCache(t)

	expected := models.Post{ID: 7, Title: "Заметка", Content: "текст", IsPublished: true}
	err := cache.Set("post:7", expected, time.Minute)
	require.NoError(t, err)

	var actual models.Post
	found, err := cache.Get("post:7", &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Title, actual.Title)
}

func TestGetNotFound(t *testing.T) {
	cache := setupTestCache(t)

	var out models.Post
	found, err := cache.Get("no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache := setupTestCache(t)

	require.NoError(t, cache.Set("post:1", models.Post{ID: 1}, time.Minute))
	require.NoError(t, cache.Invalidate("post:1"))

	var out models.Post
	found, err := cache.Get("post:1", &out)
	require.NoError(t, err)
	assert.False(t, found)
}
