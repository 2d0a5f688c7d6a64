//go:build integration

package store_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/clicklens/clicklens/internal/store"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisAddr() string {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

func TestRedisCacheRepositoryIntegration(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr: getRedisAddr(),
	})
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	newLink := func(code string) *shortener.ShortLink {
		return &shortener.ShortLink{
			ID:          uuid.NewString(),
			Code:        shortener.Code(code),
			OriginalURL: "https://example.com",
			Title:       "example.com",
			CreatedAt:   time.Now().UTC().Truncate(time.Second),
		}
	}

	t.Run("save populates the cache", func(t *testing.T) {
		cached := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)
		link := newLink("rctestcode1")
		defer client.Del(ctx, "link:"+string(link.Code))

		err := cached.Save(ctx, link)
		require.NoError(t, err)

		fields, err := client.HGetAll(ctx, "link:"+string(link.Code)).Result()
		require.NoError(t, err)
		assert.Equal(t, link.ID, fields["id"])
		assert.Equal(t, link.OriginalURL, fields["original_url"])
	})

	t.Run("get by code served from cache", func(t *testing.T) {
		backing := store.NewMemoryStore()
		cached := store.NewRedisCacheRepository(backing, client, time.Minute)
		link := newLink("rctestcode2")
		defer client.Del(ctx, "link:"+string(link.Code))

		require.NoError(t, cached.Save(ctx, link))

		// Remove from the backing store; the cache should still answer.
		require.NoError(t, backing.Delete(ctx, link.ID))

		got, err := cached.GetByCode(ctx, link.Code)
		require.NoError(t, err)
		assert.Equal(t, link.ID, got.ID)
		assert.Equal(t, link.OriginalURL, got.OriginalURL)
		assert.True(t, link.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("miss falls through and backfills", func(t *testing.T) {
		backing := store.NewMemoryStore()
		cached := store.NewRedisCacheRepository(backing, client, time.Minute)
		link := newLink("rctestcode3")
		defer client.Del(ctx, "link:"+string(link.Code))

		require.NoError(t, backing.Save(ctx, link))

		got, err := cached.GetByCode(ctx, link.Code)
		require.NoError(t, err)
		assert.Equal(t, link.ID, got.ID)

		fields, err := client.HGetAll(ctx, "link:"+string(link.Code)).Result()
		require.NoError(t, err)
		assert.Equal(t, link.ID, fields["id"])
	})

	t.Run("delete invalidates the cache", func(t *testing.T) {
		cached := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)
		link := newLink("rctestcode4")
		defer client.Del(ctx, "link:"+string(link.Code))

		require.NoError(t, cached.Save(ctx, link))
		require.NoError(t, cached.Delete(ctx, link.ID))

		exists, err := client.Exists(ctx, "link:"+string(link.Code)).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)

		_, err = cached.GetByCode(ctx, link.Code)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("update invalidates the cache", func(t *testing.T) {
		cached := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)
		link := newLink("rctestcode5")
		defer client.Del(ctx, "link:"+string(link.Code))

		require.NoError(t, cached.Save(ctx, link))

		title := "renamed"
		require.NoError(t, cached.Update(ctx, link.ID, shortener.LinkUpdate{Title: &title}))

		got, err := cached.GetByCode(ctx, link.Code)
		require.NoError(t, err)
		assert.Equal(t, "renamed", got.Title)
	})

	t.Run("get non-existent returns ErrNotFound", func(t *testing.T) {
		cached := store.NewRedisCacheRepository(store.NewMemoryStore(), client, time.Minute)

		got, err := cached.GetByCode(ctx, "rcnonexistent")

		assert.Nil(t, got)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}
