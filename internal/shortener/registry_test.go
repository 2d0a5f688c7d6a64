package shortener_test

import (
	"context"
	"testing"

	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/clicklens/clicklens/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*shortener.Registry, *store.MemoryStore) {
	t.Helper()

	memStore := store.NewMemoryStore()

	gen, err := shortener.NewCodeGenerator(shortener.DefaultCodeLength)
	require.NoError(t, err)

	return shortener.NewRegistry(memStore, gen), memStore
}

func TestRegistry_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a link with generated id and code", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		link, err := registry.Create(ctx, "https://example.com/path", "My Link")

		require.NoError(t, err)
		assert.NotEmpty(t, link.ID)
		assert.Len(t, string(link.Code), shortener.DefaultCodeLength)
		assert.Equal(t, "https://example.com/path", link.OriginalURL)
		assert.Equal(t, "My Link", link.Title)
		assert.False(t, link.CreatedAt.IsZero())
	})

	t.Run("prefixes https for schemeless input and defaults title to hostname", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		link, err := registry.Create(ctx, "example.com/a", "")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", link.OriginalURL)
		assert.Equal(t, "example.com", link.Title)
	})

	t.Run("rejects empty url", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		link, err := registry.Create(ctx, "", "title")

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortener.ErrEmptyURL)
	})

	t.Run("retries code generation on collision", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		codes := []string{"taken1", "taken1", "free42"}
		var calls int
		gen := shortener.CodeGenerator(func() string {
			code := codes[calls]
			calls++
			return code
		})
		registry := shortener.NewRegistry(memStore, gen)

		first, err := registry.Create(ctx, "https://example.com/1", "")
		require.NoError(t, err)
		assert.Equal(t, shortener.Code("taken1"), first.Code)

		second, err := registry.Create(ctx, "https://example.com/2", "")
		require.NoError(t, err)
		assert.Equal(t, shortener.Code("free42"), second.Code)
	})

	t.Run("fails when no free code can be found", func(t *testing.T) {
		memStore := store.NewMemoryStore()
		gen := shortener.CodeGenerator(func() string { return "always" })
		registry := shortener.NewRegistry(memStore, gen)

		_, err := registry.Create(ctx, "https://example.com/1", "")
		require.NoError(t, err)

		_, err = registry.Create(ctx, "https://example.com/2", "")
		assert.Error(t, err)
	})
}

func TestRegistry_FindByCode(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the link created with that code", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(ctx, "https://example.com", "")
		require.NoError(t, err)

		found, err := registry.FindByCode(ctx, created.Code)

		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, created.OriginalURL, found.OriginalURL)
	})

	t.Run("returns ErrNotFound for unknown codes", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.FindByCode(ctx, "zzzzzz")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestRegistry_FindByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the link created with that id", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(ctx, "https://example.com", "")
		require.NoError(t, err)

		found, err := registry.FindByID(ctx, created.ID)

		require.NoError(t, err)
		assert.Equal(t, created.Code, found.Code)
	})

	t.Run("returns ErrNotFound for unknown ids", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		_, err := registry.FindByID(ctx, "does-not-exist")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestRegistry_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("applies partial updates and normalizes the url", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(ctx, "https://example.com", "Old")
		require.NoError(t, err)

		newTitle := "New"
		newURL := "other.org/page"
		err = registry.Update(ctx, created.ID, shortener.LinkUpdate{
			Title:       &newTitle,
			OriginalURL: &newURL,
		})
		require.NoError(t, err)

		updated, err := registry.FindByCode(ctx, created.Code)
		require.NoError(t, err)
		assert.Equal(t, "New", updated.Title)
		assert.Equal(t, "https://other.org/page", updated.OriginalURL)
		assert.Equal(t, created.Code, updated.Code)
		assert.Equal(t, created.ID, updated.ID)
	})

	t.Run("empty update is a no-op success", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		err := registry.Update(ctx, "does-not-exist", shortener.LinkUpdate{})

		require.NoError(t, err)
	})

	t.Run("returns ErrNotFound for unknown ids", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		title := "x"
		err := registry.Update(ctx, "does-not-exist", shortener.LinkUpdate{Title: &title})

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestRegistry_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the link", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		created, err := registry.Create(ctx, "https://example.com", "")
		require.NoError(t, err)

		require.NoError(t, registry.Delete(ctx, created.ID))

		_, err = registry.FindByCode(ctx, created.Code)
		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})

	t.Run("returns ErrNotFound for unknown ids", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		err := registry.Delete(ctx, "does-not-exist")

		assert.ErrorIs(t, err, shortener.ErrNotFound)
	})
}

func TestRegistry_List(t *testing.T) {
	ctx := context.Background()

	t.Run("returns links newest first", func(t *testing.T) {
		registry, _ := newTestRegistry(t)

		first, err := registry.Create(ctx, "https://example.com/1", "")
		require.NoError(t, err)
		second, err := registry.Create(ctx, "https://example.com/2", "")
		require.NoError(t, err)

		links, err := registry.List(ctx)

		require.NoError(t, err)
		require.Len(t, links, 2)
		// CreatedAt can tie at clock resolution; both orders list the
		// same two links.
		ids := []string{links[0].ID, links[1].ID}
		assert.Contains(t, ids, first.ID)
		assert.Contains(t, ids, second.ID)
	})
}
