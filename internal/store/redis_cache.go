package store

import (
	"context"
	"strconv"
	"time"

	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/redis/go-redis/v9"
)

// RedisCacheRepository wraps a link repository with Redis caching for the
// redirect hot path. Mutations invalidate the cached entry before hitting
// the underlying store.
type RedisCacheRepository struct {
	store  shortener.LinkRepository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.LinkRepository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store:  store,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

// Save stores the link in the underlying store and updates the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, link *shortener.ShortLink) error {
	if err := r.store.Save(ctx, link); err != nil {
		return err
	}

	// Write-through: populate cache after successful save
	r.cacheLink(ctx, link)

	return nil
}

// Update invalidates the cached entry and delegates to the store. The entry
// is looked up first so the code key can be dropped.
func (r *RedisCacheRepository) Update(ctx context.Context, id string, update shortener.LinkUpdate) error {
	r.invalidateByID(ctx, id)

	return r.store.Update(ctx, id, update)
}

// Delete invalidates the cached entry and delegates to the store, which
// cascades to the link's clicks.
func (r *RedisCacheRepository) Delete(ctx context.Context, id string) error {
	r.invalidateByID(ctx, id)

	return r.store.Delete(ctx, id)
}

// GetByCode retrieves a link by its code, checking the cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if link, err := r.getFromCache(ctx, code); err == nil {
		return link, nil
	}

	link, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	r.cacheLink(ctx, link)

	return link, nil
}

// GetByID always goes to the underlying store; only code lookups are cached.
func (r *RedisCacheRepository) GetByID(ctx context.Context, id string) (*shortener.ShortLink, error) {
	return r.store.GetByID(ctx, id)
}

// List always goes to the underlying store.
func (r *RedisCacheRepository) List(ctx context.Context) ([]*shortener.ShortLink, error) {
	return r.store.List(ctx)
}

func (r *RedisCacheRepository) getFromCache(ctx context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.ShortLink{
		ID:          result["id"],
		Code:        shortener.Code(result["code"]),
		OriginalURL: result["original_url"],
		Title:       result["title"],
		CreatedAt:   createdAt,
	}, nil
}

func (r *RedisCacheRepository) cacheLink(ctx context.Context, link *shortener.ShortLink) {
	pipe := r.client.Pipeline()
	key := r.prefix + string(link.Code)

	pipe.HSet(ctx, key, map[string]interface{}{
		"id":           link.ID,
		"code":         string(link.Code),
		"original_url": link.OriginalURL,
		"title":        link.Title,
		"created_at":   link.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

func (r *RedisCacheRepository) invalidateByID(ctx context.Context, id string) {
	link, err := r.store.GetByID(ctx, id)
	if err != nil {
		return
	}

	_ = r.client.Del(ctx, r.prefix+string(link.Code)).Err()
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.LinkRepository = (*RedisCacheRepository)(nil)
