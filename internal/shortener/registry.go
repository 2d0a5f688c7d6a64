package shortener

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// maxCodeAttempts bounds collision retries when assigning a new short code.
const maxCodeAttempts = 5

// Registry manages the lifecycle of short links.
type Registry struct {
	store        LinkRepository
	generateCode CodeGenerator
}

// NewRegistry creates a new link registry.
func NewRegistry(store LinkRepository, generator CodeGenerator) *Registry {
	return &Registry{
		store:        store,
		generateCode: generator,
	}
}

// Create normalizes and persists a new short link. The title defaults to the
// hostname of the normalized URL when omitted. The short code is generated
// and re-generated on collision until a free one is found.
func (r *Registry) Create(ctx context.Context, originalURL, title string) (*ShortLink, error) {
	if originalURL == "" {
		return nil, ErrEmptyURL
	}

	normalized := NormalizeURL(originalURL)
	if title == "" {
		title = TitleFromURL(normalized)
	}

	code, err := r.freeCode(ctx)
	if err != nil {
		return nil, err
	}

	link := &ShortLink{
		ID:          uuid.NewString(),
		Code:        code,
		OriginalURL: normalized,
		Title:       title,
		CreatedAt:   time.Now().UTC(),
	}

	if err := r.store.Save(ctx, link); err != nil {
		return nil, err
	}

	return link, nil
}

func (r *Registry) freeCode(ctx context.Context) (Code, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := Code(r.generateCode())

		_, err := r.store.GetByCode(ctx, code)
		if errors.Is(err, ErrNotFound) {
			return code, nil
		}

		if err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("could not find a free short code in %d attempts", maxCodeAttempts)
}

// Update applies a partial update to title and/or target URL. An update with
// no fields is a no-op success. The target URL is normalized the same way as
// in Create.
func (r *Registry) Update(ctx context.Context, id string, update LinkUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	if update.OriginalURL != nil {
		normalized := NormalizeURL(*update.OriginalURL)
		update.OriginalURL = &normalized
	}

	return r.store.Update(ctx, id, update)
}

// Delete removes the link and all clicks that reference it. Deleting an
// unknown id returns ErrNotFound.
func (r *Registry) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, id)
}

// FindByCode looks up a live link by its short code.
func (r *Registry) FindByCode(ctx context.Context, code Code) (*ShortLink, error) {
	return r.store.GetByCode(ctx, code)
}

// FindByID looks up a live link by its id.
func (r *Registry) FindByID(ctx context.Context, id string) (*ShortLink, error) {
	return r.store.GetByID(ctx, id)
}

// List returns all live links, newest first.
func (r *Registry) List(ctx context.Context) ([]*ShortLink, error) {
	return r.store.List(ctx)
}
