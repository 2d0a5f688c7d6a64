package shortener

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when no record matches the given id or code.
	ErrNotFound = errors.New("short link not found")

	// ErrEmptyURL is returned when a create is attempted with no target URL.
	ErrEmptyURL = errors.New("original url must not be empty")
)

// LinkRepository defines storage operations for short links.
//
// Delete removes the link together with every click that references it, as
// one atomic unit relative to concurrent readers.
type LinkRepository interface {
	Save(ctx context.Context, link *ShortLink) error
	Update(ctx context.Context, id string, update LinkUpdate) error
	Delete(ctx context.Context, id string) error
	GetByCode(ctx context.Context, code Code) (*ShortLink, error)
	GetByID(ctx context.Context, id string) (*ShortLink, error)

	// List returns all live links ordered by creation time, newest first.
	List(ctx context.Context) ([]*ShortLink, error)
}

// ClickRepository defines storage operations for the append-only click ledger.
type ClickRepository interface {
	Append(ctx context.Context, event *ClickEvent) error

	// ListByLink returns all clicks for one link, most recent first.
	ListByLink(ctx context.Context, urlID string) ([]*ClickEvent, error)

	// ListAll returns every click across all links, most recent first.
	ListAll(ctx context.Context) ([]*ClickEvent, error)
}
