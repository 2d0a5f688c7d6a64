package shortener

import (
	"context"
	"time"

	"github.com/clicklens/clicklens/internal/geo"
	"github.com/google/uuid"
)

// Ledger records resolved redirects as click events.
type Ledger struct {
	store    ClickRepository
	resolver geo.Resolver
}

// NewLedger creates a new click ledger.
func NewLedger(store ClickRepository, resolver geo.Resolver) *Ledger {
	return &Ledger{
		store:    store,
		resolver: resolver,
	}
}

// Record appends one click for the given link. The country is derived from
// the caller's address at insert time. Duplicates are valid: there is no
// uniqueness constraint on clicks.
func (l *Ledger) Record(ctx context.Context, urlID, addr, userAgent string) (*ClickEvent, error) {
	event := &ClickEvent{
		ID:        uuid.NewString(),
		URLID:     urlID,
		Timestamp: time.Now().UTC(),
		IP:        addr,
		Country:   l.resolver.Resolve(addr),
		UserAgent: userAgent,
	}

	if err := l.store.Append(ctx, event); err != nil {
		return nil, err
	}

	return event, nil
}

// ListByLink returns all clicks for one link, most recent first.
func (l *Ledger) ListByLink(ctx context.Context, urlID string) ([]*ClickEvent, error) {
	return l.store.ListByLink(ctx, urlID)
}

// ListAll returns every click, most recent first.
func (l *Ledger) ListAll(ctx context.Context) ([]*ClickEvent, error) {
	return l.store.ListAll(ctx)
}
