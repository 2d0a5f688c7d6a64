package store

import (
	"context"
	"sort"
	"sync"

	"github.com/clicklens/clicklens/internal/shortener"
)

// MemoryStore is an in-memory implementation of both the link repository and
// the click repository. Links and clicks share one lock, so the cascading
// delete is atomic with respect to readers.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[string]*shortener.ShortLink // id -> link
	codes  map[shortener.Code]string       // code -> id
	clicks []*shortener.ClickEvent         // append order
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		links: make(map[string]*shortener.ShortLink),
		codes: make(map[shortener.Code]string),
	}
}

func (m *MemoryStore) Save(_ context.Context, link *shortener.ShortLink) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *link
	m.links[link.ID] = &copied
	m.codes[link.Code] = link.ID

	return nil
}

func (m *MemoryStore) Update(_ context.Context, id string, update shortener.LinkUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return shortener.ErrNotFound
	}

	if update.Title != nil {
		link.Title = *update.Title
	}

	if update.OriginalURL != nil {
		link.OriginalURL = *update.OriginalURL
	}

	return nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[id]
	if !ok {
		return shortener.ErrNotFound
	}

	delete(m.codes, link.Code)
	delete(m.links, id)

	kept := m.clicks[:0]

	for _, click := range m.clicks {
		if click.URLID != id {
			kept = append(kept, click)
		}
	}

	m.clicks = kept

	return nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.codes[code]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	copied := *m.links[id]

	return &copied, nil
}

func (m *MemoryStore) GetByID(_ context.Context, id string) (*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[id]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	copied := *link

	return &copied, nil
}

func (m *MemoryStore) List(_ context.Context) ([]*shortener.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	links := make([]*shortener.ShortLink, 0, len(m.links))

	for _, link := range m.links {
		copied := *link
		links = append(links, &copied)
	}

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt.After(links[j].CreatedAt)
	})

	return links, nil
}

func (m *MemoryStore) Append(_ context.Context, event *shortener.ClickEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *event
	m.clicks = append(m.clicks, &copied)

	return nil
}

func (m *MemoryStore) ListByLink(_ context.Context, urlID string) ([]*shortener.ClickEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*shortener.ClickEvent, 0)

	for _, click := range m.clicks {
		if click.URLID == urlID {
			copied := *click
			events = append(events, &copied)
		}
	}

	sortClicksNewestFirst(events)

	return events, nil
}

func (m *MemoryStore) ListAll(_ context.Context) ([]*shortener.ClickEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]*shortener.ClickEvent, 0, len(m.clicks))

	for _, click := range m.clicks {
		copied := *click
		events = append(events, &copied)
	}

	sortClicksNewestFirst(events)

	return events, nil
}

func sortClicksNewestFirst(events []*shortener.ClickEvent) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp.After(events[j].Timestamp)
	})
}

// Compile-time checks.
var (
	_ shortener.LinkRepository  = (*MemoryStore)(nil)
	_ shortener.ClickRepository = (*MemoryStore)(nil)
)
