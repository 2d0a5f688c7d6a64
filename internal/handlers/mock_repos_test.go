package handlers_test

import (
	"context"
	"errors"

	"github.com/clicklens/clicklens/internal/shortener"
)

var errMock = errors.New("mock store error")

// mockLinkRepo is a link repository whose operations can be forced to fail.
type mockLinkRepo struct {
	links        map[string]*shortener.ShortLink
	saveErr      error
	getByCodeErr error
	deleteErr    error
	listErr      error
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{links: make(map[string]*shortener.ShortLink)}
}

func (m *mockLinkRepo) Save(_ context.Context, link *shortener.ShortLink) error {
	if m.saveErr != nil {
		return m.saveErr
	}

	m.links[link.ID] = link

	return nil
}

func (m *mockLinkRepo) Update(_ context.Context, id string, update shortener.LinkUpdate) error {
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

func (m *mockLinkRepo) Delete(_ context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}

	if _, ok := m.links[id]; !ok {
		return shortener.ErrNotFound
	}

	delete(m.links, id)

	return nil
}

func (m *mockLinkRepo) GetByCode(_ context.Context, code shortener.Code) (*shortener.ShortLink, error) {
	if m.getByCodeErr != nil {
		return nil, m.getByCodeErr
	}

	for _, link := range m.links {
		if link.Code == code {
			return link, nil
		}
	}

	return nil, shortener.ErrNotFound
}

func (m *mockLinkRepo) GetByID(_ context.Context, id string) (*shortener.ShortLink, error) {
	link, ok := m.links[id]
	if !ok {
		return nil, shortener.ErrNotFound
	}

	return link, nil
}

func (m *mockLinkRepo) List(_ context.Context) ([]*shortener.ShortLink, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}

	links := make([]*shortener.ShortLink, 0, len(m.links))

	for _, link := range m.links {
		links = append(links, link)
	}

	return links, nil
}

// mockClickRepo is a click repository whose append can be forced to fail.
type mockClickRepo struct {
	clicks    []*shortener.ClickEvent
	appendErr error
}

func (m *mockClickRepo) Append(_ context.Context, event *shortener.ClickEvent) error {
	if m.appendErr != nil {
		return m.appendErr
	}

	m.clicks = append(m.clicks, event)

	return nil
}

func (m *mockClickRepo) ListByLink(_ context.Context, urlID string) ([]*shortener.ClickEvent, error) {
	var events []*shortener.ClickEvent

	for _, click := range m.clicks {
		if click.URLID == urlID {
			events = append(events, click)
		}
	}

	return events, nil
}

func (m *mockClickRepo) ListAll(_ context.Context) ([]*shortener.ClickEvent, error) {
	return m.clicks, nil
}
