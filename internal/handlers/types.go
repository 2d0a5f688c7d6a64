package handlers

import (
	"time"

	"github.com/clicklens/clicklens/internal/stats"
)

// ShortenRequest is the request body for creating a short link.
type ShortenRequest struct {
	Body struct {
		OriginalURL string `doc:"The URL to shorten"                      example:"https://example.com/very/long/path" json:"originalUrl"`
		Title       string `doc:"Display title, defaults to the hostname" example:"Example"                            json:"title,omitempty" required:"false"`
	}
}

// ShortenResponse is the response for a successfully created short link.
type ShortenResponse struct {
	Headers struct {
		Location string `doc:"The short URL location" header:"Location"`
	}
	Body struct {
		ID          string    `doc:"The link id"        json:"id"`
		ShortCode   string    `doc:"The short code"     json:"shortCode"`
		ShortURL    string    `doc:"The full short URL" json:"shortUrl"`
		OriginalURL string    `doc:"The target URL"     json:"originalUrl"`
		Title       string    `doc:"The display title"  json:"title"`
		CreatedAt   time.Time `doc:"Creation time"      json:"createdAt"`
	}
}

// UpdateLinkRequest is the request for updating a short link's mutable
// fields. Short code and id never change.
type UpdateLinkRequest struct {
	ID   string `doc:"The link id" path:"id"`
	Body struct {
		Title       *string `doc:"New display title" json:"title,omitempty"       required:"false"`
		OriginalURL *string `doc:"New target URL"    json:"originalUrl,omitempty" required:"false"`
	}
}

// UpdateLinkResponse is the empty response for a successful update.
type UpdateLinkResponse struct{}

// DeleteLinkRequest is the request for deleting a short link and its clicks.
type DeleteLinkRequest struct {
	ID string `doc:"The link id" path:"id"`
}

// DeleteLinkResponse is the empty response for a successful delete.
type DeleteLinkResponse struct{}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	Code string `doc:"The short code" example:"aB3xZ9" path:"code"`
}

// RedirectResponse is the redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}

// LinkPayload is one short link as rendered in the stats response.
type LinkPayload struct {
	ID          string    `json:"id"`
	ShortCode   string    `json:"shortCode"`
	OriginalURL string    `json:"originalUrl"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StatsResponse carries the full link list and the derived statistics
// snapshot consumed by the dashboard.
type StatsResponse struct {
	Body struct {
		URLs  []LinkPayload   `json:"urls"`
		Stats *stats.Snapshot `json:"stats"`
	}
}
