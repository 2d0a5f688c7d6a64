package shortener

import "time"

// Code represents a short URL code.
type Code string

// ShortLink represents one stored shortening: a short code mapped to a
// target URL plus display metadata.
type ShortLink struct {
	ID          string
	Code        Code
	OriginalURL string
	Title       string
	CreatedAt   time.Time
}

// ClickEvent is an immutable record of one resolved redirect.
type ClickEvent struct {
	ID        string
	URLID     string
	Timestamp time.Time
	IP        string
	Country   string
	UserAgent string
}

// LinkUpdate carries a partial update to a ShortLink. Nil fields are left
// untouched.
type LinkUpdate struct {
	Title       *string
	OriginalURL *string
}

// IsEmpty reports whether the update carries no fields.
func (u LinkUpdate) IsEmpty() bool {
	return u.Title == nil && u.OriginalURL == nil
}
