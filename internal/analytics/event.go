package analytics

import "time"

// Topics for analytics events.
const (
	TopicLinkCreated   = "link.created"
	TopicClickRecorded = "click.recorded"
)

// LinkCreatedEvent is emitted when a URL is shortened.
type LinkCreatedEvent struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// ClickRecordedEvent is emitted when a redirect is resolved and its click
// recorded.
type ClickRecordedEvent struct {
	ClickID   string    `json:"clickId"`
	URLID     string    `json:"urlId"`
	Code      string    `json:"code"`
	Timestamp time.Time `json:"timestamp"`
	ClientIP  string    `json:"clientIp"`
	Country   string    `json:"country"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer,omitempty"`
}
