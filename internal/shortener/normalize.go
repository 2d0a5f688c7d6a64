package shortener

import (
	"net/url"
	"strings"
)

// NormalizeURL ensures the target URL carries a scheme, prefixing https://
// when none is present. The rest of the URL is stored as given.
func NormalizeURL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	if !strings.Contains(rawURL, "://") {
		return "https://" + rawURL
	}

	return rawURL
}

// TitleFromURL derives a display title from a normalized URL: its hostname,
// or the raw input when it cannot be parsed.
func TitleFromURL(normalizedURL string) string {
	u, err := url.Parse(normalizedURL)
	if err == nil && u.Hostname() != "" {
		return u.Hostname()
	}

	return normalizedURL
}
