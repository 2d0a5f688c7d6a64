// Package geo maps client addresses to country labels for click analytics.
package geo

import (
	"strconv"
	"strings"
)

// Unknown is the fallback label when an address cannot be resolved.
const Unknown = "Unknown"

// Resolver maps a network address to a country label. Implementations are
// pure functions: same address, same label, no side effects, never empty.
type Resolver interface {
	Resolve(addr string) string
}

// OctetResolver derives a country from the leading numeric segment of the
// address: segment mod len(labels). Not real geolocation, just a stable
// mapping so the same address always yields the same label.
type OctetResolver struct {
	labels []string
}

// DefaultCountries is the label set used by the default resolver.
var DefaultCountries = []string{
	"Japan", "USA", "Germany", "UK", "France", "Canada", "Australia", "South Korea",
}

// NewOctetResolver creates a resolver over the given label set, falling back
// to DefaultCountries when none is given.
func NewOctetResolver(labels []string) *OctetResolver {
	if len(labels) == 0 {
		labels = DefaultCountries
	}

	return &OctetResolver{labels: labels}
}

func (r *OctetResolver) Resolve(addr string) string {
	segment, _, _ := strings.Cut(addr, ".")

	octet, err := strconv.Atoi(segment)
	if err != nil || octet < 0 {
		return r.labels[0]
	}

	return r.labels[octet%len(r.labels)]
}

// TableResolver resolves addresses against a fixed table keyed by address
// prefix, standing in for a real geolocation database. Unmatched addresses
// map to Unknown.
type TableResolver struct {
	entries map[string]string
}

// NewTableResolver creates a resolver over a prefix table. Keys are matched
// against the start of the address; the first matching entry wins in map
// iteration order, so callers should keep prefixes disjoint.
func NewTableResolver(entries map[string]string) *TableResolver {
	return &TableResolver{entries: entries}
}

func (r *TableResolver) Resolve(addr string) string {
	for prefix, country := range r.entries {
		if strings.HasPrefix(addr, prefix) {
			return country
		}
	}

	return Unknown
}
