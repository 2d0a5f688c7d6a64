package analytics

import "context"

// Store defines the interface for persisting analytics events downstream of
// the message broker.
type Store interface {
	SaveLinkCreated(ctx context.Context, event *LinkCreatedEvent) error
	SaveClickRecorded(ctx context.Context, event *ClickRecordedEvent) error
}

// NewLinkCreatedHandler adapts the store into a typed consumer handler.
func NewLinkCreatedHandler(store Store) func(ctx context.Context, event *LinkCreatedEvent) error {
	return store.SaveLinkCreated
}

// NewClickRecordedHandler adapts the store into a typed consumer handler.
func NewClickRecordedHandler(store Store) func(ctx context.Context, event *ClickRecordedEvent) error {
	return store.SaveClickRecorded
}
