package store

import (
	"context"

	"github.com/clicklens/clicklens/internal/analytics"
	"go.uber.org/zap"
)

// Noop is an analytics.Store that only logs events. It stands in for a
// warehouse sink in local and test environments.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a new no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created event received",
		zap.String("code", event.Code),
		zap.String("originalUrl", event.OriginalURL),
		zap.String("title", event.Title),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveClickRecorded(_ context.Context, event *analytics.ClickRecordedEvent) error {
	n.logger.Info("click recorded event received",
		zap.String("code", event.Code),
		zap.String("country", event.Country),
		zap.Time("timestamp", event.Timestamp),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
