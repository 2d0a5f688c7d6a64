package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/clicklens/clicklens/internal/analytics"
	"github.com/clicklens/clicklens/internal/analytics/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewNoop(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	assert.NotNil(t, noop)
}

func TestNoop_SaveLinkCreated(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.LinkCreatedEvent{
		ID:          "id-1",
		Code:        "abc123",
		OriginalURL: "https://example.com",
		Title:       "Example",
		CreatedAt:   time.Now(),
	}

	err := noop.SaveLinkCreated(context.Background(), event)

	require.NoError(t, err)
}

func TestNoop_SaveClickRecorded(t *testing.T) {
	noop := store.NewNoop(zap.NewNop())

	event := &analytics.ClickRecordedEvent{
		ClickID:   "c1",
		URLID:     "id-1",
		Code:      "abc123",
		Timestamp: time.Now(),
		ClientIP:  "1.2.3.4",
		Country:   "USA",
		UserAgent: "TestAgent/1.0",
	}

	err := noop.SaveClickRecorded(context.Background(), event)

	require.NoError(t, err)
}
