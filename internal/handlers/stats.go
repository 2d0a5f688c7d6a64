package handlers

import (
	"context"

	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/clicklens/clicklens/internal/stats"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// StatsHandler serves the dashboard payload: every live link plus a freshly
// computed statistics snapshot.
type StatsHandler struct {
	registry   *shortener.Registry
	aggregator *stats.Aggregator
	logger     *zap.Logger
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(
	registry *shortener.Registry, aggregator *stats.Aggregator, logger *zap.Logger,
) *StatsHandler {
	return &StatsHandler{
		registry:   registry,
		aggregator: aggregator,
		logger:     logger,
	}
}

// Get returns the link list and the current statistics snapshot.
func (h *StatsHandler) Get(ctx context.Context, _ *struct{}) (*StatsResponse, error) {
	links, err := h.registry.List(ctx)
	if err != nil {
		h.logger.Error("failed to list short links", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load stats")
	}

	snapshot, err := h.aggregator.Compute(ctx)
	if err != nil {
		h.logger.Error("failed to compute stats", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to load stats")
	}

	payload := make([]LinkPayload, 0, len(links))

	for _, link := range links {
		payload = append(payload, LinkPayload{
			ID:          link.ID,
			ShortCode:   string(link.Code),
			OriginalURL: link.OriginalURL,
			Title:       link.Title,
			CreatedAt:   link.CreatedAt,
		})
	}

	resp := &StatsResponse{}
	resp.Body.URLs = payload
	resp.Body.Stats = snapshot

	return resp, nil
}
