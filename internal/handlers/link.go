package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/clicklens/clicklens/internal/analytics"
	"github.com/clicklens/clicklens/internal/messaging"
	"github.com/clicklens/clicklens/internal/shortener"
	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"
)

// LinkHandler handles short link CRUD and redirect resolution.
type LinkHandler struct {
	registry             *shortener.Registry
	ledger               *shortener.Ledger
	baseURL              string
	publishLinkCreated   messaging.Publish[analytics.LinkCreatedEvent]
	publishClickRecorded messaging.Publish[analytics.ClickRecordedEvent]
	logger               *zap.Logger
}

// NewLinkHandler creates a new link handler.
func NewLinkHandler(
	registry *shortener.Registry,
	ledger *shortener.Ledger,
	baseURL string,
	publishLinkCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishClickRecorded messaging.Publish[analytics.ClickRecordedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		registry:             registry,
		ledger:               ledger,
		baseURL:              baseURL,
		publishLinkCreated:   publishLinkCreated,
		publishClickRecorded: publishClickRecorded,
		logger:               logger,
	}
}

// Shorten creates a new short link.
func (h *LinkHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	link, err := h.registry.Create(ctx, req.Body.OriginalURL, req.Body.Title)
	if err != nil {
		if errors.Is(err, shortener.ErrEmptyURL) {
			return nil, huma.Error400BadRequest("originalUrl must not be empty")
		}

		h.logger.Error("failed to create short link", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to save url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		ID:          link.ID,
		Code:        string(link.Code),
		OriginalURL: link.OriginalURL,
		Title:       link.Title,
		CreatedAt:   link.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishLinkCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	fullShortURL := fmt.Sprintf("%s/r/%s", h.baseURL, link.Code)

	resp := &ShortenResponse{}
	resp.Headers.Location = fullShortURL
	resp.Body.ID = link.ID
	resp.Body.ShortCode = string(link.Code)
	resp.Body.ShortURL = fullShortURL
	resp.Body.OriginalURL = link.OriginalURL
	resp.Body.Title = link.Title
	resp.Body.CreatedAt = link.CreatedAt

	return resp, nil
}

// Update applies partial changes to a link's title and target URL.
func (h *LinkHandler) Update(ctx context.Context, req *UpdateLinkRequest) (*UpdateLinkResponse, error) {
	update := shortener.LinkUpdate{
		Title:       req.Body.Title,
		OriginalURL: req.Body.OriginalURL,
	}

	if err := h.registry.Update(ctx, req.ID, update); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to update short link",
			zap.String("id", req.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to update url")
	}

	return &UpdateLinkResponse{}, nil
}

// Delete removes a link together with all of its clicks.
func (h *LinkHandler) Delete(ctx context.Context, req *DeleteLinkRequest) (*DeleteLinkResponse, error) {
	if err := h.registry.Delete(ctx, req.ID); err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short link not found")
		}

		h.logger.Error("failed to delete short link",
			zap.String("id", req.ID),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to delete url")
	}

	return &DeleteLinkResponse{}, nil
}

// Redirect resolves a short code and records the click. The redirect is the
// primary contract: a failure to record or publish the click is logged and
// never surfaced to the caller.
func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	link, err := h.registry.FindByCode(ctx, shortener.Code(req.Code))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return nil, huma.Error404NotFound("short url not found")
		}

		h.logger.Error("failed to look up short code",
			zap.String("code", req.Code),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	meta := RequestMetaFromContext(ctx)

	click, err := h.ledger.Record(ctx, link.ID, meta.ClientIP, meta.UserAgent)
	if err != nil {
		h.logger.Error("failed to record click",
			zap.String("code", req.Code),
			zap.Error(err),
		)
	}

	if click != nil {
		event := &analytics.ClickRecordedEvent{
			ClickID:   click.ID,
			URLID:     click.URLID,
			Code:      req.Code,
			Timestamp: click.Timestamp,
			ClientIP:  click.IP,
			Country:   click.Country,
			UserAgent: click.UserAgent,
			Referrer:  meta.Referrer,
		}

		if err := h.publishClickRecorded(event); err != nil {
			h.logger.Error("failed to publish click recorded event",
				zap.String("code", req.Code),
				zap.Error(err),
			)
		}
	}

	resp := &RedirectResponse{
		Status: http.StatusFound,
	}
	resp.Headers.Location = link.OriginalURL

	return resp, nil
}
