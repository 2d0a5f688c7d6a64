package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// RegisterRoutes registers all API routes.
func RegisterRoutes(api huma.API, links *LinkHandler, statsHandler *StatsHandler, health *HealthHandler) {
	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url",
		Method:        http.MethodPost,
		Path:          "/shorten",
		Summary:       "Create short link",
		Description:   "Creates a shortened URL. The title defaults to the target's hostname.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
	}, links.Shorten)

	huma.Register(api, huma.Operation{
		OperationID:   "update-link",
		Method:        http.MethodPut,
		Path:          "/urls/{id}",
		Summary:       "Update short link",
		Description:   "Updates the title and/or target URL of an existing link.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, links.Update)

	huma.Register(api, huma.Operation{
		OperationID:   "delete-link",
		Method:        http.MethodDelete,
		Path:          "/urls/{id}",
		Summary:       "Delete short link",
		Description:   "Deletes a link together with all of its recorded clicks.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusNoContent,
	}, links.Delete)

	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/r/{code}",
		Summary:     "Redirect to original URL",
		Description: "Resolves the short code, records a click, and redirects.",
		Tags:        []string{"Links"},
	}, links.Redirect)

	huma.Register(api, huma.Operation{
		OperationID: "get-stats",
		Method:      http.MethodGet,
		Path:        "/stats",
		Summary:     "Dashboard statistics",
		Description: "Returns all links and a freshly computed statistics snapshot.",
		Tags:        []string{"Stats"},
	}, statsHandler.Get)

	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, health.Check)
}
