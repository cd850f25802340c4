package httpx

import (
	"context"
	"log/slog"
	"net/http"
)

// CatalogService is the slice of the marketplace client the public
// browsing endpoints call.
type CatalogService interface {
	Categories(ctx context.Context) ([]map[string]any, error)
	Properties(ctx context.Context) ([]map[string]any, error)
}

// CatalogHandlers serves the guest browsing endpoints. The payloads pass
// through undecoded beyond the envelope; presentation happens client side.
type CatalogHandlers struct {
	Svc    CatalogService
	Logger *slog.Logger
}

// Categories handles GET /api/categories.
func (h *CatalogHandlers) Categories(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "categories", h.Svc.Categories)
}

// Properties handles GET /api/properties.
func (h *CatalogHandlers) Properties(w http.ResponseWriter, r *http.Request) {
	h.serveList(w, r, "properties", h.Svc.Properties)
}

func (h *CatalogHandlers) serveList(w http.ResponseWriter, r *http.Request, name string, fetch func(context.Context) ([]map[string]any, error)) {
	items, err := fetch(r.Context())
	if err != nil {
		logger := h.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.WarnContext(r.Context(), "catalog fetch failed", "list", name, "error", err)
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "upstream_error", Message: "Listings are unavailable right now. Please try again shortly."})
		return
	}
	if items == nil {
		items = []map[string]any{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"success": true, "data": items})
}
