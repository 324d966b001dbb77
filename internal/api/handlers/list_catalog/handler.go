package list_catalog

import (
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

type Handler struct {
	catalog Catalog
	logger  Logger
}

func NewHandler(catalog Catalog, logger Logger) *Handler {
	return &Handler{
		catalog: catalog,
		logger:  logger,
	}
}

// Handle GET /api/v1/catalog
// Query params: category (optional, alias or category name; unknown value returns the whole catalog)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	options := h.catalog.ResolveOptions(category)

	h.logger.Info("GET /catalog - Options resolved: category=%q, count=%d", category, len(options))
	handlers.RespondJSON(w, http.StatusOK, &CatalogResponse{
		Category: category,
		Options:  handlers.FromServiceOptions(options),
		Total:    len(options),
	})
}
