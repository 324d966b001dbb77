package list_staff

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

// Handle GET /api/v1/staff
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staff := h.catalog.Staff()

	h.logger.Info("GET /staff - Staff listed: count=%d", len(staff))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(staff))
}
