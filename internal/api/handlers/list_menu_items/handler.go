package list_menu_items

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/salonapi"
)

const msgBackendUnavailable = "salon menu is temporarily unavailable"

type Handler struct {
	client   MenuClient
	pageSize int
	logger   Logger
}

func NewHandler(client MenuClient, pageSize int, logger Logger) *Handler {
	return &Handler{
		client:   client,
		pageSize: pageSize,
		logger:   logger,
	}
}

// Handle GET /api/v1/menu-items
// Query params: category (optional), q (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	q := r.URL.Query().Get("q")

	items, err := h.client.ListAllMenuItems(r.Context(), category, q, h.pageSize)
	if err != nil {
		var apiErr *salonapi.APIError
		if errors.As(err, &apiErr) {
			h.logger.Warn("GET /menu-items - Backend rejected request: status=%d, message=%s", apiErr.Status, apiErr.Message)
			handlers.RespondBadGateway(w, apiErr.Message)
			return
		}
		h.logger.Error("GET /menu-items - Failed to list menu items: category=%q, error=%v", category, err)
		handlers.RespondBadGateway(w, msgBackendUnavailable)
		return
	}

	h.logger.Info("GET /menu-items - Menu items listed: category=%q, count=%d", category, len(items))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(items))
}
