package get_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
)

type Handler struct {
	store  SessionStore
	logger Logger
}

func NewHandler(store SessionStore, logger Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger,
	}
}

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	wz, err := h.store.Get(id)
	if err != nil {
		h.logger.Warn("GET /sessions/{id} - Session not found: session_id=%s, error=%v", id, err)
		handlers.RespondSessionNotFound(w)
		return
	}

	snap := wz.Snapshot()
	h.logger.Info("GET /sessions/{id} - Snapshot returned: session_id=%s, step=%s", id, snap.Step)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSnapshot(id, snap))
}
