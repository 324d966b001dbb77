package close_session

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

// Handle DELETE /api/v1/sessions/{sessionId}
// Закрывает мастер: черновик сбрасывается, незавершенная проверка даты отменяется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	if err := h.store.Delete(id); err != nil {
		h.logger.Warn("DELETE /sessions/{id} - Session not found: session_id=%s", id)
		handlers.RespondSessionNotFound(w)
		return
	}

	h.logger.Info("DELETE /sessions/{id} - Session closed: session_id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
