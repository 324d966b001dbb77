package get_time_slots

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

// Handle GET /api/v1/sessions/{sessionId}/time-slots
// Слоты выбранной даты; прошедшие сегодня помечены blocked (кроме режима администратора)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	wz, err := h.store.Get(id)
	if err != nil {
		h.logger.Warn("GET /sessions/{id}/time-slots - Session not found: session_id=%s, error=%v", id, err)
		handlers.RespondSessionNotFound(w)
		return
	}

	date := wz.Draft().DateString()
	slots := wz.TimeSlots()

	h.logger.Info("GET /sessions/{id}/time-slots - Slots returned: session_id=%s, date=%s, count=%d", id, date, len(slots))
	handlers.RespondJSON(w, http.StatusOK, FromDomain(date, slots))
}
