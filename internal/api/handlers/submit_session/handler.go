package submit_session

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"
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

// Handle POST /api/v1/sessions/{sessionId}/submit
// В ответе состояние мастера: после успешной записи шаг confirmed, черновик сохраняется до reset или закрытия сессии, данные записи в confirmation
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	wz, err := h.store.Get(id)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/submit - Session not found: session_id=%s, error=%v", id, err)
		handlers.RespondSessionNotFound(w)
		return
	}

	confirmation, err := wz.Submit(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, wizard.ErrCreateFailed):
			h.logger.Error("POST /sessions/{id}/submit - Backend rejected appointment: session_id=%s, error=%v", id, err)
		case errors.Is(err, wizard.ErrDateFullyBooked):
			h.logger.Warn("POST /sessions/{id}/submit - Date fully booked: session_id=%s", id)
		default:
			h.logger.Warn("POST /sessions/{id}/submit - Submission rejected: session_id=%s, error=%v", id, err)
		}
		handlers.RespondWizardError(w, err, handlers.FromSnapshot(id, wz.Snapshot()))
		return
	}

	h.logger.Info("POST /sessions/{id}/submit - Appointment created: session_id=%s, appointment_id=%d, date=%s, time=%s",
		id, confirmation.AppointmentID, confirmation.Date, confirmation.Time)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromSnapshot(id, wz.Snapshot()))
}
