package post_event

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"
)

const (
	msgInvalidRequestBody = "invalid event"
	capacityWaitTimeout   = 5 * time.Second
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

// Handle POST /api/v1/sessions/{sessionId}/events
// Query params: wait (optional, "true" - дождаться проверки заполненности даты)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["sessionId"]

	wz, err := h.store.Get(id)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Session not found: session_id=%s, error=%v", id, err)
		handlers.RespondSessionNotFound(w)
		return
	}

	var req EventRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Invalid request body: session_id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	ev, err := req.ToEvent()
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Invalid event: session_id=%s, error=%v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	snap, err := wz.Dispatch(ev)
	if err != nil {
		h.logger.Warn("POST /sessions/{id}/events - Event rejected: session_id=%s, type=%s, error=%v", id, req.Type, err)
		handlers.RespondWizardError(w, err, handlers.FromSnapshot(id, snap))
		return
	}

	if r.URL.Query().Get("wait") == "true" && snap.Draft.Capacity.Status == wizard.CapacityChecking {
		ctx, cancel := context.WithTimeout(r.Context(), capacityWaitTimeout)
		defer cancel()

		if err := wz.WaitCapacity(ctx); err != nil {
			h.logger.Warn("POST /sessions/{id}/events - Capacity check still running: session_id=%s, error=%v", id, err)
		}
		later := wz.Snapshot()
		later.Notices = append(snap.Notices, later.Notices...)
		snap = later
	}

	h.logger.Info("POST /sessions/{id}/events - Event applied: session_id=%s, type=%s, step=%s", id, req.Type, snap.Step)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSnapshot(id, snap))
}
