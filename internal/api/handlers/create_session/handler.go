package create_session

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"
)

const msgInvalidRequestBody = "invalid request body"

type Handler struct {
	factory WizardFactory
	store   SessionStore
	logger  Logger
}

func NewHandler(factory WizardFactory, store SessionStore, logger Logger) *Handler {
	return &Handler{
		factory: factory,
		store:   store,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
// Открывает мастер записи; X-Admin-Token включает режим администратора
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /sessions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	admin := middleware.IsAdmin(r.Context())
	wz := h.factory.New(wizard.Options{Category: req.Category, Admin: admin})

	id, err := h.store.Create(wz)
	if err != nil {
		wz.Close()
		h.logger.Error("POST /sessions - Failed to store session: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /sessions - Session opened: session_id=%s, category=%q, admin=%t", id, req.Category, admin)
	handlers.RespondJSON(w, http.StatusCreated, handlers.FromSnapshot(id, wz.Snapshot()))
}
