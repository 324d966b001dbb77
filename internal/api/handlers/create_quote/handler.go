package create_quote

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/api/handlers"
	createQuote "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_quote"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgServiceNotFound     = "service option not found"
	msgIncompleteSelection = "please select an option from each category"
	msgInvalidSelection    = "please choose one of the listed options"
	msgInvalidInput        = "invalid quote request"
)

type Handler struct {
	useCase CreateQuoteUseCase
	logger  Logger
}

func NewHandler(useCase CreateQuoteUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateQuoteRequest
	if err := handlers.DecodeAndValidate(r, &req); err != nil {
		h.logger.Warn("POST /quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(req.ToUseCaseRequest())
	if err != nil {
		switch {
		case errors.Is(err, createQuote.ErrServiceNotFound):
			h.logger.Warn("POST /quotes - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createQuote.ErrIncompleteSelection):
			h.logger.Warn("POST /quotes - Incomplete selection: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, msgIncompleteSelection)

		case errors.Is(err, createQuote.ErrInvalidSelection):
			h.logger.Warn("POST /quotes - Invalid selection: service_id=%d", req.ServiceID)
			handlers.RespondUnprocessable(w, msgInvalidSelection)

		case errors.Is(err, createQuote.ErrInvalidInput):
			h.logger.Warn("POST /quotes - Invalid input: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /quotes - Failed to compute quote: service_id=%d, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /quotes - Quote computed: service_id=%d, total=%d", result.ServiceID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
