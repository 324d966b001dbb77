package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"
)

const msgSessionNotFound = "booking session not found or expired"

// VariantCategoryResponse категория вариантов услуги
type VariantCategoryResponse struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// ServiceOptionResponse услуга каталога
type ServiceOptionResponse struct {
	ID            int64                     `json:"id"`
	Category      string                    `json:"category"`
	Name          string                    `json:"name"`
	DurationLabel string                    `json:"durationLabel"`
	BasePrice     int64                     `json:"basePrice"`
	VariantKind   string                    `json:"variantKind"`
	Descriptions  []string                  `json:"descriptions,omitempty"`
	Categories    []VariantCategoryResponse `json:"categories,omitempty"`
}

type CustomerResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

type CapacityResponse struct {
	Date    string `json:"date,omitempty"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type DraftResponse struct {
	ServiceID   int64             `json:"serviceId,omitempty"`
	Description string            `json:"description,omitempty"`
	Variants    map[string]string `json:"variants,omitempty"`
	StaffID     string            `json:"staffId,omitempty"`
	Date        string            `json:"date,omitempty"`
	Time        string            `json:"time,omitempty"`
	Customer    CustomerResponse  `json:"customer"`
	Capacity    CapacityResponse  `json:"capacity"`
}

type PriceResponse struct {
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
	Currency  string `json:"currency"`
}

type NoticeResponse struct {
	Level   string `json:"level"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type ConfirmationResponse struct {
	AppointmentID  int64  `json:"appointmentId"`
	ServiceID      int64  `json:"serviceId"`
	ServiceName    string `json:"serviceName"`
	Summary        string `json:"summary"`
	Description    string `json:"description"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	StaffName      string `json:"staffName,omitempty"`
	Total          int64  `json:"total"`
	TotalFormatted string `json:"totalFormatted"`
	Currency       string `json:"currency"`
	CustomerEmail  string `json:"customerEmail"`
}

// SnapshotResponse состояние мастера записи
type SnapshotResponse struct {
	SessionID    string                  `json:"sessionId,omitempty"`
	Step         string                  `json:"step"`
	Checkpoint   string                  `json:"checkpoint"`
	Admin        bool                    `json:"admin"`
	Submitting   bool                    `json:"submitting"`
	Draft        DraftResponse           `json:"draft"`
	Option       *ServiceOptionResponse  `json:"option,omitempty"`
	Options      []ServiceOptionResponse `json:"options"`
	StaffName    string                  `json:"staffName,omitempty"`
	Price        *PriceResponse          `json:"price,omitempty"`
	Notices      []NoticeResponse        `json:"notices"`
	Confirmation *ConfirmationResponse   `json:"confirmation,omitempty"`
}

// WizardErrorResponse ошибка перехода вместе с актуальным состоянием
type WizardErrorResponse struct {
	Message  string            `json:"message"`
	Snapshot *SnapshotResponse `json:"snapshot,omitempty"`
}

// FromServiceOption конвертирует услугу каталога в HTTP модель
func FromServiceOption(o domain.ServiceOption) ServiceOptionResponse {
	resp := ServiceOptionResponse{
		ID:            o.ID,
		Category:      string(o.Category),
		Name:          o.Name,
		DurationLabel: o.DurationLabel,
		BasePrice:     o.BasePrice,
	}
	switch v := o.Variants.(type) {
	case domain.SimpleVariants:
		resp.VariantKind = string(v.Kind())
		resp.Descriptions = append([]string(nil), v.Descriptions...)
	case domain.CategorizedVariants:
		resp.VariantKind = string(v.Kind())
		for _, c := range v.Categories {
			resp.Categories = append(resp.Categories, VariantCategoryResponse{
				Name:    c.Name,
				Options: append([]string(nil), c.Options...),
			})
		}
	}
	return resp
}

// FromServiceOptions конвертирует список услуг
func FromServiceOptions(options []domain.ServiceOption) []ServiceOptionResponse {
	out := make([]ServiceOptionResponse, 0, len(options))
	for _, o := range options {
		out = append(out, FromServiceOption(o))
	}
	return out
}

// FromSnapshot конвертирует состояние мастера в HTTP модель
func FromSnapshot(sessionID string, s wizard.Snapshot) *SnapshotResponse {
	d := s.Draft
	resp := &SnapshotResponse{
		SessionID:  sessionID,
		Step:       s.Step.String(),
		Checkpoint: s.Step.Checkpoint(),
		Admin:      s.Admin,
		Submitting: s.Submitting,
		Draft: DraftResponse{
			ServiceID:   d.ServiceID,
			Description: d.Description,
			Variants:    map[string]string(d.Variants),
			StaffID:     d.StaffID,
			Date:        d.DateString(),
			Time:        d.Time.String(),
			Customer: CustomerResponse{
				Name:  d.Customer.Name,
				Email: d.Customer.Email,
				Phone: d.Customer.Phone,
				Notes: d.Customer.Notes,
			},
			Capacity: CapacityResponse{
				Date:    d.Capacity.Date,
				Status:  string(d.Capacity.Status),
				Message: d.Capacity.Message,
			},
		},
		Options:   FromServiceOptions(s.Options),
		StaffName: s.StaffName,
		Notices:   make([]NoticeResponse, 0, len(s.Notices)),
	}

	if s.Option != nil {
		option := FromServiceOption(*s.Option)
		resp.Option = &option
	}
	if s.Price != nil {
		resp.Price = &PriceResponse{
			Total:     s.Price.Total,
			Formatted: s.Price.Formatted,
			Currency:  s.Price.Currency,
		}
	}
	for _, n := range s.Notices {
		resp.Notices = append(resp.Notices, NoticeResponse{
			Level:   string(n.Level),
			Title:   n.Title,
			Message: n.Message,
		})
	}
	if s.Confirmation != nil {
		resp.Confirmation = FromConfirmation(s.Confirmation)
	}
	return resp
}

// FromConfirmation конвертирует данные подтверждения
func FromConfirmation(c *wizard.Confirmation) *ConfirmationResponse {
	return &ConfirmationResponse{
		AppointmentID:  c.AppointmentID,
		ServiceID:      c.ServiceID,
		ServiceName:    c.ServiceName,
		Summary:        c.Summary,
		Description:    c.Description,
		Date:           c.Date,
		Time:           c.Time.String(),
		StaffName:      c.StaffName,
		Total:          c.Total,
		TotalFormatted: c.TotalFormatted,
		Currency:       c.Currency,
		CustomerEmail:  c.CustomerEmail,
	}
}

// WizardErrorStatus HTTP статус для ошибки мастера записи
func WizardErrorStatus(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, session.ErrInvalidSessionID):
		return http.StatusNotFound
	case errors.Is(err, wizard.ErrCreateFailed):
		return http.StatusBadGateway
	case errors.Is(err, wizard.ErrDateFullyBooked),
		errors.Is(err, wizard.ErrInvalidTransition),
		errors.Is(err, wizard.ErrSubmissionInProgress):
		return http.StatusConflict
	default:
		return http.StatusUnprocessableEntity
	}
}

// RespondSessionNotFound ответ для неизвестной или истекшей сессии
func RespondSessionNotFound(w http.ResponseWriter) {
	RespondNotFound(w, msgSessionNotFound)
}

// RespondWizardError пишет ошибку мастера с текстом для пользователя и текущим состоянием
func RespondWizardError(w http.ResponseWriter, err error, snapshot *SnapshotResponse) {
	status := WizardErrorStatus(err)
	if status == http.StatusNotFound {
		RespondSessionNotFound(w)
		return
	}
	RespondJSON(w, status, WizardErrorResponse{
		Message:  wizard.UserMessage(err),
		Snapshot: snapshot,
	})
}
