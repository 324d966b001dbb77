package salonapi

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

// AppointmentDTO запись в формате бэкенда
type AppointmentDTO struct {
	ID                 int64  `json:"id"`
	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email"`
	CustomerPhone      string `json:"customer_phone"`
	StaffName          string `json:"staff_name"`
	ServiceID          int64  `json:"service_id"`
	ServiceDescription string `json:"service_description"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Status             string `json:"status"`
	Notes              string `json:"notes,omitempty"`
	PriceCents         int64  `json:"price_cents,omitempty"`
	Currency           string `json:"currency,omitempty"`
}

// CreateAppointmentRequest тело POST /appointments
type CreateAppointmentRequest struct {
	CustomerName       string `json:"customer_name"`
	CustomerEmail      string `json:"customer_email"`
	CustomerPhone      string `json:"customer_phone"`
	StaffName          string `json:"staff_name"`
	ServiceID          int64  `json:"service_id"`
	ServiceDescription string `json:"service_description"`
	Date               string `json:"date"`
	Time               string `json:"time"`
	Status             string `json:"status"`
	Notes              string `json:"notes"`
	// PriceCents итоговая цена; для UGX это целые шиллинги
	PriceCents int64  `json:"price_cents"`
	Currency   string `json:"currency"`
}

// MenuItemDTO позиция прайс-листа
type MenuItemDTO struct {
	ID              int64  `json:"id"`
	Category        string `json:"category"`
	Name            string `json:"name"`
	Currency        string `json:"currency,omitempty"`
	PriceCents      int64  `json:"price_cents"`
	DurationMinutes int    `json:"duration_minutes"`
}

// ListMenuItemsResponse страница прайс-листа
type ListMenuItemsResponse struct {
	Data    []MenuItemDTO `json:"data"`
	Total   int           `json:"total"`
	Offset  int           `json:"offset"`
	Limit   int           `json:"limit"`
	HasMore bool          `json:"has_more"`
}

// ListMenuItemsParams параметры выборки прайс-листа
type ListMenuItemsParams struct {
	Category string
	Query    string
	Offset   *int
	Limit    *int
}

// errorBody тело ошибки бэкенда
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (a *AppointmentDTO) toDomain() domain.Appointment {
	return domain.Appointment{
		ID:                 a.ID,
		CustomerName:       a.CustomerName,
		CustomerEmail:      a.CustomerEmail,
		CustomerPhone:      a.CustomerPhone,
		StaffName:          a.StaffName,
		ServiceID:          a.ServiceID,
		ServiceDescription: a.ServiceDescription,
		Date:               a.Date,
		Time:               a.Time,
		Status:             domain.AppointmentStatus(a.Status),
		Notes:              a.Notes,
		TotalPrice:         a.PriceCents,
		Currency:           a.Currency,
	}
}

func newCreateAppointmentRequest(req *domain.AppointmentRequest) CreateAppointmentRequest {
	return CreateAppointmentRequest{
		CustomerName:       req.CustomerName,
		CustomerEmail:      req.CustomerEmail,
		CustomerPhone:      req.CustomerPhone,
		StaffName:          req.StaffName,
		ServiceID:          req.ServiceID,
		ServiceDescription: req.ServiceDescription,
		Date:               req.Date,
		Time:               req.Time,
		Status:             string(req.Status),
		Notes:              req.Notes,
		PriceCents:         req.TotalPrice,
		Currency:           req.Currency,
	}
}

func (m *MenuItemDTO) toDomain() domain.MenuItem {
	return domain.MenuItem{
		ID:              m.ID,
		Category:        m.Category,
		Name:            m.Name,
		Currency:        m.Currency,
		PriceCents:      m.PriceCents,
		DurationMinutes: m.DurationMinutes,
	}
}
