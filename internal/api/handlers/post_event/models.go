package post_event

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	EventSelectService      = "select_service"
	EventSelectDescription  = "select_description"
	EventSelectVariant      = "select_variant"
	EventNext               = "next"
	EventBack               = "back"
	EventSelectStaff        = "select_staff"
	EventSelectDate         = "select_date"
	EventSelectTime         = "select_time"
	EventUpdateCustomerInfo = "update_customer_info"
	EventReset              = "reset"
)

type CustomerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// EventRequest HTTP request model: одно событие мастера записи
type EventRequest struct {
	Type      string           `json:"type" validate:"required,oneof=select_service select_description select_variant next back select_staff select_date select_time update_customer_info reset"`
	ServiceID int64            `json:"serviceId,omitempty" validate:"required_if=Type select_service"`
	Category  string           `json:"category,omitempty" validate:"required_if=Type select_variant"`
	Label     string           `json:"label,omitempty"`
	StaffID   string           `json:"staffId,omitempty"`
	Date      string           `json:"date,omitempty" validate:"required_if=Type select_date"`
	Time      string           `json:"time,omitempty" validate:"required_if=Type select_time"`
	Customer  *CustomerRequest `json:"customer,omitempty" validate:"required_if=Type update_customer_info"`
}

// ToEvent конвертирует HTTP запрос в событие мастера
func (r *EventRequest) ToEvent() (wizard.Event, error) {
	switch r.Type {
	case EventSelectService:
		return wizard.SelectService{ServiceID: r.ServiceID}, nil
	case EventSelectDescription:
		return wizard.SelectDescription{Label: r.Label}, nil
	case EventSelectVariant:
		return wizard.SelectVariant{Category: r.Category, Label: r.Label}, nil
	case EventNext:
		return wizard.Next{}, nil
	case EventBack:
		return wizard.Back{}, nil
	case EventSelectStaff:
		return wizard.SelectStaff{StaffID: r.StaffID}, nil
	case EventSelectDate:
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", r.Date, err)
		}
		return wizard.SelectDate{Date: date}, nil
	case EventSelectTime:
		return wizard.SelectTime{Time: types.TimeString(r.Time)}, nil
	case EventUpdateCustomerInfo:
		return wizard.UpdateCustomerInfo{Info: wizard.CustomerInfo{
			Name:  r.Customer.Name,
			Email: r.Customer.Email,
			Phone: r.Customer.Phone,
			Notes: r.Customer.Notes,
		}}, nil
	case EventReset:
		return wizard.Reset{}, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", r.Type)
	}
}
