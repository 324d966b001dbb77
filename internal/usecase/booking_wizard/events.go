package booking_wizard

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Event событие мастера записи
type Event interface {
	isEvent()
}

// SelectService выбор услуги на первом шаге
type SelectService struct {
	ServiceID int64
}

// SelectDescription выбор описания в простом режиме; сразу переводит к выбору мастера и даты
type SelectDescription struct {
	Label string
}

// SelectVariant выбор метки в одной категории
type SelectVariant struct {
	Category string
	Label    string
}

// Next переход вперед через проверку текущего шага
type Next struct{}

// Back возврат на предыдущий шаг
type Back struct{}

type SelectStaff struct {
	StaffID string
}

// SelectDate выбор даты; берутся только календарные части Date
type SelectDate struct {
	Date time.Time
}

type SelectTime struct {
	Time types.TimeString
}

// UpdateCustomerInfo полностью заменяет контактные данные
type UpdateCustomerInfo struct {
	Info CustomerInfo
}

// CapacityResolved завершение проверки заполненности даты
type CapacityResolved struct {
	Token uint64
	Date  string
	Count int
	Err   error
}

// Tick пересчет состояния, зависящего от времени
type Tick struct{}

// Reset возврат к пустому черновику
type Reset struct{}

// SubmissionSucceeded бэкенд создал запись
type SubmissionSucceeded struct{}

func (SelectService) isEvent()       {}
func (SelectDescription) isEvent()   {}
func (SelectVariant) isEvent()       {}
func (Next) isEvent()                {}
func (Back) isEvent()                {}
func (SelectStaff) isEvent()         {}
func (SelectDate) isEvent()          {}
func (SelectTime) isEvent()          {}
func (UpdateCustomerInfo) isEvent()  {}
func (CapacityResolved) isEvent()    {}
func (Tick) isEvent()                {}
func (Reset) isEvent()               {}
func (SubmissionSucceeded) isEvent() {}
