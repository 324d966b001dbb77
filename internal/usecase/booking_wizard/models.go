package booking_wizard

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Step шаг мастера записи
type Step int

const (
	StepServiceSelect Step = iota + 1
	StepVariantSelect
	StepStaffAndDate
	StepTimeSelect
	StepCustomerInfo
	StepConfirmed
)

var stepNames = map[Step]string{
	StepServiceSelect: "service_select",
	StepVariantSelect: "variant_select",
	StepStaffAndDate:  "staff_and_date",
	StepTimeSelect:    "time_select",
	StepCustomerInfo:  "customer_info",
	StepConfirmed:     "confirmed",
}

// Номера шагов в интерфейсе; выбор вариантов идет как промежуточный "1.5"
var stepCheckpoints = map[Step]string{
	StepServiceSelect: "1",
	StepVariantSelect: "1.5",
	StepStaffAndDate:  "2",
	StepTimeSelect:    "3",
	StepCustomerInfo:  "4",
	StepConfirmed:     "5",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Checkpoint номер шага для отображения
func (s Step) Checkpoint() string {
	return stepCheckpoints[s]
}

// CustomerInfo контактные данные клиента
type CustomerInfo struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string `validate:"required"`
	Notes string
}

func (c CustomerInfo) normalized() CustomerInfo {
	return CustomerInfo{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
		Notes: strings.TrimSpace(c.Notes),
	}
}

// CapacityStatus состояние проверки заполненности даты
type CapacityStatus string

const (
	CapacityIdle      CapacityStatus = "idle"
	CapacityChecking  CapacityStatus = "checking"
	CapacityAvailable CapacityStatus = "available"
	CapacityFull      CapacityStatus = "full"
)

// CapacityState результат последней проверки; Token растет с каждой новой проверкой
type CapacityState struct {
	Date    string // YYYY-MM-DD
	Token   uint64
	Status  CapacityStatus
	Message string
}

// Draft черновик записи. Значение неизменяемо: переходы возвращают новый Draft.
type Draft struct {
	Step        Step
	ServiceID   int64 // 0 - не выбрана
	Description string
	Variants    domain.CategorySelection
	StaffID     string
	Date        time.Time // полночь в часовом поясе салона, zero - не выбрана
	Time        types.TimeString
	Customer    CustomerInfo
	Capacity    CapacityState

	// LastWarnedDate дата, о заполненности которой уже предупредили
	LastWarnedDate string
}

// NewDraft пустой черновик на первом шаге
func NewDraft() Draft {
	return Draft{
		Step:     StepServiceSelect,
		Capacity: CapacityState{Status: CapacityIdle},
	}
}

func (d Draft) clone() Draft {
	out := d
	if d.Variants != nil {
		out.Variants = d.Variants.Clone()
	}
	return out
}

// DateString дата в формате YYYY-MM-DD или пустая строка
func (d Draft) DateString() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format(domain.DateFormat)
}

// Selection выбор вариантов в форме, понятной движку цен
func (d Draft) Selection(option domain.ServiceOption) domain.Selection {
	switch option.Variants.(type) {
	case domain.CategorizedVariants:
		return d.Variants.Clone()
	default:
		return domain.DescriptionSelection{Label: d.Description}
	}
}

// SelectionComplete выбор вариантов проходит шаг VariantSelect
func (d Draft) SelectionComplete(option domain.ServiceOption) bool {
	switch v := option.Variants.(type) {
	case domain.CategorizedVariants:
		return d.Variants.IsCompleteFor(v)
	case domain.SimpleVariants:
		return d.Description != "" && v.Has(d.Description)
	default:
		return false
	}
}

// ServiceDescription описание для бэкенда: метки через "-" в порядке категорий
func (d Draft) ServiceDescription(option domain.ServiceOption) string {
	if v, ok := option.Variants.(domain.CategorizedVariants); ok {
		return strings.Join(d.Variants.Labels(v), domain.DescriptionSeparator)
	}
	return d.Description
}

// VariantSummary описание для экрана подтверждения: метки через " • "
func (d Draft) VariantSummary(option domain.ServiceOption) string {
	if v, ok := option.Variants.(domain.CategorizedVariants); ok {
		return strings.Join(d.Variants.Labels(v), domain.SummarySeparator)
	}
	return d.Description
}

// NoticeLevel уровень уведомления
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
)

// Notice уведомление для пользователя (аналог всплывающего сообщения)
type Notice struct {
	Level   NoticeLevel
	Title   string
	Message string
}

// Env окружение перехода: все, что редуктор читает помимо черновика
type Env struct {
	Catalog  Catalog
	Policy   domain.BookingPolicy
	Now      time.Time
	Admin    bool
	Category string // фильтр категории, с которым открыт мастер
}

func (e Env) today() time.Time {
	now := e.Now.In(e.location())
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.location())
}

func (e Env) location() *time.Location {
	if e.Policy.Location == nil {
		return time.Local
	}
	return e.Policy.Location
}

// Confirmation данные экрана подтверждения
type Confirmation struct {
	AppointmentID  int64
	ServiceID      int64
	ServiceName    string
	Summary        string
	Description    string
	Date           string
	Time           types.TimeString
	StaffName      string
	Total          int64
	TotalFormatted string
	Currency       string
	CustomerEmail  string
}

// Price предпросмотр цены
type Price struct {
	Total     int64
	Formatted string
	Currency  string
}

// Snapshot состояние мастера для отрисовки
type Snapshot struct {
	Step         Step
	Draft        Draft
	Admin        bool
	Option       *domain.ServiceOption
	Options      []domain.ServiceOption
	StaffName    string
	Price        *Price
	Notices      []Notice
	Confirmation *Confirmation
	Submitting   bool
}
