package booking_wizard

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var (
	// ErrServiceNotSelected услуга не выбрана
	ErrServiceNotSelected = errors.New("booking_wizard: service not selected")

	// ErrUnknownService услуги нет в каталоге (или в отфильтрованной категории)
	ErrUnknownService = errors.New("booking_wizard: unknown service")

	// ErrIncompleteVariants выбрано не по одному варианту в каждой категории
	ErrIncompleteVariants = errors.New("booking_wizard: incomplete variant selection")

	// ErrInvalidVariant вариант не принадлежит услуге
	ErrInvalidVariant = errors.New("booking_wizard: invalid variant")

	// ErrDescriptionMissing не выбрано описание услуги в простом режиме
	ErrDescriptionMissing = errors.New("booking_wizard: description missing")

	ErrDateMissing     = errors.New("booking_wizard: date missing")
	ErrDateNotBookable = errors.New("booking_wizard: date is not bookable")
	ErrTimeMissing     = errors.New("booking_wizard: time missing")
	ErrInvalidTime     = errors.New("booking_wizard: invalid time slot")

	// ErrTimeSlotBlocked слот уже прошел сегодня
	ErrTimeSlotBlocked = errors.New("booking_wizard: time slot blocked")

	// ErrCapacityPending проверка заполненности даты еще не завершена
	ErrCapacityPending = errors.New("booking_wizard: capacity check pending")

	// ErrDateFullyBooked на дату уже набран дневной лимит подтвержденных записей
	ErrDateFullyBooked = errors.New("booking_wizard: date fully booked")

	ErrCustomerInfoMissing = errors.New("booking_wizard: customer info missing")
	ErrInvalidEmail        = errors.New("booking_wizard: invalid email")
	ErrUnknownStaff        = errors.New("booking_wizard: unknown staff member")

	// ErrInvalidTransition событие недопустимо на текущем шаге
	ErrInvalidTransition = errors.New("booking_wizard: invalid transition")

	// ErrSubmissionInProgress отправка уже выполняется
	ErrSubmissionInProgress = errors.New("booking_wizard: submission in progress")

	// ErrCreateFailed бэкенд не создал запись
	ErrCreateFailed = errors.New("booking_wizard: create appointment failed")
)

// FallbackCreateMessage сообщение, если бэкенд не вернул свое
const FallbackCreateMessage = "Unable to create appointment."

var userMessages = map[error]string{
	ErrServiceNotSelected:   "Please choose a service option.",
	ErrUnknownService:       "That service is not available. Please choose another one.",
	ErrIncompleteVariants:   "Please select an option from each category.",
	ErrInvalidVariant:       "Please choose one of the listed options.",
	ErrDescriptionMissing:   "Please select a valid description for this service.",
	ErrDateMissing:          "Please choose a date and time.",
	ErrDateNotBookable:      "That date is not available for booking. Please choose another date.",
	ErrTimeMissing:          "Please choose a date and time.",
	ErrInvalidTime:          "Please choose one of the available time slots.",
	ErrTimeSlotBlocked:      "Please choose a time later than the current time for today.",
	ErrCapacityPending:      "Still checking availability for that date. Please wait a moment.",
	ErrCustomerInfoMissing:  "Please enter your name, email and phone number.",
	ErrInvalidEmail:         "Please enter a valid email address.",
	ErrUnknownStaff:         "Please choose a stylist from the list.",
	ErrInvalidTransition:    "That action is not available at this step.",
	ErrSubmissionInProgress: "Your booking is already being submitted.",
	ErrCreateFailed:         FallbackCreateMessage,
}

// ValidationError ошибка проверки с готовым текстом для пользователя
type ValidationError struct {
	Err     error
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// CreateFailedError отказ бэкенда; Message показывается пользователю как есть
type CreateFailedError struct {
	Message string
	Cause   error
}

func (e *CreateFailedError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCreateFailed, e.Message)
}

// Is позволяет сравнивать с ErrCreateFailed
func (e *CreateFailedError) Is(target error) bool {
	return target == ErrCreateFailed
}

func (e *CreateFailedError) Unwrap() error {
	return e.Cause
}

// FullyBookedMessage текст предупреждения о заполненной дате
func FullyBookedMessage(capacity int) string {
	return fmt.Sprintf("That date is fully booked (%d confirmed bookings). Please choose another date.", capacity)
}

func fullyBooked(capacity int) error {
	return &ValidationError{Err: ErrDateFullyBooked, Message: FullyBookedMessage(capacity)}
}

// UserMessage текст ошибки для пользователя; пустая строка для nil
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var createErr *CreateFailedError
	if errors.As(err, &createErr) {
		return createErr.Message
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) && validationErr.Message != "" {
		return validationErr.Message
	}

	for sentinel, msg := range userMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	if errors.Is(err, ErrDateFullyBooked) {
		return FullyBookedMessage(domain.DefaultDailyCapacity)
	}
	return "Something went wrong. Please try again."
}

// backendMessage сообщение бэкенда, если оно есть в цепочке ошибки
func backendMessage(err error) string {
	var be BackendError
	if errors.As(err, &be) && be.BackendMessage() != "" {
		return be.BackendMessage()
	}
	return FallbackCreateMessage
}
