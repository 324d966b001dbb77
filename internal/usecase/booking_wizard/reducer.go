package booking_wizard

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Apply применяет событие к черновику и возвращает новый черновик.
// При ошибке возвращается исходный черновик без изменений.
func Apply(d Draft, ev Event, env Env) (Draft, []Notice, error) {
	next := d.clone()
	var notices []Notice
	var err error

	switch e := ev.(type) {
	case SelectService:
		err = applySelectService(&next, e, env)
	case SelectDescription:
		err = applySelectDescription(&next, e, env)
	case SelectVariant:
		err = applySelectVariant(&next, e, env)
	case Next:
		err = applyNext(&next, env)
	case Back:
		err = applyBack(&next)
	case SelectStaff:
		err = applySelectStaff(&next, e, env)
	case SelectDate:
		err = applySelectDate(&next, e, env)
	case SelectTime:
		err = applySelectTime(&next, e, env)
	case UpdateCustomerInfo:
		err = applyUpdateCustomerInfo(&next, e)
	case CapacityResolved:
		notices = applyCapacityResolved(&next, e, env)
	case Tick:
	case Reset:
		next = resetDraft(d)
	case SubmissionSucceeded:
		if next.Step != StepCustomerInfo {
			err = fmt.Errorf("%w: submission succeeded on step %s", ErrInvalidTransition, next.Step)
			break
		}
		next.Step = StepConfirmed
	default:
		err = fmt.Errorf("%w: unsupported event %T", ErrInvalidTransition, ev)
	}

	if err != nil {
		return d, nil, err
	}

	// Выбранный слот, который успел пройти, сбрасывается
	if next.Step != StepConfirmed && !next.Time.IsZero() && IsTimeBlocked(next.Date, next.Time, env) {
		next.Time = ""
		notices = append(notices, Notice{
			Level:   NoticeWarning,
			Title:   "Time slot unavailable",
			Message: userMessages[ErrTimeSlotBlocked],
		})
	}

	return next, notices, nil
}

func resetDraft(d Draft) Draft {
	next := NewDraft()
	// токен продолжает расти, чтобы результаты старых проверок считались устаревшими
	next.Capacity.Token = d.Capacity.Token
	next.LastWarnedDate = d.LastWarnedDate
	return next
}

func requireStep(d *Draft, step Step) error {
	if d.Step != step {
		return fmt.Errorf("%w: expected step %s, got %s", ErrInvalidTransition, step, d.Step)
	}
	return nil
}

// findOption ищет услугу среди доступных в текущем фильтре категории
func findOption(env Env, id int64) (domain.ServiceOption, error) {
	for _, o := range env.Catalog.ResolveOptions(env.Category) {
		if o.ID == id {
			return o, nil
		}
	}
	return domain.ServiceOption{}, fmt.Errorf("%w: id=%d", ErrUnknownService, id)
}

func selectedOption(d *Draft, env Env) (domain.ServiceOption, error) {
	if d.ServiceID == 0 {
		return domain.ServiceOption{}, ErrServiceNotSelected
	}
	return findOption(env, d.ServiceID)
}

func applySelectService(d *Draft, e SelectService, env Env) error {
	if err := requireStep(d, StepServiceSelect); err != nil {
		return err
	}
	if _, err := findOption(env, e.ServiceID); err != nil {
		return err
	}
	if d.ServiceID != e.ServiceID {
		d.Description = ""
		d.Variants = nil
	}
	d.ServiceID = e.ServiceID
	d.Step = StepVariantSelect
	return nil
}

func applySelectDescription(d *Draft, e SelectDescription, env Env) error {
	if err := requireStep(d, StepVariantSelect); err != nil {
		return err
	}
	option, err := selectedOption(d, env)
	if err != nil {
		return err
	}
	simple, ok := option.Variants.(domain.SimpleVariants)
	if !ok {
		return fmt.Errorf("%w: service id=%d uses variant categories", ErrInvalidVariant, option.ID)
	}
	if !simple.Has(e.Label) {
		return fmt.Errorf("%w: %q is not a description of service id=%d", ErrInvalidVariant, e.Label, option.ID)
	}
	d.Description = e.Label
	d.Step = StepStaffAndDate
	return nil
}

func applySelectVariant(d *Draft, e SelectVariant, env Env) error {
	if err := requireStep(d, StepVariantSelect); err != nil {
		return err
	}
	option, err := selectedOption(d, env)
	if err != nil {
		return err
	}
	categorized, ok := option.Variants.(domain.CategorizedVariants)
	if !ok {
		return fmt.Errorf("%w: service id=%d has no variant categories", ErrInvalidVariant, option.ID)
	}
	category, ok := categorized.Category(e.Category)
	if !ok || !category.Has(e.Label) {
		return fmt.Errorf("%w: %s=%q for service id=%d", ErrInvalidVariant, e.Category, e.Label, option.ID)
	}
	if d.Variants == nil {
		d.Variants = make(domain.CategorySelection)
	}
	d.Variants[e.Category] = e.Label
	return nil
}

func applyNext(d *Draft, env Env) error {
	switch d.Step {
	case StepServiceSelect:
		if _, err := selectedOption(d, env); err != nil {
			return err
		}
		d.Step = StepVariantSelect
	case StepVariantSelect:
		if err := validateVariants(d, env); err != nil {
			return err
		}
		d.Step = StepStaffAndDate
	case StepStaffAndDate:
		if err := validateCapacity(d, env); err != nil {
			return err
		}
		d.Step = StepTimeSelect
	case StepTimeSelect:
		if err := validateTime(d, env); err != nil {
			return err
		}
		d.Step = StepCustomerInfo
	default:
		// в Confirmed попадают только через успешную отправку
		return fmt.Errorf("%w: no forward transition from %s", ErrInvalidTransition, d.Step)
	}
	return nil
}

func applyBack(d *Draft) error {
	switch d.Step {
	case StepVariantSelect:
		d.Variants = nil
		d.Step = StepServiceSelect
	case StepStaffAndDate:
		d.Step = StepVariantSelect
	case StepTimeSelect:
		d.Step = StepStaffAndDate
	case StepCustomerInfo:
		d.Step = StepTimeSelect
	default:
		return fmt.Errorf("%w: no backward transition from %s", ErrInvalidTransition, d.Step)
	}
	return nil
}

func applySelectStaff(d *Draft, e SelectStaff, env Env) error {
	if err := requireStep(d, StepStaffAndDate); err != nil {
		return err
	}
	if _, err := env.Catalog.StaffName(e.StaffID); err != nil {
		return fmt.Errorf("%w: %q", ErrUnknownStaff, e.StaffID)
	}
	d.StaffID = e.StaffID
	return nil
}

// NormalizeDate переносит календарные части даты в полночь часового пояса салона
func NormalizeDate(date time.Time, loc *time.Location) time.Time {
	y, m, day := date.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, loc)
}

// IsDateBookable дата не в прошлом и салон в этот день работает
func IsDateBookable(date time.Time, env Env) bool {
	day := NormalizeDate(date, env.location())
	if day.Before(env.today()) {
		return false
	}
	return !env.Policy.IsClosedOn(day.Weekday())
}

func applySelectDate(d *Draft, e SelectDate, env Env) error {
	if err := requireStep(d, StepStaffAndDate); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return ErrDateMissing
	}
	day := NormalizeDate(e.Date, env.location())
	if !IsDateBookable(day, env) {
		return fmt.Errorf("%w: %s", ErrDateNotBookable, day.Format(domain.DateFormat))
	}

	d.Date = day
	// каждая выбранная дата запускает новую проверку; прежний результат больше не действует
	d.Capacity = CapacityState{
		Date:   day.Format(domain.DateFormat),
		Token:  d.Capacity.Token + 1,
		Status: CapacityChecking,
	}
	return nil
}

// IsTimeBlocked слот сегодняшнего дня, время которого уже наступило; в режиме администратора не блокируется
func IsTimeBlocked(date time.Time, slot types.TimeString, env Env) bool {
	if env.Admin || date.IsZero() {
		return false
	}
	day := NormalizeDate(date, env.location())
	if !day.Equal(env.today()) {
		return false
	}
	at, err := slot.On(day)
	if err != nil {
		return false
	}
	return !at.After(env.Now)
}

func applySelectTime(d *Draft, e SelectTime, env Env) error {
	if err := requireStep(d, StepTimeSelect); err != nil {
		return err
	}
	if err := e.Time.Validate(); err != nil || !env.Policy.HasSlot(e.Time) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, e.Time)
	}
	if IsTimeBlocked(d.Date, e.Time, env) {
		return fmt.Errorf("%w: %s", ErrTimeSlotBlocked, e.Time)
	}
	d.Time = e.Time
	return nil
}

func applyUpdateCustomerInfo(d *Draft, e UpdateCustomerInfo) error {
	if err := requireStep(d, StepCustomerInfo); err != nil {
		return err
	}
	d.Customer = e.Info
	return nil
}

func applyCapacityResolved(d *Draft, e CapacityResolved, env Env) []Notice {
	// результат для другой даты или устаревшей проверки отбрасывается
	if e.Token != d.Capacity.Token || e.Date != d.Capacity.Date {
		return nil
	}

	if e.Err != nil {
		// сбой проверки не блокирует запись
		d.Capacity.Status = CapacityAvailable
		d.Capacity.Message = ""
		return nil
	}

	if e.Count < env.Policy.DailyCapacity {
		d.Capacity.Status = CapacityAvailable
		d.Capacity.Message = ""
		return nil
	}

	msg := FullyBookedMessage(env.Policy.DailyCapacity)
	d.Capacity.Status = CapacityFull
	d.Capacity.Message = msg

	if d.LastWarnedDate == e.Date {
		return nil
	}
	d.LastWarnedDate = e.Date
	return []Notice{{Level: NoticeWarning, Title: "Date fully booked", Message: msg}}
}
