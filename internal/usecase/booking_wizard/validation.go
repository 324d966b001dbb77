package booking_wizard

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateVariants проверяет выбор вариантов выбранной услуги
func validateVariants(d *Draft, env Env) error {
	option, err := selectedOption(d, env)
	if err != nil {
		return err
	}

	switch v := option.Variants.(type) {
	case domain.CategorizedVariants:
		if !d.Variants.IsCompleteFor(v) {
			return fmt.Errorf("%w: %d of %d categories chosen", ErrIncompleteVariants, len(d.Variants), len(v.Categories))
		}
	case domain.SimpleVariants:
		if d.Description == "" {
			return ErrDescriptionMissing
		}
		if !v.Has(d.Description) {
			return fmt.Errorf("%w: %q", ErrInvalidVariant, d.Description)
		}
	default:
		return fmt.Errorf("%w: service id=%d has no variants", ErrInvalidVariant, option.ID)
	}
	return nil
}

// validateCapacity проверяет, что дата выбрана и проверка заполненности завершилась без превышения лимита
func validateCapacity(d *Draft, env Env) error {
	if d.Date.IsZero() {
		return ErrDateMissing
	}
	if !IsDateBookable(d.Date, env) {
		return fmt.Errorf("%w: %s", ErrDateNotBookable, d.DateString())
	}
	if d.Capacity.Date != d.DateString() {
		return ErrCapacityPending
	}

	switch d.Capacity.Status {
	case CapacityAvailable:
		return nil
	case CapacityFull:
		return fullyBooked(env.Policy.DailyCapacity)
	default:
		return ErrCapacityPending
	}
}

// validateTime проверяет выбранный слот
func validateTime(d *Draft, env Env) error {
	if d.Date.IsZero() {
		return ErrDateMissing
	}
	if d.Time.IsZero() {
		return ErrTimeMissing
	}
	if err := d.Time.Validate(); err != nil || !env.Policy.HasSlot(d.Time) {
		return fmt.Errorf("%w: %q", ErrInvalidTime, d.Time)
	}
	if IsTimeBlocked(d.Date, d.Time, env) {
		return fmt.Errorf("%w: %s", ErrTimeSlotBlocked, d.Time)
	}
	return nil
}

// validateCustomer проверяет обязательные контактные поля
func validateCustomer(info CustomerInfo) error {
	if err := validate.Struct(info.normalized()); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			if fe.Tag() == "email" {
				return fmt.Errorf("%w: %q", ErrInvalidEmail, info.normalized().Email)
			}
			return fmt.Errorf("%w: %s failed on %q", ErrCustomerInfoMissing, fe.Field(), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrCustomerInfoMissing, err)
	}
	return nil
}

// validateSubmission локальные проверки перед отправкой, без обращения к сети
func validateSubmission(d *Draft, env Env) (domain.ServiceOption, error) {
	if d.Step != StepCustomerInfo {
		return domain.ServiceOption{}, fmt.Errorf("%w: submit on step %s", ErrInvalidTransition, d.Step)
	}

	option, err := selectedOption(d, env)
	if err != nil {
		return domain.ServiceOption{}, err
	}
	if err := validateVariants(d, env); err != nil {
		return domain.ServiceOption{}, err
	}
	if err := validateTime(d, env); err != nil {
		return domain.ServiceOption{}, err
	}
	if d.Capacity.Date == d.DateString() && d.Capacity.Status == CapacityFull {
		return domain.ServiceOption{}, fullyBooked(env.Policy.DailyCapacity)
	}
	if err := validateCustomer(d.Customer); err != nil {
		return domain.ServiceOption{}, err
	}
	if _, err := env.Catalog.StaffName(d.StaffID); err != nil {
		return domain.ServiceOption{}, fmt.Errorf("%w: %q", ErrUnknownStaff, d.StaffID)
	}
	return option, nil
}
