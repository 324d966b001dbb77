package booking_wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

func apply(t *testing.T, d Draft, ev Event, env Env) Draft {
	t.Helper()
	next, _, err := Apply(d, ev, env)
	require.NoError(t, err, "event %T", ev)
	return next
}

func TestApply_CategorizedHappyPath(t *testing.T) {
	env := testEnv(at(4, 10, 0, 30))
	d := NewDraft()

	_, _, err := Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrServiceNotSelected)

	d = apply(t, d, SelectService{ServiceID: 1}, env)
	assert.Equal(t, StepVariantSelect, d.Step)

	d = apply(t, d, SelectVariant{Category: "Length", Label: "Long"}, env)
	d = apply(t, d, SelectVariant{Category: "Spacing", Label: "Small"}, env)

	_, _, err = Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrIncompleteVariants)

	d = apply(t, d, SelectVariant{Category: "Variation", Label: "Boho"}, env)
	d = apply(t, d, Next{}, env)
	assert.Equal(t, StepStaffAndDate, d.Step)

	_, _, err = Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrDateMissing)

	d = apply(t, d, SelectDate{Date: at(5, 15, 0, 0)}, env)
	assert.Equal(t, "2026-03-05", d.DateString())
	assert.Equal(t, CapacityChecking, d.Capacity.Status)
	assert.Equal(t, uint64(1), d.Capacity.Token)

	_, _, err = Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrCapacityPending)

	d = apply(t, d, CapacityResolved{Token: 1, Date: "2026-03-05", Count: 19}, env)
	assert.Equal(t, CapacityAvailable, d.Capacity.Status)

	d = apply(t, d, Next{}, env)
	assert.Equal(t, StepTimeSelect, d.Step)

	_, _, err = Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrTimeMissing)

	_, _, err = Apply(d, SelectTime{Time: "10:15"}, env)
	assert.ErrorIs(t, err, ErrInvalidTime)

	d = apply(t, d, SelectTime{Time: "08:00"}, env)
	d = apply(t, d, Next{}, env)
	assert.Equal(t, StepCustomerInfo, d.Step)

	_, _, err = Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	option, err := env.Catalog.Find(1)
	require.NoError(t, err)
	assert.Equal(t, "Long-Small-Boho", d.ServiceDescription(option))
	assert.Equal(t, "Long • Small • Boho", d.VariantSummary(option))
}

func TestApply_SimpleDescriptionAdvances(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := apply(t, NewDraft(), SelectService{ServiceID: 2}, env)

	_, _, err := Apply(d, SelectDescription{Label: "Lace"}, env)
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, _, err = Apply(d, SelectVariant{Category: "Length", Label: "Long"}, env)
	assert.ErrorIs(t, err, ErrInvalidVariant)

	_, _, err = Apply(d, Next{}, env)
	assert.ErrorIs(t, err, ErrDescriptionMissing)

	d = apply(t, d, SelectDescription{Label: "Frontal"}, env)
	assert.Equal(t, StepStaffAndDate, d.Step)
	assert.Equal(t, "Frontal", d.Description)
}

func TestApply_BackClearsVariants(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := apply(t, NewDraft(), SelectService{ServiceID: 1}, env)
	d = apply(t, d, SelectVariant{Category: "Length", Label: "Short"}, env)

	d = apply(t, d, Back{}, env)
	assert.Equal(t, StepServiceSelect, d.Step)
	assert.Empty(t, d.Variants)
	assert.Equal(t, int64(1), d.ServiceID)

	_, _, err := Apply(d, Back{}, env)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestApply_ChangingServiceClearsSelection(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := apply(t, NewDraft(), SelectService{ServiceID: 3}, env)
	d = apply(t, d, SelectDescription{Label: "Evening"}, env)
	d = apply(t, d, Back{}, env)
	d = apply(t, d, Back{}, env)
	require.Equal(t, StepServiceSelect, d.Step)

	same := apply(t, d, SelectService{ServiceID: 3}, env)
	assert.Equal(t, "Evening", same.Description)

	other := apply(t, d, SelectService{ServiceID: 4}, env)
	assert.Empty(t, other.Description)
	assert.Equal(t, StepVariantSelect, other.Step)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d1 := apply(t, NewDraft(), SelectService{ServiceID: 1}, env)
	d1 = apply(t, d1, SelectVariant{Category: "Length", Label: "Short"}, env)

	d2 := apply(t, d1, SelectVariant{Category: "Length", Label: "Long"}, env)
	assert.Equal(t, "Short", d1.Variants["Length"])
	assert.Equal(t, "Long", d2.Variants["Length"])

	failed, _, err := Apply(d1, SelectVariant{Category: "Length", Label: "Huge"}, env)
	assert.ErrorIs(t, err, ErrInvalidVariant)
	assert.Equal(t, d1, failed)
}

func TestApply_CategoryFilter(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	env.Category = "nails"

	_, _, err := Apply(NewDraft(), SelectService{ServiceID: 1}, env)
	assert.ErrorIs(t, err, ErrUnknownService)

	d := apply(t, NewDraft(), SelectService{ServiceID: 5}, env)
	assert.Equal(t, int64(5), d.ServiceID)
}

func TestApply_DateNotBookable(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate

	tests := []struct {
		name string
		date int
		want error
	}{
		{name: "yesterday", date: 3, want: ErrDateNotBookable},
		{name: "sunday", date: 8, want: ErrDateNotBookable},
		{name: "today", date: 4},
		{name: "saturday", date: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Apply(d, SelectDate{Date: at(tt.date, 0, 0, 0)}, env)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApply_CapacityGate(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate
	d = apply(t, d, SelectDate{Date: at(6, 0, 0, 0)}, env)

	full, notices, err := Apply(d, CapacityResolved{Token: d.Capacity.Token, Date: "2026-03-06", Count: 20}, env)
	require.NoError(t, err)
	assert.Equal(t, CapacityFull, full.Capacity.Status)
	require.Len(t, notices, 1)
	assert.Equal(t, FullyBookedMessage(20), notices[0].Message)
	assert.Equal(t, "2026-03-06", full.LastWarnedDate)

	_, _, err = Apply(full, Next{}, env)
	assert.ErrorIs(t, err, ErrDateFullyBooked)
	assert.Equal(t, "That date is fully booked (20 confirmed bookings). Please choose another date.", UserMessage(err))

	// повторный выбор той же даты не повторяет предупреждение
	again := apply(t, full, SelectDate{Date: at(6, 0, 0, 0)}, env)
	again, notices, err = Apply(again, CapacityResolved{Token: again.Capacity.Token, Date: "2026-03-06", Count: 22}, env)
	require.NoError(t, err)
	assert.Equal(t, CapacityFull, again.Capacity.Status)
	assert.Empty(t, notices)

	open := apply(t, d, CapacityResolved{Token: d.Capacity.Token, Date: "2026-03-06", Count: 19}, env)
	assert.Equal(t, CapacityAvailable, open.Capacity.Status)
	open = apply(t, open, Next{}, env)
	assert.Equal(t, StepTimeSelect, open.Step)
}

func TestApply_StaleCapacityDiscarded(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate

	d = apply(t, d, SelectDate{Date: at(5, 0, 0, 0)}, env)
	first := d.Capacity.Token
	d = apply(t, d, SelectDate{Date: at(6, 0, 0, 0)}, env)

	d = apply(t, d, CapacityResolved{Token: first, Date: "2026-03-05", Count: 30}, env)
	assert.Equal(t, CapacityChecking, d.Capacity.Status)
	assert.Equal(t, "2026-03-06", d.Capacity.Date)
	assert.Empty(t, d.LastWarnedDate)

	d = apply(t, d, CapacityResolved{Token: d.Capacity.Token, Date: "2026-03-06", Count: 2}, env)
	assert.Equal(t, CapacityAvailable, d.Capacity.Status)
}

func TestApply_CapacityFailsOpen(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate
	d = apply(t, d, SelectDate{Date: at(5, 0, 0, 0)}, env)

	d, notices, err := Apply(d, CapacityResolved{Token: d.Capacity.Token, Date: "2026-03-05", Err: errors.New("404 not found")}, env)
	require.NoError(t, err)
	assert.Empty(t, notices)
	assert.Equal(t, CapacityAvailable, d.Capacity.Status)

	d = apply(t, d, Next{}, env)
	assert.Equal(t, StepTimeSelect, d.Step)
}

func TestIsTimeBlocked(t *testing.T) {
	today := at(4, 0, 0, 0)
	tomorrow := at(5, 0, 0, 0)

	tests := []struct {
		name  string
		date  bool
		slot  types.TimeString
		admin bool
		want  bool
	}{
		{name: "equal minute is blocked", slot: "10:00", want: true},
		{name: "earlier slot is blocked", slot: "08:00", want: true},
		{name: "next slot is open", slot: "10:30"},
		{name: "future date never blocked", date: true, slot: "08:00"},
		{name: "admin never blocked", slot: "08:00", admin: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv(at(4, 10, 0, 0))
			env.Admin = tt.admin
			date := today
			if tt.date {
				date = tomorrow
			}
			assert.Equal(t, tt.want, IsTimeBlocked(date, tt.slot, env))
		})
	}

	// слот через минуту еще доступен
	assert.False(t, IsTimeBlocked(today, "10:00", testEnv(at(4, 9, 59, 0))))
	assert.True(t, IsTimeBlocked(today, "10:00", testEnv(at(4, 10, 0, 59))))
}

func TestApply_ClearsElapsedTime(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate
	d = apply(t, d, SelectDate{Date: at(4, 0, 0, 0)}, env)
	d = apply(t, d, CapacityResolved{Token: d.Capacity.Token, Date: "2026-03-04", Count: 0}, env)
	d = apply(t, d, Next{}, env)
	d = apply(t, d, SelectTime{Time: "10:30"}, env)

	_, _, err := Apply(d, SelectTime{Time: "09:30"}, env)
	assert.ErrorIs(t, err, ErrTimeSlotBlocked)

	later := testEnv(at(4, 10, 30, 0))
	cleared, notices, err := Apply(d, Tick{}, later)
	require.NoError(t, err)
	assert.True(t, cleared.Time.IsZero())
	require.Len(t, notices, 1)

	later.Admin = true
	kept, notices, err := Apply(d, Tick{}, later)
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("10:30"), kept.Time)
	assert.Empty(t, notices)
}

func TestApply_ResetKeepsWarnedDateAndToken(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate
	d = apply(t, d, SelectDate{Date: at(6, 0, 0, 0)}, env)
	d = apply(t, d, CapacityResolved{Token: d.Capacity.Token, Date: "2026-03-06", Count: 20}, env)
	d = apply(t, d, SelectStaff{StaffID: "gift"}, env)

	reset := apply(t, d, Reset{}, env)
	assert.Equal(t, StepServiceSelect, reset.Step)
	assert.Zero(t, reset.ServiceID)
	assert.Empty(t, reset.StaffID)
	assert.True(t, reset.Date.IsZero())
	assert.Equal(t, CapacityIdle, reset.Capacity.Status)
	assert.Equal(t, d.Capacity.Token, reset.Capacity.Token)
	assert.Equal(t, "2026-03-06", reset.LastWarnedDate)
}

func TestApply_UnknownStaff(t *testing.T) {
	env := testEnv(at(4, 10, 0, 0))
	d := NewDraft()
	d.Step = StepStaffAndDate

	_, _, err := Apply(d, SelectStaff{StaffID: "bob"}, env)
	assert.ErrorIs(t, err, ErrUnknownStaff)

	d = apply(t, d, SelectStaff{StaffID: domain.StaffNoPreference}, env)
	assert.Equal(t, domain.StaffNoPreference, d.StaffID)
}

func TestStep_Checkpoint(t *testing.T) {
	assert.Equal(t, "1.5", StepVariantSelect.Checkpoint())
	assert.Equal(t, "5", StepConfirmed.Checkpoint())
	assert.Equal(t, "customer_info", StepCustomerInfo.String())
}
