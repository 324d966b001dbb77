package domain

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// BookingPolicy holds the calendar and capacity rules the wizard enforces on the client side
type BookingPolicy struct {
	DailyCapacity   int
	Location        *time.Location
	ClosedWeekdays  []time.Weekday
	Currency        string
	FirstSlot       types.TimeString
	LastSlot        types.TimeString
	SlotStepMinutes int
}

// DefaultBookingPolicy returns the salon defaults
func DefaultBookingPolicy() BookingPolicy {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.Local
	}
	return BookingPolicy{
		DailyCapacity:   DefaultDailyCapacity,
		Location:        loc,
		ClosedWeekdays:  append([]time.Weekday(nil), DefaultClosedWeekdays...),
		Currency:        DefaultCurrency,
		FirstSlot:       DefaultFirstSlot,
		LastSlot:        DefaultLastSlot,
		SlotStepMinutes: DefaultSlotStepMinutes,
	}
}

// IsClosedOn returns true if the salon does not take bookings on that weekday
func (p *BookingPolicy) IsClosedOn(day time.Weekday) bool {
	for _, d := range p.ClosedWeekdays {
		if d == day {
			return true
		}
	}
	return false
}

// TimeSlots generates the bookable grid from FirstSlot to LastSlot inclusive
func (p *BookingPolicy) TimeSlots() []types.TimeString {
	slots := make([]types.TimeString, 0)
	if p.SlotStepMinutes <= 0 {
		return slots
	}
	current := p.FirstSlot
	for !current.IsAfter(p.LastSlot) {
		slots = append(slots, current)
		next, err := current.AddMinutes(p.SlotStepMinutes)
		if err != nil {
			break
		}
		current = next
	}
	return slots
}

// HasSlot returns true if t is on the grid
func (p *BookingPolicy) HasSlot(t types.TimeString) bool {
	for _, s := range p.TimeSlots() {
		if s == t {
			return true
		}
	}
	return false
}
