package domain

import "time"

// Booking policy defaults
const (
	DefaultDailyCapacity   = 20 // confirmed appointments per calendar date
	DefaultCurrency        = "UGX"
	DefaultTimezone        = "Africa/Kampala"
	DefaultFirstSlot       = "08:00"
	DefaultLastSlot        = "19:00"
	DefaultSlotStepMinutes = 30
)

// StaffNoPreference is the roster id meaning "any stylist"
const StaffNoPreference = "any"

// DefaultClosedWeekdays days the calendar does not offer
var DefaultClosedWeekdays = []time.Weekday{time.Sunday}

// Separators used when rendering variant selections
const (
	DescriptionSeparator = "-"   // stored service_description
	SummarySeparator     = " • " // confirmation summary
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
