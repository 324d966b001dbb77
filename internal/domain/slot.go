package domain

import "github.com/m04kA/SMC-SalonBooking/pkg/types"

// TimeSlot represents one entry of the time grid for the selected date
type TimeSlot struct {
	Time    types.TimeString
	Blocked bool // already elapsed today (never set in admin mode)
}
