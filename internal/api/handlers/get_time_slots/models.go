package get_time_slots

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type TimeSlotResponse struct {
	Time    string `json:"time"`
	Blocked bool   `json:"blocked"`
}

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	Date  string             `json:"date,omitempty"`
	Slots []TimeSlotResponse `json:"slots"`
}

func FromDomain(date string, slots []domain.TimeSlot) *TimeSlotsResponse {
	resp := &TimeSlotsResponse{Date: date, Slots: make([]TimeSlotResponse, 0, len(slots))}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, TimeSlotResponse{Time: s.Time.String(), Blocked: s.Blocked})
	}
	return resp
}
