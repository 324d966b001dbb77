package list_staff

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type StaffMemberResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// StaffResponse HTTP response model
type StaffResponse struct {
	Staff []StaffMemberResponse `json:"staff"`
}

func FromDomain(staff []domain.StaffMember) *StaffResponse {
	resp := &StaffResponse{Staff: make([]StaffMemberResponse, 0, len(staff))}
	for _, s := range staff {
		resp.Staff = append(resp.Staff, StaffMemberResponse{ID: s.ID, Name: s.Name})
	}
	return resp
}
