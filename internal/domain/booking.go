package domain

// AppointmentStatus represents the status of an appointment on the salon backend
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// Appointment represents an appointment as returned by the salon backend
type Appointment struct {
	ID                 int64
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	StaffName          string
	ServiceID          int64
	ServiceDescription string
	Date               string // YYYY-MM-DD
	Time               string // HH:MM
	Status             AppointmentStatus
	Notes              string
	TotalPrice         int64
	Currency           string
}

// CountsTowardCapacity returns true if the appointment occupies a place in the daily cap.
// Only confirmed appointments count; pending requests do not.
func (a *Appointment) CountsTowardCapacity() bool {
	return a.Status == StatusConfirmed
}

// AppointmentRequest is the outbound creation payload built at submission
type AppointmentRequest struct {
	CustomerName       string
	CustomerEmail      string
	CustomerPhone      string
	StaffName          string // empty when the customer has no preference
	ServiceID          int64
	ServiceDescription string
	Date               string // YYYY-MM-DD built from local date parts
	Time               string // HH:MM, 24h
	Status             AppointmentStatus
	Notes              string
	TotalPrice         int64
	Currency           string
}

// CountConfirmed returns the number of appointments that count toward the daily cap
func CountConfirmed(appointments []Appointment) int {
	count := 0
	for i := range appointments {
		if appointments[i].CountsTowardCapacity() {
			count++
		}
	}
	return count
}
