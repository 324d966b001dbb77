package submit_session

import wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"

type SessionStore interface {
	Get(id string) (*wizard.Wizard, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
