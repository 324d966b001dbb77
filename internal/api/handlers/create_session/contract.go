package create_session

import wizard "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"

type WizardFactory interface {
	New(opts wizard.Options) *wizard.Wizard
}

type SessionStore interface {
	Create(w *wizard.Wizard) (string, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
