package list_staff

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type Catalog interface {
	Staff() []domain.StaffMember
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
