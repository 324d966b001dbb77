package list_catalog

import "github.com/m04kA/SMC-SalonBooking/internal/domain"

type Catalog interface {
	ResolveOptions(categoryFilter string) []domain.ServiceOption
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
