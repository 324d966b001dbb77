package list_menu_items

import (
	"context"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

type MenuClient interface {
	ListAllMenuItems(ctx context.Context, category, q string, pageSize int) ([]domain.MenuItem, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
