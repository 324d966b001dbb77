package create_quote

import (
	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pricing"
)

// Catalog каталог услуг
type Catalog interface {
	Find(id int64) (domain.ServiceOption, error)
}

// PriceEngine расчет цены с разбивкой
type PriceEngine interface {
	Explain(basePrice int64, sel domain.Selection, serviceID int64) pricing.Breakdown
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
