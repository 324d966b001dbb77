package booking_wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

// AppointmentLister источник записей на дату; не должен кешировать ответ
type AppointmentLister interface {
	ListAppointmentsByDate(ctx context.Context, date string) ([]domain.Appointment, error)
}

// AppointmentCreator создает запись на бэкенде салона
type AppointmentCreator interface {
	CreateAppointment(ctx context.Context, req *domain.AppointmentRequest) (*domain.Appointment, error)
}

// Catalog каталог услуг и мастеров
type Catalog interface {
	ResolveOptions(filter string) []domain.ServiceOption
	Find(id int64) (domain.ServiceOption, error)
	StaffName(id string) (string, error)
}

// PriceEngine расчет итоговой цены
type PriceEngine interface {
	Compute(basePrice int64, sel domain.Selection, serviceID int64) int64
}

// MetricsRecorder метрики мастера записи
type MetricsRecorder interface {
	ObserveCapacityCheck(result string)
	ObserveSubmission(result string)
}

// BackendError ошибка бэкенда с сообщением для пользователя
type BackendError interface {
	error
	BackendMessage() string
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

type noopMetrics struct{}

func (noopMetrics) ObserveCapacityCheck(string) {}
func (noopMetrics) ObserveSubmission(string)    {}
