package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CapacityChecksTotal *prometheus.CounterVec
	SubmissionsTotal    *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
}

// New регистрирует метрики в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		CapacityChecksTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_capacity_checks_total",
			Help:        "Date capacity checks by outcome (available, full, failed_open, stale)",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_submissions_total",
			Help:        "Booking submissions by outcome",
			ConstLabels: constLabels,
		}, []string{"result"}),

		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "booking_active_sessions",
			Help:        "Open booking wizard sessions",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CapacityChecksTotal,
		m.SubmissionsTotal,
		m.ActiveSessions,
	)

	return m
}

// ObserveCapacityCheck учитывает результат проверки заполненности даты
func (m *Metrics) ObserveCapacityCheck(result string) {
	m.CapacityChecksTotal.WithLabelValues(result).Inc()
}

// ObserveSubmission учитывает результат отправки бронирования
func (m *Metrics) ObserveSubmission(result string) {
	m.SubmissionsTotal.WithLabelValues(result).Inc()
}

// SetActiveSessions выставляет количество открытых сессий
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.Set(float64(n))
}
