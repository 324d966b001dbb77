package session

import "time"

// Session открытая сессия мастера бронирования
type Session interface {
	Close()
}

// MetricsRecorder учет количества открытых сессий
type MetricsRecorder interface {
	SetActiveSessions(n int)
}

// TimeProvider интерфейс для получения текущего времени
type TimeProvider interface {
	Now() time.Time
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

type noopMetrics struct{}

func (noopMetrics) SetActiveSessions(int) {}
