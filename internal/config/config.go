package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

const (
	CatalogSourceStatic   = "static"
	CatalogSourcePostgres = "postgres"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	SalonAPI  SalonAPIConfig  `toml:"salon_api"`
	Catalog   CatalogConfig   `toml:"catalog"`
	Database  DatabaseConfig  `toml:"database"`
	Booking   BookingConfig   `toml:"booking"`
	Sessions  SessionsConfig  `toml:"sessions"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Admin     AdminConfig     `toml:"admin"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type SalonAPIConfig struct {
	URL          string `toml:"url"`
	Timeout      int    `toml:"timeout"` // секунды
	MenuPageSize int    `toml:"menu_page_size"`
}

type CatalogConfig struct {
	Source string `toml:"source"` // static | postgres
	Seed   bool   `toml:"seed"`   // записать статический каталог в postgres при старте
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

type BookingConfig struct {
	DailyCapacity   int      `toml:"daily_capacity"`
	Timezone        string   `toml:"timezone"`
	ClosedWeekdays  []string `toml:"closed_weekdays"`
	Currency        string   `toml:"currency"`
	FirstSlot       string   `toml:"first_slot"`
	LastSlot        string   `toml:"last_slot"`
	SlotStepMinutes int      `toml:"slot_step_minutes"`
}

type SessionsConfig struct {
	TTL             int `toml:"ttl"`              // секунды
	CleanupInterval int `toml:"cleanup_interval"` // секунды
}

type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
	TrustProxy        bool    `toml:"trust_proxy"` // брать IP клиента из X-Forwarded-For / X-Real-IP
}

type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает конфигурацию из TOML файла, подставляет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	return finalize(&cfg)
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "salon-booking-bff"
	}
	if c.SalonAPI.Timeout == 0 {
		c.SalonAPI.Timeout = 15
	}
	if c.SalonAPI.MenuPageSize == 0 {
		c.SalonAPI.MenuPageSize = 100
	}
	if c.Catalog.Source == "" {
		c.Catalog.Source = CatalogSourceStatic
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Booking.DailyCapacity == 0 {
		c.Booking.DailyCapacity = domain.DefaultDailyCapacity
	}
	if c.Booking.Timezone == "" {
		c.Booking.Timezone = domain.DefaultTimezone
	}
	if c.Booking.ClosedWeekdays == nil {
		c.Booking.ClosedWeekdays = []string{"Sunday"}
	}
	if c.Booking.Currency == "" {
		c.Booking.Currency = domain.DefaultCurrency
	}
	if c.Booking.FirstSlot == "" {
		c.Booking.FirstSlot = domain.DefaultFirstSlot
	}
	if c.Booking.LastSlot == "" {
		c.Booking.LastSlot = domain.DefaultLastSlot
	}
	if c.Booking.SlotStepMinutes == 0 {
		c.Booking.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if c.Sessions.TTL == 0 {
		c.Sessions.TTL = 1800
	}
	if c.Sessions.CleanupInterval == 0 {
		c.Sessions.CleanupInterval = 60
	}
	if c.RateLimit.RequestsPerSecond == 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst == 0 {
		c.RateLimit.Burst = 20
	}
}

// Validate проверяет конфигурацию и возвращает все найденные ошибки разом
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.SalonAPI.URL == "" {
		errs = append(errs, errors.New("salon_api.url is required"))
	}
	if c.SalonAPI.Timeout < 0 {
		errs = append(errs, errors.New("salon_api.timeout must not be negative"))
	}

	switch c.Catalog.Source {
	case CatalogSourceStatic:
	case CatalogSourcePostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			errs = append(errs, errors.New("database.host and database.dbname are required for postgres catalog"))
		}
	default:
		errs = append(errs, fmt.Errorf("catalog.source must be %q or %q, got %q",
			CatalogSourceStatic, CatalogSourcePostgres, c.Catalog.Source))
	}
	if c.Catalog.Seed && c.Catalog.Source != CatalogSourcePostgres {
		errs = append(errs, errors.New("catalog.seed requires catalog.source = \"postgres\""))
	}

	if c.Booking.DailyCapacity < 1 {
		errs = append(errs, fmt.Errorf("booking.daily_capacity must be positive, got %d", c.Booking.DailyCapacity))
	}
	if _, err := time.LoadLocation(c.Booking.Timezone); err != nil {
		errs = append(errs, fmt.Errorf("booking.timezone: %w", err))
	}
	if _, err := parseWeekdays(c.Booking.ClosedWeekdays); err != nil {
		errs = append(errs, err)
	}
	first, errFirst := types.NewTimeStringFromString(c.Booking.FirstSlot)
	if errFirst != nil {
		errs = append(errs, fmt.Errorf("booking.first_slot: %w", errFirst))
	}
	last, errLast := types.NewTimeStringFromString(c.Booking.LastSlot)
	if errLast != nil {
		errs = append(errs, fmt.Errorf("booking.last_slot: %w", errLast))
	}
	if errFirst == nil && errLast == nil && last.IsBefore(first) {
		errs = append(errs, errors.New("booking.last_slot must not be before booking.first_slot"))
	}
	if c.Booking.SlotStepMinutes < 1 {
		errs = append(errs, fmt.Errorf("booking.slot_step_minutes must be positive, got %d", c.Booking.SlotStepMinutes))
	}

	if c.Sessions.TTL < 0 || c.Sessions.CleanupInterval < 1 {
		errs = append(errs, errors.New("sessions.ttl must not be negative and sessions.cleanup_interval must be positive"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst < 1) {
		errs = append(errs, errors.New("rate_limit.requests_per_second and rate_limit.burst must be positive"))
	}

	return errors.Join(errs...)
}

// DSN строка подключения к postgres
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Policy собирает правила календаря и вместимости для мастера бронирования
func (b *BookingConfig) Policy() (domain.BookingPolicy, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.BookingPolicy{}, fmt.Errorf("booking.timezone: %w", err)
	}
	weekdays, err := parseWeekdays(b.ClosedWeekdays)
	if err != nil {
		return domain.BookingPolicy{}, err
	}
	return domain.BookingPolicy{
		DailyCapacity:   b.DailyCapacity,
		Location:        loc,
		ClosedWeekdays:  weekdays,
		Currency:        b.Currency,
		FirstSlot:       types.TimeString(b.FirstSlot),
		LastSlot:        types.TimeString(b.LastSlot),
		SlotStepMinutes: b.SlotStepMinutes,
	}, nil
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayByName(name)
		if !ok {
			return nil, fmt.Errorf("booking.closed_weekdays: unknown weekday %q", name)
		}
		days = append(days, day)
	}
	return days, nil
}

func weekdayByName(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, true
		}
	}
	return 0, false
}

// SessionTTL время жизни неактивной сессии
func (s *SessionsConfig) SessionTTL() time.Duration {
	return time.Duration(s.TTL) * time.Second
}

// Interval период очистки истекших сессий
func (s *SessionsConfig) Interval() time.Duration {
	return time.Duration(s.CleanupInterval) * time.Second
}
