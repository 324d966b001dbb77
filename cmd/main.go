package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	closeSessionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/close_session"
	createQuoteHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_quote"
	createSessionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/create_session"
	getSessionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_session"
	getTimeSlotsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/get_time_slots"
	listCatalogHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_catalog"
	listMenuItemsHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_menu_items"
	listStaffHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/list_staff"
	postEventHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/post_event"
	submitSessionHandler "github.com/m04kA/SMC-SalonBooking/internal/api/handlers/submit_session"
	"github.com/m04kA/SMC-SalonBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SalonBooking/internal/config"
	catalogRepo "github.com/m04kA/SMC-SalonBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/infra/storage/session"
	"github.com/m04kA/SMC-SalonBooking/internal/integrations/salonapi"
	"github.com/m04kA/SMC-SalonBooking/internal/service/catalog"
	"github.com/m04kA/SMC-SalonBooking/internal/service/pricing"
	bookingWizardUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/booking_wizard"
	createQuoteUC "github.com/m04kA/SMC-SalonBooking/internal/usecase/create_quote"
	"github.com/m04kA/SMC-SalonBooking/pkg/logger"
	"github.com/m04kA/SMC-SalonBooking/pkg/metrics"
)

func main() {
	configPath := flag.String("config", envOr("CONFIG_PATH", "config.toml"), "path to TOML config")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-SalonBooking...")
	log.Info("Configuration loaded from %s", *configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Правила календаря и вместимости
	policy, err := cfg.Booking.Policy()
	if err != nil {
		log.Fatal("Invalid booking policy: %v", err)
	}

	// Каталог услуг и таблица надбавок
	resolver, overrides, closeDB := loadCatalog(cfg, log)
	defer closeDB()
	engine := pricing.NewEngine(overrides)
	log.Info("Catalog loaded (source=%s, options=%d, staff=%d)",
		cfg.Catalog.Source, len(resolver.ResolveOptions("")), len(resolver.Staff()))

	// Инициализируем клиент бэкенда салона
	salonClient := salonapi.NewClient(
		cfg.SalonAPI.URL,
		time.Duration(cfg.SalonAPI.Timeout)*time.Second,
		log,
	)
	log.Info("Salon API client initialized (url=%s, timeout=%ds)", cfg.SalonAPI.URL, cfg.SalonAPI.Timeout)

	// Инициализируем use cases
	wizardFactory := bookingWizardUC.NewFactory(
		resolver,
		engine,
		salonClient,
		salonClient,
		policy,
		log,
	)
	createQuoteUseCase := createQuoteUC.NewUseCase(resolver, engine, policy.Currency, log)

	// Хранилище сессий мастера записи
	sessions := session.NewStore[*bookingWizardUC.Wizard](cfg.Sessions.SessionTTL(), log)
	if cfg.Metrics.Enabled {
		wizardFactory.WithMetrics(metricsCollector)
		sessions.WithMetrics(metricsCollector)
	}
	sessions.StartJanitor(cfg.Sessions.Interval())

	// Инициализируем handlers
	listCatalog := listCatalogHandler.NewHandler(resolver, log)
	listStaff := listStaffHandler.NewHandler(resolver, log)
	createQuote := createQuoteHandler.NewHandler(createQuoteUseCase, log)
	listMenuItems := listMenuItemsHandler.NewHandler(salonClient, cfg.SalonAPI.MenuPageSize, log)
	createSession := createSessionHandler.NewHandler(wizardFactory, sessions, log)
	getSession := getSessionHandler.NewHandler(sessions, log)
	getTimeSlots := getTimeSlotsHandler.NewHandler(sessions, log)
	postEvent := postEventHandler.NewHandler(sessions, log)
	submitSession := submitSessionHandler.NewHandler(sessions, log)
	closeSession := closeSessionHandler.NewHandler(sessions, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit.Enabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, log).
			WithTrustProxy(cfg.RateLimit.TrustProxy)
		api.Use(limiter.Middleware())
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d, trust_proxy=%t)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.TrustProxy)
	}
	api.Use(middleware.Admin(cfg.Admin.Token, log))

	// --- Каталог и цены ---
	api.HandleFunc("/catalog", listCatalog.Handle).Methods(http.MethodGet)
	api.HandleFunc("/staff", listStaff.Handle).Methods(http.MethodGet)
	api.HandleFunc("/quotes", createQuote.Handle).Methods(http.MethodPost)
	api.HandleFunc("/menu-items", listMenuItems.Handle).Methods(http.MethodGet)

	// --- Мастер записи ---
	api.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}", getSession.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}", closeSession.Handle).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{sessionId}/time-slots", getTimeSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{sessionId}/events", postEvent.Handle).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{sessionId}/submit", submitSession.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Закрываем сессии: незавершенные проверки дат отменяются
	sessions.Stop()
	if limiter != nil {
		limiter.Stop()
	}

	log.Info("Server stopped gracefully")
}

// loadCatalog возвращает каталог из статической таблицы или из postgres
func loadCatalog(cfg *config.Config, log *logger.Logger) (*catalog.Resolver, pricing.OverrideTable, func()) {
	if cfg.Catalog.Source != config.CatalogSourcePostgres {
		return catalog.NewDefaultResolver(), pricing.DefaultOverrides(), func() {}
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Проверяем соединение
	if err := db.PingContext(ctx); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	repo := catalogRepo.NewRepository(db)

	if cfg.Catalog.Seed {
		if err := repo.Seed(ctx, catalog.DefaultOptions(), pricing.DefaultOverrides().Rows(), catalog.DefaultStaff()); err != nil {
			log.Fatal("Failed to seed catalog: %v", err)
		}
		log.Info("Catalog seeded from the built-in table")
	}

	resolver, rows, err := catalog.Load(ctx, repo)
	if err != nil {
		log.Fatal("Failed to load catalog from database: %v", err)
	}

	return resolver, pricing.NewOverrideTableFromRows(rows), func() { _ = db.Close() }
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
