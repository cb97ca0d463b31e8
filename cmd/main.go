package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/intellifit/GymBookingService/internal/api/handlers/cancel_booking"
	checkInHandler "github.com/intellifit/GymBookingService/internal/api/handlers/check_in"
	checkOutHandler "github.com/intellifit/GymBookingService/internal/api/handlers/check_out"
	checkRangeHandler "github.com/intellifit/GymBookingService/internal/api/handlers/check_range"
	createBookingHandler "github.com/intellifit/GymBookingService/internal/api/handlers/create_booking"
	equipmentEligibilityHandler "github.com/intellifit/GymBookingService/internal/api/handlers/equipment_eligibility"
	getAvailableSlotsHandler "github.com/intellifit/GymBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/intellifit/GymBookingService/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/intellifit/GymBookingService/internal/api/handlers/get_user_bookings"
	todayBookingsHandler "github.com/intellifit/GymBookingService/internal/api/handlers/today_bookings"
	"github.com/intellifit/GymBookingService/internal/api/middleware"
	"github.com/intellifit/GymBookingService/internal/config"
	"github.com/intellifit/GymBookingService/internal/infra/cache"
	"github.com/intellifit/GymBookingService/internal/infra/events"
	bookingRepo "github.com/intellifit/GymBookingService/internal/infra/storage/booking"
	slotRepo "github.com/intellifit/GymBookingService/internal/infra/storage/slot"
	facilityServiceClient "github.com/intellifit/GymBookingService/internal/integrations/facilityservice"
	tokenServiceClient "github.com/intellifit/GymBookingService/internal/integrations/tokenservice"
	userServiceClient "github.com/intellifit/GymBookingService/internal/integrations/userservice"
	availabilityService "github.com/intellifit/GymBookingService/internal/service/availability"
	bookingsService "github.com/intellifit/GymBookingService/internal/service/bookings"
	slotcalendarService "github.com/intellifit/GymBookingService/internal/service/slotcalendar"
	createBookingUC "github.com/intellifit/GymBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/intellifit/GymBookingService/internal/usecase/get_available_slots"
	"github.com/intellifit/GymBookingService/pkg/dbmetrics"
	"github.com/intellifit/GymBookingService/pkg/logger"
	"github.com/intellifit/GymBookingService/pkg/metrics"
	"github.com/intellifit/GymBookingService/pkg/simpletxmanager"
	"github.com/intellifit/GymBookingService/pkg/txmanager"
)

// systemClock реальный источник времени для production
type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting GymBookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	facilityClient := facilityServiceClient.NewClient(
		cfg.FacilityService.URL,
		time.Duration(cfg.FacilityService.Timeout)*time.Second,
		log,
	)
	tokenClient := tokenServiceClient.NewClient(
		cfg.TokenService.URL,
		time.Duration(cfg.TokenService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (UserService=%s, FacilityService=%s, TokenService=%s)",
		cfg.UserService.URL, cfg.FacilityService.URL, cfg.TokenService.URL)

	// Паблишер событий бронирований
	var eventPublisher events.Publisher
	if cfg.NATS.Enabled {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to NATS: %v", err)
		}
		eventPublisher = natsPublisher
		log.Info("NATS event publisher connected to %s", cfg.NATS.URL)
	} else {
		eventPublisher = events.NoopPublisher{}
		log.Info("NATS disabled, booking events will not be published")
	}
	defer eventPublisher.Close()

	clock := systemClock{}

	// Кэш снимков доступности
	availabilityCache := cache.New(
		time.Duration(cfg.Slots.CacheTTLMinutes)*time.Minute,
		clock,
	)
	log.Info("Availability cache initialized (TTL=%dm)", cfg.Slots.CacheTTLMinutes)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository *bookingRepo.Repository
		slotRepository    *slotRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		slotRepository = slotRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		slotRepository = slotRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	slotCalendarSvc := slotcalendarService.NewService(
		slotRepository,
		facilityClient,
		availabilityCache,
		slotcalendarService.GridParams{
			OpenHour:            cfg.Slots.OpenHour,
			CloseHour:           cfg.Slots.CloseHour,
			SlotDurationMinutes: cfg.Slots.SlotDurationMinutes,
			RetentionDays:       cfg.Slots.RetentionDays,
		},
		clock,
		log,
	)

	availabilitySvc := availabilityService.NewService(
		bookingRepository,
		userClient,
		log,
	)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		slotRepository,
		userClient,
		tokenClient,
		availabilityCache,
		eventPublisher,
		clock,
		log,
	)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		slotRepository,
		slotCalendarSvc,
		availabilitySvc,
		userClient,
		facilityClient,
		tokenClient,
		availabilityCache,
		eventPublisher,
		txMgr,
		createBookingUC.WorkingWindow{
			OpenHour:  cfg.Slots.OpenHour,
			CloseHour: cfg.Slots.CloseHour,
		},
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotCalendarSvc,
		availabilityCache,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	checkRange := checkRangeHandler.NewHandler(availabilitySvc, log)
	equipmentEligibility := equipmentEligibilityHandler.NewHandler(availabilitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	checkIn := checkInHandler.NewHandler(bookingSvc, log)
	checkOut := checkOutHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	todayBookings := todayBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступность ресурса на дату (через кэш)
	api.HandleFunc("/availability/{resourceKind}/{resourceId}",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Авторитетная проверка свободного диапазона (мимо кэша)
	api.HandleFunc("/availability/{resourceKind}/{resourceId}/check",
		checkRange.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/today", todayBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/check-in", checkIn.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/check-out", checkOut.Handle).Methods(http.MethodPost)

	// --- Пользователи ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/equipment-eligibility", equipmentEligibility.Handle).Methods(http.MethodGet)

	// Фоновая уборка: устаревшие слоты, протухший кэш, no-show бронирования
	stopJanitorCh := make(chan struct{})
	go func() {
		interval := time.Duration(cfg.Slots.JanitorIntervalMinutes) * time.Minute
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Info("Janitor started (interval=%s)", interval)
		for {
			select {
			case <-ticker.C:
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				if err := slotCalendarSvc.PurgeExpired(ctx); err != nil {
					log.Error("Janitor: slot purge failed: %v", err)
				}
				if _, err := bookingSvc.SweepExpired(ctx); err != nil {
					log.Error("Janitor: expired booking sweep failed: %v", err)
				}
				cancel()
			case <-stopJanitorCh:
				log.Info("Janitor stopped")
				return
			}
		}
	}()

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

	close(stopJanitorCh)

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
