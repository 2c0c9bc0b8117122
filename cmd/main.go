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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	createBookingHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/create_booking"
	exportBookingsHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/export_bookings"
	getAdvisorBookingsHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/get_advisor_bookings"
	getAvailableSlotsHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/get_available_slots"
	getScheduleHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/get_schedule"
	getStudentBookingsHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/get_student_bookings"
	toggleAvailabilityHandler "github.com/m04kA/LL-SlotBookingService/internal/api/handlers/toggle_availability"
	"github.com/m04kA/LL-SlotBookingService/internal/api/middleware"
	"github.com/m04kA/LL-SlotBookingService/internal/app"
	"github.com/m04kA/LL-SlotBookingService/internal/config"
	bookingRepo "github.com/m04kA/LL-SlotBookingService/internal/infra/storage/booking"
	slotRepo "github.com/m04kA/LL-SlotBookingService/internal/infra/storage/slot"
	profileServiceClient "github.com/m04kA/LL-SlotBookingService/internal/integrations/profileservice"
	bookingsService "github.com/m04kA/LL-SlotBookingService/internal/service/bookings"
	exportService "github.com/m04kA/LL-SlotBookingService/internal/service/export"
	createBookingUC "github.com/m04kA/LL-SlotBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/LL-SlotBookingService/internal/usecase/get_available_slots"
	getScheduleUC "github.com/m04kA/LL-SlotBookingService/internal/usecase/get_schedule"
	toggleAvailabilityUC "github.com/m04kA/LL-SlotBookingService/internal/usecase/toggle_availability"
	"github.com/m04kA/LL-SlotBookingService/pkg/dbmetrics"
	"github.com/m04kA/LL-SlotBookingService/pkg/logger"
	"github.com/m04kA/LL-SlotBookingService/pkg/metrics"
	"github.com/m04kA/LL-SlotBookingService/pkg/simpletxmanager"
	"github.com/m04kA/LL-SlotBookingService/pkg/txmanager"
)

func main() {
	// .env подхватывается до чтения конфига (DB_PASSWORD и т.п.)
	_ = godotenv.Load()

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

	log.Info("Starting LL-SlotBookingService...")
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

	// Применяем миграции (если включено)
	if cfg.Migrations.Auto {
		migrator, err := app.NewMigrator(db, cfg.Migrations.Path)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := migrator.Run(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		version, err := migrator.Version(context.Background())
		if err != nil {
			log.Fatal("Failed to read migrations version: %v", err)
		}
		log.Info("Migrations applied, current version: %d", version)
	}

	// Инициализируем клиента ProfileService
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		slotRepository    *slotRepo.Repository
		bookingRepository *bookingRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		slotRepository = slotRepo.NewRepository(wrappedDB)
		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		slotRepository = slotRepo.NewRepository(db)
		bookingRepository = bookingRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingsSvc := bookingsService.NewService(bookingRepository, profileClient, log)
	exportSvc := exportService.NewService(bookingRepository, profileClient, log)

	// Инициализируем use cases
	toggleAvailabilityUseCase := toggleAvailabilityUC.NewUseCase(
		slotRepository,
		metricsCollector,
		cfg.Booking.LeadMinutes,
		log,
	)
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		profileClient,
		txMgr,
		metricsCollector,
		cfg.Booking.LeadMinutes,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		slotRepository,
		profileClient,
		cfg.Booking.LeadMinutes,
		log,
	)
	getScheduleUseCase := getScheduleUC.NewUseCase(slotRepository, bookingRepository, log)

	// Инициализируем handlers
	toggleAvailability := toggleAvailabilityHandler.NewHandler(toggleAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSchedule := getScheduleHandler.NewHandler(getScheduleUseCase, log)
	getStudentBookings := getStudentBookingsHandler.NewHandler(bookingsSvc, log)
	getAdvisorBookings := getAdvisorBookingsHandler.NewHandler(bookingsSvc, log)
	exportBookings := exportBookingsHandler.NewHandler(exportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix: все ручки требуют аутентификации шлюза,
	// мутирующие дополнительно проходят CSRF проверку
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth)
	api.Use(middleware.CSRF)

	// --- Слоты ---
	api.HandleFunc("/toggle-availability", toggleAvailability.Handle).Methods(http.MethodPost)
	api.HandleFunc("/get-available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/advisors/{advisorId}/schedule", getSchedule.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	api.HandleFunc("/bookings/create", createBooking.Handle).Methods(http.MethodPost)
	api.HandleFunc("/students/{studentId}/bookings", getStudentBookings.Handle).Methods(http.MethodGet)
	api.HandleFunc("/advisors/{advisorId}/bookings", getAdvisorBookings.Handle).Methods(http.MethodGet)

	// --- Администрирование ---
	api.HandleFunc("/admin/bookings/export", exportBookings.Handle).Methods(http.MethodGet)

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

	// Останавливаем сбор метрик connection pool
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
