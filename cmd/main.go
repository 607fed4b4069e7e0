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

	acceptAppointmentHandler "github.com/promeet/booking-service/internal/api/handlers/accept_appointment"
	acceptSuggestionHandler "github.com/promeet/booking-service/internal/api/handlers/accept_suggestion"
	completeAppointmentHandler "github.com/promeet/booking-service/internal/api/handlers/complete_appointment"
	createAppointmentHandler "github.com/promeet/booking-service/internal/api/handlers/create_appointment"
	declineAppointmentHandler "github.com/promeet/booking-service/internal/api/handlers/decline_appointment"
	declineSuggestionHandler "github.com/promeet/booking-service/internal/api/handlers/decline_suggestion"
	getAppointmentHandler "github.com/promeet/booking-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/promeet/booking-service/internal/api/handlers/get_available_slots"
	getNotificationsHandler "github.com/promeet/booking-service/internal/api/handlers/get_notifications"
	getOffDaysHandler "github.com/promeet/booking-service/internal/api/handlers/get_off_days"
	getProfessionalAppointmentsHandler "github.com/promeet/booking-service/internal/api/handlers/get_professional_appointments"
	getScheduleHandler "github.com/promeet/booking-service/internal/api/handlers/get_schedule"
	getUserAppointmentsHandler "github.com/promeet/booking-service/internal/api/handlers/get_user_appointments"
	markNotificationReadHandler "github.com/promeet/booking-service/internal/api/handlers/mark_notification_read"
	saveScheduleOverrideHandler "github.com/promeet/booking-service/internal/api/handlers/save_schedule_override"
	suggestNewTimeHandler "github.com/promeet/booking-service/internal/api/handlers/suggest_new_time"
	updateScheduleHandler "github.com/promeet/booking-service/internal/api/handlers/update_schedule"
	"github.com/promeet/booking-service/internal/api/middleware"
	"github.com/promeet/booking-service/internal/config"
	appointmentRepo "github.com/promeet/booking-service/internal/infra/storage/appointment"
	notificationRepo "github.com/promeet/booking-service/internal/infra/storage/notification"
	professionalRepo "github.com/promeet/booking-service/internal/infra/storage/professional"
	scheduleRepo "github.com/promeet/booking-service/internal/infra/storage/schedule"
	pushChannelClient "github.com/promeet/booking-service/internal/integrations/pushchannel"
	appointmentsService "github.com/promeet/booking-service/internal/service/appointments"
	notifierService "github.com/promeet/booking-service/internal/service/notifier"
	scheduleService "github.com/promeet/booking-service/internal/service/schedule"
	createAppointmentUC "github.com/promeet/booking-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/promeet/booking-service/internal/usecase/get_available_slots"
	reminderWorker "github.com/promeet/booking-service/internal/worker/reminder"
	"github.com/promeet/booking-service/pkg/dbmetrics"
	"github.com/promeet/booking-service/pkg/logger"
	"github.com/promeet/booking-service/pkg/metrics"
	"github.com/promeet/booking-service/pkg/simpletxmanager"
	"github.com/promeet/booking-service/pkg/txmanager"
)

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

	log.Info("Starting booking-service...")
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

	// Инициализируем клиент push-шлюза
	pushClient := pushChannelClient.NewClient(
		cfg.PushService.URL,
		time.Duration(cfg.PushService.Timeout)*time.Second,
		log,
	)
	log.Info("Push channel client initialized (url=%s timeout=%ds)", cfg.PushService.URL, cfg.PushService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository  *appointmentRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		professionalRepository *professionalRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		professionalRepository = professionalRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		professionalRepository = professionalRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	notifierSvc := notifierService.NewService(notificationRepository, pushClient, log)
	scheduleSvc := scheduleService.NewService(
		scheduleRepository,
		professionalRepository,
		&scheduleService.RealTimeProvider{},
		log,
	)
	appointmentsSvc := appointmentsService.NewService(
		appointmentRepository,
		professionalRepository,
		notifierSvc,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		professionalRepository,
		scheduleSvc,
		notifierSvc,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		appointmentRepository,
		professionalRepository,
		scheduleSvc,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentsSvc, log)
	getUserAppointments := getUserAppointmentsHandler.NewHandler(appointmentsSvc, log)
	getProfessionalAppointments := getProfessionalAppointmentsHandler.NewHandler(appointmentsSvc, log)
	acceptAppointment := acceptAppointmentHandler.NewHandler(appointmentsSvc, log)
	declineAppointment := declineAppointmentHandler.NewHandler(appointmentsSvc, log)
	suggestNewTime := suggestNewTimeHandler.NewHandler(appointmentsSvc, log)
	acceptSuggestion := acceptSuggestionHandler.NewHandler(appointmentsSvc, log)
	declineSuggestion := declineSuggestionHandler.NewHandler(appointmentsSvc, log)
	completeAppointment := completeAppointmentHandler.NewHandler(appointmentsSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	saveScheduleOverride := saveScheduleOverrideHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	getOffDays := getOffDaysHandler.NewHandler(scheduleSvc, log)
	getNotifications := getNotificationsHandler.NewHandler(notifierSvc, log)
	markNotificationRead := markNotificationReadHandler.NewHandler(notifierSvc, log)

	// Запускаем воркер напоминаний
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()

	if cfg.Reminder.Enabled {
		worker := reminderWorker.NewWorker(
			appointmentRepository,
			notifierSvc,
			time.Duration(cfg.Reminder.IntervalSeconds)*time.Second,
			metricsCollector,
			log,
		)
		go worker.Run(workerCtx)
	} else {
		log.Info("Reminder worker disabled by config")
	}

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

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты специалиста на дату
	api.HandleFunc("/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Выходные дни специалиста
	api.HandleFunc("/professionals/{professionalId}/off-days",
		getOffDays.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Записи клиента
	protected.HandleFunc("/users/{userId}/appointments", getUserAppointments.Handle).Methods(http.MethodGet)

	// Записи специалиста
	protected.HandleFunc("/professionals/{professionalId}/appointments",
		getProfessionalAppointments.Handle).Methods(http.MethodGet)

	// --- Жизненный цикл записи ---
	protected.HandleFunc("/appointments/{appointmentId}/accept", acceptAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/decline", declineAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/suggest", suggestNewTime.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/suggestion/accept", acceptSuggestion.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/suggestion/decline", declineSuggestion.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{appointmentId}/complete", completeAppointment.Handle).Methods(http.MethodPatch)

	// --- Расписание специалиста ---
	protected.HandleFunc("/professionals/{professionalId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/professionals/{professionalId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/professionals/{professionalId}/schedule/overrides",
		saveScheduleOverride.Handle).Methods(http.MethodPut)

	// --- Уведомления ---
	protected.HandleFunc("/users/{userId}/notifications", getNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/notifications/read", markNotificationRead.HandleAll).Methods(http.MethodPatch)
	protected.HandleFunc("/notifications/{notificationId}/read", markNotificationRead.Handle).Methods(http.MethodPatch)

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

	// Останавливаем воркер напоминаний
	stopWorker()

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
