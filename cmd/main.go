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

	allocateSlotHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/allocate_slot"
	createApplicationHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/create_application"
	createSectionHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/create_section"
	deleteAllocationHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/delete_allocation"
	getAffectingSpansHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/get_affecting_spans"
	getApplicationHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/get_application"
	getApplicationRoundHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/get_application_round"
	refreshIndexesHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/refresh_indexes"
	rejectAllOptionsHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/reject_all_options"
	resetRoundAllocationHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/reset_round_allocation"
	runRoundAllocationHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/run_round_allocation"
	updateOptionOrderHandler "github.com/m04kA/SMC-SeasonalService/internal/api/handlers/update_option_order"
	"github.com/m04kA/SMC-SeasonalService/internal/api/middleware"
	"github.com/m04kA/SMC-SeasonalService/internal/config"
	allocationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/allocation"
	applicationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/application"
	hierarchyRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/hierarchy"
	optionRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/option"
	reservationRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/reservation"
	roundRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/round"
	sectionRepo "github.com/m04kA/SMC-SeasonalService/internal/infra/storage/section"
	profileServiceClient "github.com/m04kA/SMC-SeasonalService/internal/integrations/profileservice"
	"github.com/m04kA/SMC-SeasonalService/internal/service/events"
	hierarchyService "github.com/m04kA/SMC-SeasonalService/internal/service/hierarchy"
	permissionsService "github.com/m04kA/SMC-SeasonalService/internal/service/permissions"
	timespansService "github.com/m04kA/SMC-SeasonalService/internal/service/timespans"
	allocateSlotUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/allocate_slot"
	createApplicationUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_application"
	createSectionUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/create_section"
	deleteAllocationUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/delete_allocation"
	getAffectingSpansUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_affecting_spans"
	getApplicationUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application"
	getApplicationRoundUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/get_application_round"
	refreshIndexesUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/refresh_indexes"
	rejectAllOptionsUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/reject_all_options"
	resetRoundAllocationUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/reset_round_allocation"
	runRoundAllocationUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/run_round_allocation"
	updateOptionOrderUC "github.com/m04kA/SMC-SeasonalService/internal/usecase/update_option_order"
	"github.com/m04kA/SMC-SeasonalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SeasonalService/pkg/logger"
	"github.com/m04kA/SMC-SeasonalService/pkg/metrics"
	"github.com/m04kA/SMC-SeasonalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-SeasonalService/pkg/txmanager"
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

	log.Info("Starting SMC-SeasonalService...")
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

	// Инициализируем клиент ProfileService
	profileClient := profileServiceClient.NewClient(
		cfg.ProfileService.URL,
		time.Duration(cfg.ProfileService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ProfileService=%s timeout=%ds)",
		cfg.ProfileService.URL, cfg.ProfileService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		rounds       *roundRepo.Repository
		applications *applicationRepo.Repository
		sections     *sectionRepo.Repository
		options      *optionRepo.Repository
		allocations  *allocationRepo.Repository
		reservations *reservationRepo.Repository
		hierarchyDB  *hierarchyRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		rounds = roundRepo.NewRepository(wrappedDB)
		applications = applicationRepo.NewRepository(wrappedDB)
		sections = sectionRepo.NewRepository(wrappedDB)
		options = optionRepo.NewRepository(wrappedDB)
		allocations = allocationRepo.NewRepository(wrappedDB)
		reservations = reservationRepo.NewRepository(wrappedDB)
		hierarchyDB = hierarchyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		rounds = roundRepo.NewRepository(db)
		applications = applicationRepo.NewRepository(db)
		sections = sectionRepo.NewRepository(db)
		options = optionRepo.NewRepository(db)
		allocations = allocationRepo.NewRepository(db)
		reservations = reservationRepo.NewRepository(db)
		hierarchyDB = hierarchyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	hierarchySvc := hierarchyService.NewService(hierarchyDB, log)
	timespanSvc := timespansService.NewService(hierarchySvc, reservations, allocations, log)
	permissionSvc := permissionsService.NewService(profileClient, log)

	// Издатель доменных событий
	type EventPublisher interface {
		PublishAllocationCreated(ctx context.Context, event events.AllocationCreatedEvent) error
		PublishAllocationDeleted(ctx context.Context, event events.AllocationDeletedEvent) error
		PublishRoundReset(ctx context.Context, event events.RoundResetEvent) error
		PublishRoundHandled(ctx context.Context, event events.RoundHandledEvent) error
	}
	var eventPub EventPublisher
	var amqpPub *events.Publisher

	if cfg.Events.Enabled {
		amqpPub, err = events.NewPublisher(cfg.Events.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		eventPub = amqpPub
		log.Info("Event publisher connected to RabbitMQ")
	} else {
		eventPub = events.NopPublisher{}
		log.Info("Event publishing disabled")
	}

	// Строим начальный снимок индекса иерархии
	refreshCtx, cancelRefresh := context.WithTimeout(context.Background(), 30*time.Second)
	if err := hierarchySvc.Refresh(refreshCtx); err != nil {
		cancelRefresh()
		log.Fatal("Failed to build hierarchy index: %v", err)
	}
	cancelRefresh()
	log.Info("Hierarchy index built at %s", hierarchySvc.RefreshedAt().Format(time.RFC3339))

	// Фоновое обновление индекса
	stopRefreshCh := make(chan struct{})
	if cfg.Indexes.RefreshInterval > 0 {
		interval := time.Duration(cfg.Indexes.RefreshInterval) * time.Second
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
					if err := hierarchySvc.Refresh(ctx); err != nil {
						log.Error("Periodic hierarchy refresh failed: %v", err)
					}
					cancel()
				case <-stopRefreshCh:
					return
				}
			}
		}()
		log.Info("Periodic hierarchy refresh enabled (interval=%s)", interval)
	}

	// Инициализируем use cases
	getRoundUseCase := getApplicationRoundUC.NewUseCase(rounds, allocations, log)
	getSpansUseCase := getAffectingSpansUC.NewUseCase(timespanSvc, hierarchySvc, log)
	refreshUseCase := refreshIndexesUC.NewUseCase(hierarchySvc, permissionSvc, log)

	createApplicationUseCase := createApplicationUC.NewUseCase(rounds, applications, permissionSvc, log)
	getApplicationUseCase := getApplicationUC.NewUseCase(rounds, applications, sections, options, allocations, permissionSvc, log)
	createSectionUseCase := createSectionUC.NewUseCase(rounds, applications, sections, options, permissionSvc, txMgr, log)
	updateOrderUseCase := updateOptionOrderUC.NewUseCase(rounds, applications, sections, options, hierarchySvc, permissionSvc, txMgr, log)
	rejectOptionsUseCase := rejectAllOptionsUC.NewUseCase(rounds, applications, sections, options, allocations, hierarchySvc, permissionSvc, txMgr, log)

	allocateSlotUseCase := allocateSlotUC.NewUseCase(
		rounds, applications, sections, options, allocations,
		timespanSvc, hierarchySvc, permissionSvc, eventPub, txMgr, log,
	)
	deleteAllocationUseCase := deleteAllocationUC.NewUseCase(
		rounds, applications, sections, options, allocations,
		hierarchySvc, permissionSvc, eventPub, txMgr, log,
	)
	runAllocationUseCase := runRoundAllocationUC.NewUseCase(
		rounds, sections, options, allocations, reservations,
		timespanSvc, hierarchySvc, permissionSvc, eventPub, txMgr, log,
	)
	resetAllocationUseCase := resetRoundAllocationUC.NewUseCase(
		rounds, options, allocations, reservations,
		hierarchySvc, permissionSvc, eventPub, txMgr, log,
	)

	// Инициализируем handlers
	getRound := getApplicationRoundHandler.NewHandler(getRoundUseCase, log)
	getSpans := getAffectingSpansHandler.NewHandler(getSpansUseCase, log)
	refreshIndexes := refreshIndexesHandler.NewHandler(refreshUseCase, log)
	createApplication := createApplicationHandler.NewHandler(createApplicationUseCase, log)
	getApplication := getApplicationHandler.NewHandler(getApplicationUseCase, log)
	createSection := createSectionHandler.NewHandler(createSectionUseCase, log)
	updateOrder := updateOptionOrderHandler.NewHandler(updateOrderUseCase, log)
	rejectOptions := rejectAllOptionsHandler.NewHandler(rejectOptionsUseCase, log)
	allocateSlot := allocateSlotHandler.NewHandler(allocateSlotUseCase, log)
	deleteAllocation := deleteAllocationHandler.NewHandler(deleteAllocationUseCase, log)
	runAllocation := runRoundAllocationHandler.NewHandler(runAllocationUseCase, log)
	resetAllocation := resetRoundAllocationHandler.NewHandler(resetAllocationUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Раунд подачи заявок с производным статусом
	api.HandleFunc("/application-rounds/{roundId}", getRound.Handle).Methods(http.MethodGet)

	// Занятые интервалы площадки и её конфликтного множества
	api.HandleFunc("/reservation-units/{unitId}/affecting-spans", getSpans.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret))

	// --- Заявки ---
	protected.HandleFunc("/applications", createApplication.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/applications/{applicationId}", getApplication.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/applications/{applicationId}/sections", createSection.Handle).Methods(http.MethodPost)

	// --- Варианты секций ---
	protected.HandleFunc("/sections/{sectionId}/options/order", updateOrder.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/sections/{sectionId}/reject-all-options", rejectOptions.Handle).Methods(http.MethodPost)

	// --- Распределение ---
	protected.HandleFunc("/allocations", allocateSlot.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/allocations/{allocationId}", deleteAllocation.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/application-rounds/{roundId}/allocate", runAllocation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/application-rounds/{roundId}/reset", resetAllocation.Handle).Methods(http.MethodPost)

	// --- Служебные ---
	protected.HandleFunc("/indexes/refresh", refreshIndexes.Handle).Methods(http.MethodPost)

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

	close(stopRefreshCh)

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	if amqpPub != nil {
		if err := amqpPub.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
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
