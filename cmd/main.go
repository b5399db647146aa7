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

	createOrderHandler "github.com/wahidman/serverr/internal/api/handlers/create_order"
	createTransactionHandler "github.com/wahidman/serverr/internal/api/handlers/create_transaction"
	getAvailableTimesHandler "github.com/wahidman/serverr/internal/api/handlers/get_available_times"
	getOrderHandler "github.com/wahidman/serverr/internal/api/handlers/get_order"
	healthHandler "github.com/wahidman/serverr/internal/api/handlers/health"
	listOrdersHandler "github.com/wahidman/serverr/internal/api/handlers/list_orders"
	notificationHandler "github.com/wahidman/serverr/internal/api/handlers/midtrans_notification"
	"github.com/wahidman/serverr/internal/api/middleware"
	"github.com/wahidman/serverr/internal/config"
	"github.com/wahidman/serverr/internal/domain"
	notificationCache "github.com/wahidman/serverr/internal/infra/cache/notification"
	"github.com/wahidman/serverr/internal/infra/storage/migrations"
	orderRepo "github.com/wahidman/serverr/internal/infra/storage/order"
	"github.com/wahidman/serverr/internal/integrations/midtrans"
	"github.com/wahidman/serverr/internal/integrations/operatorlink"
	ordersService "github.com/wahidman/serverr/internal/service/orders"
	applyNotificationUC "github.com/wahidman/serverr/internal/usecase/apply_notification"
	createOrderUC "github.com/wahidman/serverr/internal/usecase/create_order"
	createTransactionUC "github.com/wahidman/serverr/internal/usecase/create_transaction"
	getAvailableTimesUC "github.com/wahidman/serverr/internal/usecase/get_available_times"
	"github.com/wahidman/serverr/pkg/dbmetrics"
	"github.com/wahidman/serverr/pkg/logger"
	"github.com/wahidman/serverr/pkg/metrics"
	"github.com/wahidman/serverr/pkg/retrier"
	"github.com/wahidman/serverr/pkg/txmanager"
)

func main() {
	configPath := "config.toml"
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		configPath = p
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
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

	log.Info("Starting booking service...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	if cfg.Database.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
		log.Info("Database migrations applied")
	}

	// Без метрик обёртка работает как прозрачный прокси
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	if cfg.Metrics.Enabled {
		log.Info("Database metrics collection started")
	}

	orderRepository := orderRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)
	recorder := metrics.NewRecorder(metricsCollector)

	// Кеш дедупликации уведомлений
	var dedup applyNotificationUC.DedupCache = notificationCache.Nop{}
	if cfg.Notification.DedupEnabled {
		rdb := notificationCache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Работаем без кеша, уведомления всё равно идемпотентны на уровне БД
			log.Warn("Redis unavailable at %s, notification dedup disabled: %v", cfg.Redis.Addr, err)
		} else {
			dedup = notificationCache.NewCache(rdb, time.Duration(cfg.Notification.DedupTTL)*time.Second)
			log.Info("Notification dedup enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Notification.DedupTTL)
		}
		cancel()
	}

	// Инициализируем интеграционных клиентов
	paymentClient := midtrans.NewClient(
		cfg.Payment.BaseURL(),
		cfg.Payment.ServerKey,
		time.Duration(cfg.Payment.Timeout)*time.Second,
		retrier.Config{
			InitialInterval: time.Duration(cfg.Payment.RetryInitialMs) * time.Millisecond,
			MaxInterval:     time.Duration(cfg.Payment.RetryMaxMs) * time.Millisecond,
			MaxElapsedTime:  time.Duration(cfg.Payment.Timeout) * time.Second,
			Randomization:   0.5,
			Multiplier:      2,
			MaxRetries:      cfg.Payment.MaxRetries,
		},
		log,
	)
	linkBuilder := operatorlink.NewBuilder(cfg.Operator.Phone)
	log.Info("Integration clients initialized (Midtrans=%s production=%t timeout=%ds)",
		cfg.Payment.BaseURL(), cfg.Payment.IsProduction, cfg.Payment.Timeout)

	catalog, err := domain.NewSlotCatalog(cfg.Slots.Times)
	if err != nil {
		log.Fatal("Invalid slot catalog: %v", err)
	}

	// Инициализируем сервисы
	orderSvc := ordersService.NewService(orderRepository, log)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		txMgr,
		createOrderUC.NewReferenceGenerator(),
		linkBuilder,
		catalog,
		recorder,
		log,
	)

	createTransactionUseCase := createTransactionUC.NewUseCase(
		orderRepository,
		paymentClient,
		recorder,
		log,
	)

	applyNotificationUseCase := applyNotificationUC.NewUseCase(
		orderRepository,
		dedup,
		recorder,
		applyNotificationUC.Options{
			VerifySignature: cfg.Notification.VerifySignature,
			ServerKey:       cfg.Payment.ServerKey,
		},
		log,
	)

	getAvailableTimesUseCase := getAvailableTimesUC.NewUseCase(
		orderRepository,
		catalog,
		getAvailableTimesUC.Options{ReleaseFailed: cfg.Slots.ReleaseFailed},
		log,
	)

	// Инициализируем handlers
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	createTransaction := createTransactionHandler.NewHandler(createTransactionUseCase, log)
	notification := notificationHandler.NewHandler(applyNotificationUseCase, cfg.Notification.AckPolicy, log)
	getAvailableTimes := getAvailableTimesHandler.NewHandler(getAvailableTimesUseCase, log)
	listOrders := listOrdersHandler.NewHandler(orderSvc, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, log))
		log.Info("HTTP metrics middleware enabled")
	}
	r.Use(middleware.Timeout(time.Duration(cfg.Server.RequestTimeout) * time.Second))

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// --- Заказы ---
	r.HandleFunc("/create-order", createOrder.Handle).Methods(http.MethodPost)
	r.HandleFunc("/available-times", getAvailableTimes.Handle).Methods(http.MethodGet)
	r.HandleFunc("/orders", listOrders.Handle).Methods(http.MethodGet)
	r.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)

	// --- Оплата ---
	r.HandleFunc("/create-transaction", createTransaction.Handle).Methods(http.MethodPost)
	r.HandleFunc("/midtrans-notification", notification.Handle).Methods(http.MethodPost)

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	// CORS снаружи роутера, чтобы preflight OPTIONS не упирался в 405
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      middleware.CORS()(r),
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
	close(stopMetricsCh)

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
