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
	"github.com/redis/go-redis/v9"

	cartHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/cart"
	cancelOrderHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/cancel_order"
	checkoutCartHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/checkout_cart"
	completeOrderHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/complete_order"
	confirmOrderHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/confirm_order"
	createOrderHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/create_order"
	deleteBranchHoursHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/delete_branch_hours"
	getAvailableSlotsHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_available_slots"
	getBranchHoursHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_branch_hours"
	getBranchOrdersHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_branch_orders"
	getClientOrdersHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_client_orders"
	getOrderHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/get_order"
	upsertBranchHoursHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/upsert_branch_hours"
	walletHandler "github.com/m04kA/SMC-BarberService/internal/api/handlers/wallet"
	"github.com/m04kA/SMC-BarberService/internal/api/middleware"
	"github.com/m04kA/SMC-BarberService/internal/availability"
	"github.com/m04kA/SMC-BarberService/internal/config"
	cartStore "github.com/m04kA/SMC-BarberService/internal/infra/cache/cart"
	appointmentRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/appointment"
	branchRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/branch"
	catalogRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/catalog"
	loyaltyRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/loyalty"
	orderRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/order"
	settlementRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/settlement"
	staffRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/staff"
	walletRepo "github.com/m04kA/SMC-BarberService/internal/infra/storage/wallet"
	"github.com/m04kA/SMC-BarberService/internal/integrations/notifier"
	userServiceClient "github.com/m04kA/SMC-BarberService/internal/integrations/userservice"
	branchesService "github.com/m04kA/SMC-BarberService/internal/service/branches"
	cartService "github.com/m04kA/SMC-BarberService/internal/service/cart"
	ordersService "github.com/m04kA/SMC-BarberService/internal/service/orders"
	walletService "github.com/m04kA/SMC-BarberService/internal/service/wallet"
	checkoutCartUC "github.com/m04kA/SMC-BarberService/internal/usecase/checkout_cart"
	completeOrderUC "github.com/m04kA/SMC-BarberService/internal/usecase/complete_order"
	createOrderUC "github.com/m04kA/SMC-BarberService/internal/usecase/create_order"
	getAvailableSlotsUC "github.com/m04kA/SMC-BarberService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-BarberService/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberService/pkg/logger"
	"github.com/m04kA/SMC-BarberService/pkg/metrics"
	"github.com/m04kA/SMC-BarberService/pkg/txmanager"
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

	log.Info("Starting SMC-BarberService...")
	log.Info("Configuration loaded from %s", configPath)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %q: %v", cfg.Booking.Timezone, err)
	}

	defaultPolicy, err := availability.ParseStepPolicy(cfg.Booking.DefaultStepPolicy, availability.PolicyMargin)
	if err != nil {
		log.Fatal("Invalid default step policy: %v", err)
	}

	// Инициализируем метрики (если включены). nil-коллектор безопасен для бизнес-метрик и БД.
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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Подключаемся к Redis (корзины)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
	}
	pingCancel()
	log.Info("Successfully connected to redis (addr=%s, db=%d)", cfg.Redis.Addr, cfg.Redis.DB)

	// Инициализируем интеграционных клиентов
	userClient := userServiceClient.NewClient(
		cfg.UserService.URL,
		time.Duration(cfg.UserService.Timeout)*time.Second,
		log,
	)
	log.Info("UserService client initialized (url=%s, timeout=%ds)", cfg.UserService.URL, cfg.UserService.Timeout)

	var orderNotifier notifier.Notifier
	switch cfg.Notifications.Driver {
	case notifier.DriverKafka:
		orderNotifier = notifier.NewKafkaNotifier(cfg.Notifications.KafkaBrokers, cfg.Notifications.KafkaTopic, cfg.Notifications.PublishTimeout(), log)
	case notifier.DriverAsynq:
		orderNotifier = notifier.NewAsynqNotifier(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Notifications.AsynqQueue, cfg.Notifications.PublishTimeout(), log)
	default:
		orderNotifier = notifier.NewLogNotifier(log)
	}
	defer orderNotifier.Close()
	log.Info("Notifications driver: %s", cfg.Notifications.Driver)

	// Инициализируем репозитории
	orderRepository := orderRepo.NewRepository(wrappedDB)
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	branchRepository := branchRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	staffRepository := staffRepo.NewRepository(wrappedDB)
	walletRepository := walletRepo.NewRepository(wrappedDB)
	loyaltyRepository := loyaltyRepo.NewRepository(wrappedDB)
	settlementRepository := settlementRepo.NewRepository(wrappedDB)
	carts := cartStore.NewStore(redisClient, cfg.Booking.CartTTL())

	// Инициализируем сервисы
	orderSvc := ordersService.NewService(orderRepository, appointmentRepository, staffRepository, orderNotifier, txMgr, log)
	branchSvc := branchesService.NewService(branchRepository, log)
	walletSvc := walletService.NewService(walletRepository, staffRepository, log)
	cartSvc := cartService.NewService(carts, catalogRepository, log)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		branchRepository,
		catalogRepository,
		staffRepository,
		appointmentRepository,
		getAvailableSlotsUC.Settings{
			Location:      location,
			DefaultPolicy: defaultPolicy,
			MarginMinutes: cfg.Booking.MarginMinutes,
		},
		log,
	)

	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		appointmentRepository,
		branchRepository,
		catalogRepository,
		staffRepository,
		userClient,
		orderNotifier,
		metricsCollector,
		txMgr,
		createOrderUC.Settings{Location: location},
		log,
	)

	completeOrderUseCase := completeOrderUC.NewUseCase(
		orderRepository,
		staffRepository,
		walletRepository,
		loyaltyRepository,
		settlementRepository,
		orderNotifier,
		metricsCollector,
		txMgr,
		completeOrderUC.Settings{CommissionBasisPoints: cfg.Booking.CommissionBasisPoints},
		log,
	)

	checkoutCartUseCase := checkoutCartUC.NewUseCase(carts, createOrderUseCase, log)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getBranchHours := getBranchHoursHandler.NewHandler(branchSvc, log)
	upsertBranchHours := upsertBranchHoursHandler.NewHandler(branchSvc, log)
	deleteBranchHours := deleteBranchHoursHandler.NewHandler(branchSvc, log)
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrder := getOrderHandler.NewHandler(orderSvc, log)
	confirmOrder := confirmOrderHandler.NewHandler(orderSvc, log)
	cancelOrder := cancelOrderHandler.NewHandler(orderSvc, log)
	completeOrder := completeOrderHandler.NewHandler(completeOrderUseCase, log)
	getClientOrders := getClientOrdersHandler.NewHandler(orderSvc, log)
	getBranchOrders := getBranchOrdersHandler.NewHandler(orderSvc, location, log)
	cartH := cartHandler.NewHandler(cartSvc, log)
	checkoutCart := checkoutCartHandler.NewHandler(checkoutCartUseCase, log)
	wallet := walletHandler.NewHandler(walletSvc, location, log)

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

	// Свободные слоты филиала на дату
	api.HandleFunc("/branches/{branchId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часы работы филиала
	api.HandleFunc("/branches/{branchId}/hours", getBranchHours.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID и X-User-Role)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// Операции, создающие заказы, ограничены по частоте на пользователя
	limiter := middleware.NewRateLimiter(cfg.Server.RateLimitRPS, cfg.Server.RateLimitBurst)
	limited := protected.PathPrefix("").Subrouter()
	limited.Use(limiter.Middleware)

	// --- Часы работы (администратор) ---
	protected.HandleFunc("/branches/{branchId}/hours", upsertBranchHours.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/branches/{branchId}/hours/{weekday}", deleteBranchHours.Handle).Methods(http.MethodDelete)

	// --- Заказы ---
	limited.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/orders/{orderId}/confirm", confirmOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orders/{orderId}/cancel", cancelOrder.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/orders/{orderId}/complete", completeOrder.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{clientId}/orders", getClientOrders.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/branches/{branchId}/orders", getBranchOrders.Handle).Methods(http.MethodGet)

	// --- Корзина ---
	protected.HandleFunc("/cart", cartH.Get).Methods(http.MethodGet)
	protected.HandleFunc("/cart", cartH.Clear).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/drafts", cartH.AddDraft).Methods(http.MethodPost)
	protected.HandleFunc("/cart/drafts", cartH.RemoveDraft).Methods(http.MethodDelete)
	protected.HandleFunc("/cart/products", cartH.AddProduct).Methods(http.MethodPost)
	limited.HandleFunc("/cart/checkout", checkoutCart.Handle).Methods(http.MethodPost)

	// --- Кошелек мастера ---
	protected.HandleFunc("/staff/{staffId}/wallet", wallet.Get).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/wallet/export", wallet.Export).Methods(http.MethodGet)

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
