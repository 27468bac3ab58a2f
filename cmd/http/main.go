package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/rafaelleal24/orders/internal/adapters/config"
	"github.com/rafaelleal24/orders/internal/adapters/http"
	"github.com/rafaelleal24/orders/internal/adapters/http/controllers"
	"github.com/rafaelleal24/orders/internal/adapters/metrics"
	"github.com/rafaelleal24/orders/internal/adapters/mongo"
	mongorepo "github.com/rafaelleal24/orders/internal/adapters/mongo/repository"
	"github.com/rafaelleal24/orders/internal/adapters/outbox"
	"github.com/rafaelleal24/orders/internal/adapters/postgres"
	pgrepo "github.com/rafaelleal24/orders/internal/adapters/postgres/repository"
	"github.com/rafaelleal24/orders/internal/adapters/rabbitmq"
	"github.com/rafaelleal24/orders/internal/adapters/redis"
	"github.com/rafaelleal24/orders/internal/core/domain"
	"github.com/rafaelleal24/orders/internal/core/logger"
	"github.com/rafaelleal24/orders/internal/core/port"
	"github.com/rafaelleal24/orders/internal/core/service"
)

// @title       Orders API
// @version     1.0
// @description Order creation against a stocked product catalog

// @host     localhost:8080
// @BasePath /

//go:generate swag init -d ../.. -g cmd/http/main.go -o ../../docs --parseInternal

// storage bundles the repositories of the configured engine.
type storage struct {
	customers port.CustomerPort
	products  port.ProductPort
	orders    port.OrderPort
	outbox    outbox.Repository
	txManager port.TransactionManager
	health    controllers.HealthChecker
	close     func()
}

func newMongoStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	client, err := mongo.NewConnection(cfg.Mongo)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Connected to MongoDB", map[string]any{"database": cfg.Mongo.Database})

	database := client.Database(cfg.Mongo.Database)
	outboxRepository := mongorepo.NewOutboxRepository(database)
	return &storage{
		customers: mongorepo.NewCustomerRepository(database),
		products:  mongorepo.NewProductRepository(database),
		orders:    mongorepo.NewOrderRepository(database, outboxRepository),
		outbox:    outboxRepository,
		txManager: mongo.NewTransactionManager(client),
		health: controllers.HealthChecker{
			Name:  "mongodb",
			Check: func(ctx context.Context) error { return mongo.Ping(ctx, client) },
		},
		close: func() { _ = mongo.Disconnect(client) },
	}, nil
}

func newPostgresStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	pool, err := postgres.NewConnection(cfg.Postgres)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Connected to PostgreSQL", nil)

	outboxRepository := pgrepo.NewOutboxRepository(pool)
	return &storage{
		customers: pgrepo.NewCustomerRepository(pool),
		products:  pgrepo.NewProductRepository(pool),
		orders:    pgrepo.NewOrderRepository(pool, outboxRepository),
		outbox:    outboxRepository,
		txManager: postgres.NewTransactionManager(pool),
		health: controllers.HealthChecker{
			Name:  "postgres",
			Check: pool.Ping,
		},
		close: func() { postgres.Disconnect(pool) },
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.Storage.Driver {
	case config.StorageMongo:
		return newMongoStorage(ctx, cfg)
	case config.StoragePostgres:
		return newPostgresStorage(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

func main() {
	// initialize config and logger
	cfg := config.NewConfig()
	err := logger.Initialize(logger.Options{
		CollectorEndpoint: cfg.Logger.Endpoint,
		ServiceName:       cfg.Logger.ServiceName,
		Production:        cfg.Logger.IsProduction,
		Level:             logger.ParseLevel(cfg.Logger.Level),
	})
	if err != nil {
		// logger not available yet, fall back to stderr
		fmt.Println("failed to initialize logger: " + err.Error())
		os.Exit(1)
	}

	// cancellable context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := newStorage(ctx, cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to initialize storage", err, map[string]any{"driver": string(cfg.Storage.Driver)})
	}
	defer store.close()

	// initialize redis connection
	redisClient, err := redis.NewConnection(cfg.Redis)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to Redis", err, nil)
	}
	defer redisClient.Close()
	logger.Info(ctx, "Connected to Redis", nil)

	// initialize rabbitmq connection
	broker, err := rabbitmq.NewRabbitMQAdapter(cfg.RabbitMQ)
	if err != nil {
		logger.Fatal(ctx, "Failed to connect to RabbitMQ", err, nil)
	}
	defer broker.Close()
	logger.Info(ctx, "Connected to RabbitMQ", nil)

	// caches and rate limiter
	orderCache := redis.NewCache[domain.Order](redisClient, "order-cache")
	idempotencyCache := redis.NewCache[service.IdempotencyEntry[domain.Order]](redisClient, "idempotency-cache")
	rateLimiter := redis.NewRateLimiter(redisClient)

	// outbox handler (uses cancellable context)
	outboxHandler := outbox.NewHandler(store.outbox, broker, cfg.Outbox)
	go outboxHandler.Start(ctx)
	logger.Info(ctx, "Outbox handler started", map[string]any{"interval": cfg.Outbox.Interval.String(), "batch_size": cfg.Outbox.BatchSize})

	var orderMetrics port.OrderMetrics
	if cfg.Metrics.Enabled {
		orderMetrics = metrics.NewOrderMetrics(cfg.Metrics.Namespace, prometheus.DefaultRegisterer)
	}

	// services
	customerService := service.NewCustomerService(store.customers)
	productService := service.NewProductService(store.products)
	idempotencyService := service.NewIdempotencyService(idempotencyCache, cfg.Idempotency.TTL, cfg.Idempotency.PollInterval, cfg.Idempotency.PollTimeout)
	orderService := service.NewOrderService(store.orders, productService, customerService, orderCache, idempotencyService, store.txManager, orderMetrics)

	// controllers
	orderController := controllers.NewOrderController(orderService)
	productController := controllers.NewProductController(productService)
	customerController := controllers.NewCustomerController(customerService)
	healthController := controllers.NewHealthController([]controllers.HealthChecker{
		store.health,
		{Name: "redis", Check: func(ctx context.Context) error { return redisClient.Ping(ctx) }},
		{Name: "rabbitmq", Check: func(ctx context.Context) error { return broker.HealthCheck() }},
	})

	// router
	router := http.NewRouter(healthController, orderController, productController, customerController, rateLimiter, metrics.Handler(nil))

	// graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigCh
		logger.Info(ctx, "Received shutdown signal", map[string]any{"signal": sig.String()})
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := logger.Shutdown(shutdownCtx); err != nil {
			fmt.Println("logger shutdown error: " + err.Error())
		}
	}()

	logger.Info(ctx, "Starting HTTP server", map[string]any{
		"addr":    cfg.HTTP.BindInterface + ":" + cfg.HTTP.Port,
		"storage": string(cfg.Storage.Driver),
	})
	err = router.ListenAndServe(ctx, *cfg)
	if err != nil {
		logger.Fatal(ctx, "Failed to start HTTP server", err, nil)
	}
}
