package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/orders/internal/adapters/config"
	"github.com/rafaelleal24/orders/internal/adapters/http/controllers"
	"github.com/rafaelleal24/orders/internal/adapters/http/handlers"
	"github.com/rafaelleal24/orders/internal/adapters/http/middleware"
	"github.com/rafaelleal24/orders/internal/core/logger"
)

const readHeaderTimeout = 5 * time.Second

type Router struct {
	healthController   *controllers.HealthController
	orderController    *controllers.OrderController
	productController  *controllers.ProductController
	customerController *controllers.CustomerController
	rateLimiter        middleware.RateLimiter
	metricsHandler     http.Handler
}

func NewRouter(
	healthController *controllers.HealthController,
	orderController *controllers.OrderController,
	productController *controllers.ProductController,
	customerController *controllers.CustomerController,
	rateLimiter middleware.RateLimiter,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		healthController:   healthController,
		orderController:    orderController,
		productController:  productController,
		customerController: customerController,
		rateLimiter:        rateLimiter,
		metricsHandler:     metricsHandler,
	}
}

// SetupRoutes mounts the API under /api/v1. Only order creation is rate
// limited; reads are served from cache or indexed lookups.
func (r *Router) SetupRoutes(router *gin.Engine, cfg config.Config) {
	rl := r.rateLimiter

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{Error: "route not found", Code: "not_found"})
	})

	if r.metricsHandler != nil && cfg.Metrics.Enabled {
		router.GET(cfg.Metrics.Path, gin.WrapH(r.metricsHandler))
	}

	apiGroup := router.Group("/api")
	v1Group := apiGroup.Group("/v1")
	{
		v1Group.Use(middleware.LogRequest())
		v1Group.GET("/health", r.healthController.Health)

		v1Group.POST("/orders", middleware.RateLimit(rl, cfg.HTTP.OrderRateLimit, cfg.HTTP.RateLimitWindow), r.orderController.CreateOrder)
		v1Group.GET("/orders/:id", r.orderController.GetOrderByID)

		v1Group.POST("/products", r.productController.CreateProduct)
		v1Group.GET("/products", r.productController.GetAll)
		v1Group.GET("/products/:id", r.productController.GetByID)

		v1Group.POST("/customers", r.customerController.CreateCustomer)
		v1Group.GET("/customers/:id", r.customerController.GetCustomer)
		v1Group.GET("/customers/:id/orders", r.orderController.ListCustomerOrders)
	}
}

// ListenAndServe blocks until ctx is cancelled, then drains in-flight
// requests for at most cfg.HTTP.ShutdownTimeout.
func (r *Router) ListenAndServe(ctx context.Context, cfg config.Config) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.HTTP.BindInterface, cfg.HTTP.Port),
		Handler:           engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	shutdownDone := make(chan struct{})
	go func() {
		defer close(shutdownDone)
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "http server shutdown did not finish cleanly", err, nil)
		}
	}()

	logger.Info(ctx, "http server listening", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	<-shutdownDone
	return nil
}
