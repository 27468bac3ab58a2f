package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/rafaelleal24/orders/internal/core/logger"
)

const defaultHealthCheckTimeout = 2 * time.Second

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services" example:"mongodb:ok,redis:ok,rabbitmq:ok"`
}

// HealthChecker probes one dependency. Check must honour ctx cancellation.
type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	checkers []HealthChecker
	timeout  time.Duration
}

func NewHealthController(checkers []HealthChecker) *HealthController {
	return &HealthController{checkers: checkers, timeout: defaultHealthCheckTimeout}
}

// Health godoc
// @Summary     Health check
// @Description Probes the storage engine, redis and rabbitmq concurrently
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /api/v1/health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	var (
		mu       sync.Mutex
		healthy  = true
		services = make(map[string]string, len(h.checkers))
	)

	var g errgroup.Group
	for _, checker := range h.checkers {
		g.Go(func() error {
			state := "ok"
			if err := checker.Check(ctx); err != nil {
				logger.Warn(ctx, "health check failed", map[string]any{
					"dependency": checker.Name,
					"error":      err.Error(),
				})
				state = "unavailable"
			}

			mu.Lock()
			defer mu.Unlock()
			services[checker.Name] = state
			if state != "ok" {
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()

	status, code := "ok", http.StatusOK
	if !healthy {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:   status,
		Services: services,
	})
}
