package handlers

import (
	"net/http"
	"time"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/logging"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
)

var startTime = time.Now()

// HealthHandler handles health check requests
func HealthHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api": "ok",
		},
	}

	return c.JSON(http.StatusOK, response)
}

// ReadinessHandler reports whether the service can serve searches: the
// engine must answer a ping, and the cache is reported but never gates
// readiness.
func ReadinessHandler(es *engine.Client, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()
		ctx := c.Request().Context()

		checks := map[string]string{"api": "ok"}
		status := "ready"
		code := http.StatusOK

		if err := es.Ping(ctx); err != nil {
			logger.Warn("Readiness check: engine unreachable", map[string]interface{}{
				"error": err.Error(),
			})
			checks["elasticsearch"] = "unreachable"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		} else {
			checks["elasticsearch"] = "ok"
		}

		if cache != nil {
			if err := cache.Ping(ctx); err != nil {
				checks["redis"] = "unreachable"
			} else {
				checks["redis"] = "ok"
			}
		}

		return c.JSON(code, models.HealthResponse{
			Status:    status,
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Uptime:    time.Since(startTime),
			Checks:    checks,
		})
	}
}

// LivenessHandler handles liveness probe requests
func LivenessHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
	}

	return c.JSON(http.StatusOK, response)
}

// StatusHandler provides detailed service status
func StatusHandler(c echo.Context) error {
	response := models.HealthResponse{
		Status:    "operational",
		Timestamp: time.Now(),
		Version:   "1.0.0",
		Uptime:    time.Since(startTime),
		Checks: map[string]string{
			"api":    "operational",
			"search": "operational",
		},
	}

	return c.JSON(http.StatusOK, response)
}
