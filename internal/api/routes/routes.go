package routes

import (
	"net/http"

	"vietjobs-search/internal/api/handlers"
	"vietjobs-search/internal/api/middleware"
	"vietjobs-search/internal/config"
	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, es *engine.Client, coord *search.Coordinator, cache *utils.RedisClient) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	e.Use(middleware.TimeoutConfig(cfg.Server.ReadTimeout))

	if cfg.RateLimit.Enabled {
		e.Use(middleware.NewRateLimiter(cfg).Middleware())
	}

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(es, cache))
		health.GET("/live", handlers.LivenessHandler)
	}

	// Status route
	e.GET("/status", handlers.StatusHandler)

	// Per-index route groups: identical surface, different taxonomy.
	for _, group := range []struct {
		prefix  string
		variant models.Variant
	}{
		{"/api/legacy", models.VariantLegacy},
		{"/api/crawler", models.VariantCrawler},
	} {
		g := e.Group(group.prefix)

		g.POST("/search", handlers.SearchHandler(coord, group.variant))
		g.POST("/search/advanced", handlers.AdvancedSearchHandler(coord, group.variant))
		g.GET("/job/:id", handlers.JobHandler(coord, group.variant))
		g.GET("/autocomplete", handlers.AutocompleteHandler(coord, group.variant))
		g.POST("/suggest", handlers.SuggestHandler(coord, group.variant))

		aggs := g.Group("/aggs")
		{
			aggs.GET("/all", handlers.AllAggsHandler(coord, group.variant, cache))
			aggs.GET("/salary-ranges", handlers.SalaryRangesHandler(coord, group.variant, cache))
			aggs.GET("/experience-stats", handlers.ExperienceStatsHandler(coord, group.variant, cache))
			if group.variant == models.VariantCrawler {
				aggs.GET("/sources", handlers.SourcesHandler(coord, cache))
			}
			aggs.GET("/:field", handlers.FieldAggsHandler(coord, group.variant, cache))
		}
	}

	// Cross-index routes
	api := e.Group("/api")
	{
		api.POST("/search/all", handlers.CombinedSearchHandler(coord))
		api.GET("/stats", handlers.StatsHandler(coord, cfg))
	}

	// Bulk ingestion
	e.POST("/upload", handlers.UploadHandler(coord, es, cache))

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "VietJobs Search API",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}
