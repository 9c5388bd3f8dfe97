package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vietjobs-search/internal/api/routes"
	"vietjobs-search/internal/config"
	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/logging"
	"vietjobs-search/internal/search"
	"vietjobs-search/internal/seeder"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logging
	if err := logging.InitializeLogging(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting VietJobs Search API")

	// Initialize search engine client
	es, err := engine.NewClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Elasticsearch", map[string]interface{}{
			"addresses": cfg.Elasticsearch.Addresses,
			"error":     err.Error(),
		})
	}

	// Seed both indices. A failed seed is logged and skipped so the
	// service still starts against whatever index state exists.
	if cfg.Seed.Enabled {
		seedIndices(es, cfg, logger)
	}

	// Optional facet cache
	var cache *utils.RedisClient
	if cfg.Redis.Enabled {
		cache = utils.NewRedisClient(cfg)
		defer cache.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), cfg.Redis.Timeout)
		if err := cache.Ping(pingCtx); err != nil {
			logger.Warn("Redis unreachable, facet caching disabled", map[string]interface{}{
				"url":   cfg.Redis.URL,
				"error": err.Error(),
			})
			cache = nil
		}
		cancel()
	}

	coord := search.NewCoordinator(es, cfg.Elasticsearch.Indexes.Legacy, cfg.Elasticsearch.Indexes.Crawler)

	// Initialize Echo
	e := echo.New()
	e.HideBanner = true

	// Setup routes
	routes.SetupRoutes(e, cfg, es, coord, cache)

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Error shutting down server", map[string]interface{}{
				"error": err.Error(),
			})
		}

		logger.Info("Server shutdown complete")
	}()

	// Start server
	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", map[string]interface{}{"address": address})

	if err := e.Start(address); err != nil {
		logger.Fatal("Server failed to start", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

func seedIndices(es *engine.Client, cfg *config.Config, logger logging.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	s := seeder.New(es)
	targets := []struct {
		index    string
		dataPath string
		variant  models.Variant
	}{
		{cfg.Elasticsearch.Indexes.Legacy, cfg.Seed.LegacyDataPath, models.VariantLegacy},
		{cfg.Elasticsearch.Indexes.Crawler, cfg.Seed.CrawlerDataPath, models.VariantCrawler},
	}

	for _, target := range targets {
		report, err := s.SeedIfEmpty(ctx, target.index, target.dataPath, target.variant)
		if err != nil {
			logger.Error("Seeding failed, continuing without it", map[string]interface{}{
				"index": target.index,
				"error": err.Error(),
			})
			continue
		}
		if report.Skipped {
			continue
		}
		logger.Info("Seed finished", map[string]interface{}{
			"index":          target.index,
			"indexed":        report.Indexed,
			"dropped":        report.Dropped,
			"errors":         report.Errors,
			"parse_failures": report.ParseFailures,
		})
	}
}
