package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
)

// cachedFacet serves a facet payload through the optional Redis cache.
// With no cache configured, or on any cache failure, it falls through to
// the engine.
func cachedFacet[T any](ctx context.Context, cache *utils.RedisClient, index, key string, fetch func(context.Context) (*T, error)) (*T, error) {
	if cache != nil {
		var cached T
		if cache.GetFacets(ctx, index, key, &cached) {
			return &cached, nil
		}
	}

	fresh, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	if cache != nil {
		cache.SetFacets(ctx, index, key, fresh)
	}
	return fresh, nil
}

// AllAggsHandler serves the fixed facet set in one engine round trip
func AllAggsHandler(coord *search.Coordinator, variant models.Variant, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		facade := coord.Facade(variant)

		res, err := cachedFacet(c.Request().Context(), cache, coord.Index(variant), "all", func(ctx context.Context) (*search.AllFacets, error) {
			return facade.All(ctx, models.DefaultAggSize)
		})
		if err != nil {
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

// SalaryRangesHandler serves the per-variant salary distribution
func SalaryRangesHandler(coord *search.Coordinator, variant models.Variant, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		facade := coord.Facade(variant)

		res, err := cachedFacet(c.Request().Context(), cache, coord.Index(variant), "salary-ranges", facade.SalaryRanges)
		if err != nil {
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

// ExperienceStatsHandler serves the experience distribution
func ExperienceStatsHandler(coord *search.Coordinator, variant models.Variant, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		facade := coord.Facade(variant)

		res, err := cachedFacet(c.Request().Context(), cache, coord.Index(variant), "experience-stats", facade.ExperienceStats)
		if err != nil {
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

// SourcesHandler serves the crawler's per-source counts and crawl timeline
func SourcesHandler(coord *search.Coordinator, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		facade := coord.Facade(models.VariantCrawler)

		res, err := cachedFacet(c.Request().Context(), cache, coord.Index(models.VariantCrawler), "sources", facade.Sources)
		if err != nil {
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, res)
	}
}

// FieldAggsHandler serves a dynamic single-field facet. Unknown keys are
// rejected with the list of registered keys before the engine is touched.
func FieldAggsHandler(coord *search.Coordinator, variant models.Variant, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		facade := coord.Facade(variant)
		key := c.Param("field")

		size := 0
		if raw := c.QueryParam("size"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				size = n
			}
		}

		res, err := cachedFacet(c.Request().Context(), cache, coord.Index(variant), "field:"+key+":"+strconv.Itoa(size), func(ctx context.Context) (*search.FieldReport, error) {
			return facade.Field(ctx, key, size)
		})
		if err != nil {
			var unknown *search.UnknownFacetError
			if errors.As(err, &unknown) {
				return c.JSON(http.StatusBadRequest, models.ErrorResponse{
					Error:     "unknown_facet",
					Message:   unknown.Error(),
					Available: unknown.Available,
					RequestID: requestID(c),
					Timestamp: time.Now(),
				})
			}
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, res)
	}
}
