package handlers

import (
	"net/http"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/logging"
	"vietjobs-search/internal/normalize"
	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
)

// UploadHandler ingests a batch of raw documents into one index. The batch
// is never all-or-nothing: documents lacking identity or title are dropped
// and counted, per-document indexing failures are counted, and whatever is
// valid gets indexed.
func UploadHandler(coord *search.Coordinator, es engine.Indexer, cache *utils.RedisClient) echo.HandlerFunc {
	return func(c echo.Context) error {
		logger := logging.GetGlobalLogger()

		variant := models.VariantLegacy
		if c.QueryParam("index") == "crawler" {
			variant = models.VariantCrawler
		}

		var req models.UploadRequest
		if errResp := bindAndValidate(c, &req); errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		docs := normalize.ProcessAll(req.Docs, variant)

		resp := models.UploadResponse{Status: "ok"}
		valid := docs[:0]
		for _, doc := range docs {
			if doc.Valid(variant) {
				valid = append(valid, doc)
			} else {
				resp.Dropped++
			}
		}

		if len(valid) > 0 {
			indexed, failed, err := es.Bulk(c.Request().Context(), coord.Index(variant), valid, variant)
			if err != nil {
				return upstreamError(c, err)
			}
			resp.Indexed = indexed
			resp.Errors = failed
		}

		if cache != nil && resp.Indexed > 0 {
			if err := cache.InvalidateFacets(c.Request().Context(), coord.Index(variant)); err != nil {
				logger.Warn("Facet cache invalidation failed", map[string]interface{}{
					"index": coord.Index(variant),
					"error": err.Error(),
				})
			}
		}

		logger.Info("Upload processed", map[string]interface{}{
			"request_id": requestID(c),
			"index":      coord.Index(variant),
			"indexed":    resp.Indexed,
			"dropped":    resp.Dropped,
			"errors":     resp.Errors,
		})

		return c.JSON(http.StatusOK, resp)
	}
}
