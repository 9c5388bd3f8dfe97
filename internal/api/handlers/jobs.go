package handlers

import (
	"errors"
	"net/http"
	"time"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
)

// JobHandler fetches one document by engine ID
func JobHandler(coord *search.Coordinator, variant models.Variant) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()

		id := c.Param("id")
		doc, err := coord.GetJob(c.Request().Context(), variant, id)
		if err != nil {
			if errors.Is(err, engine.ErrNotFound) {
				return c.JSON(http.StatusNotFound, models.ErrorResponse{
					Error:     "not_found",
					Message:   "Not found",
					RequestID: requestID(c),
					Timestamp: time.Now(),
				})
			}
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, models.JobResponse{
			Time: utils.FormatElapsed(time.Since(started)),
			Data: doc,
		})
	}
}
