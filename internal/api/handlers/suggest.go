package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/labstack/echo/v4"
)

// AutocompleteHandler serves title prefix completions
func AutocompleteHandler(coord *search.Coordinator, variant models.Variant) echo.HandlerFunc {
	return func(c echo.Context) error {
		// Suggestions are derived from the trimmed, lowercased query;
		// echo that form back, not the raw parameter.
		prefix := strings.ToLower(strings.TrimSpace(c.QueryParam("q")))

		limit := search.DefaultAutocompleteLimit
		if raw := c.QueryParam("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 20 {
				limit = n
			}
		}

		suggestions, err := coord.Suggester(variant).Autocomplete(c.Request().Context(), prefix, limit)
		if err != nil {
			return upstreamError(c, err)
		}

		return c.JSON(http.StatusOK, models.AutocompleteResponse{
			Query:       prefix,
			Suggestions: suggestions,
		})
	}
}

// SuggestHandler serves the standalone did-you-mean correction. The
// suggestion is null when the query is empty, the engine is unreachable,
// or nothing better than the original query was found.
func SuggestHandler(coord *search.Coordinator, variant models.Variant) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()

		var req models.SuggestRequest
		if errResp := bindAndValidate(c, &req); errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}

		res := models.SuggestResponse{OriginalQuery: req.Query}
		if corrected := coord.Suggester(variant).DidYouMean(c.Request().Context(), req.Query); corrected != "" {
			res.Suggestion = &corrected
		}

		res.Time = utils.FormatElapsed(time.Since(started))
		return c.JSON(http.StatusOK, res)
	}
}
