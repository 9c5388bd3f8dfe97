package handlers

import (
	"net/http"
	"time"

	"vietjobs-search/internal/config"
	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"
	"vietjobs-search/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

var validate = validator.New()

func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok {
		return id
	}
	return utils.GenerateRequestID()
}

func bindAndValidate(c echo.Context, req any) *models.ErrorResponse {
	if err := c.Bind(req); err != nil {
		return &models.ErrorResponse{
			Error:     "invalid_request",
			Message:   "Invalid request format",
			RequestID: requestID(c),
			Timestamp: time.Now(),
		}
	}
	if err := validate.Struct(req); err != nil {
		return &models.ErrorResponse{
			Error:     "validation_failed",
			Message:   err.Error(),
			RequestID: requestID(c),
			Timestamp: time.Now(),
		}
	}
	return nil
}

func upstreamError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadGateway, models.ErrorResponse{
		Error:     "engine_error",
		Message:   utils.NewUpstreamError(err.Error()).Error(),
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

// SearchHandler handles the unified text search for one index
func SearchHandler(coord *search.Coordinator, variant models.Variant) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()

		var req models.SearchRequest
		if errResp := bindAndValidate(c, &req); errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}
		req.Normalize()

		params := search.Params{Query: req.Query, Page: req.Page, Size: req.Size}
		res, err := coord.Search(c.Request().Context(), variant, params)
		if err != nil {
			return upstreamError(c, err)
		}

		res.Time = utils.FormatElapsed(time.Since(started))
		return c.JSON(http.StatusOK, res)
	}
}

// AdvancedSearchHandler handles filtered search for one index. Filter keys
// belonging to the other variant are ignored.
func AdvancedSearchHandler(coord *search.Coordinator, variant models.Variant) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()

		var req models.AdvancedSearchRequest
		if errResp := bindAndValidate(c, &req); errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}
		req.Normalize()

		params := search.Params{
			Query:     req.Query,
			Page:      req.Page,
			Size:      req.Size,
			Terms:     termFilters(&req, variant),
			SalaryMin: req.SalaryMin,
			SalaryMax: req.SalaryMax,
		}

		res, err := coord.AdvancedSearch(c.Request().Context(), variant, params)
		if err != nil {
			return upstreamError(c, err)
		}

		res.Time = utils.FormatElapsed(time.Since(started))
		return c.JSON(http.StatusOK, res)
	}
}

// termFilters maps the request's filter keys onto the variant's keyword
// fields through the taxonomy, skipping empty values. The legacy fields
// are Vietnamese .keyword paths, so the request key is never usable as a
// field name directly.
func termFilters(req *models.AdvancedSearchRequest, variant models.Variant) map[string]string {
	var pairs map[string]string
	switch variant {
	case models.VariantLegacy:
		pairs = map[string]string{
			"tinh_thanh":  req.TinhThanh,
			"hinh_thuc":   req.HinhThuc,
			"kinh_nghiem": req.KinhNghiem,
		}
	default:
		pairs = map[string]string{
			"location_city": req.LocationCity,
			"work_type":     req.WorkType,
			"experience":    req.Experience,
			"source":        req.Source,
		}
	}

	fields := search.TaxonomyFor(variant).TermFilters
	out := make(map[string]string)
	for key, value := range pairs {
		if value == "" {
			continue
		}
		if field, ok := fields[key]; ok {
			out[field] = value
		}
	}
	return out
}

// CombinedSearchHandler fans the query out to both indices concurrently.
// A missing query is rejected; branch failures degrade to empty branches.
func CombinedSearchHandler(coord *search.Coordinator) echo.HandlerFunc {
	return func(c echo.Context) error {
		started := time.Now()

		var req models.SearchRequest
		if errResp := bindAndValidate(c, &req); errResp != nil {
			return c.JSON(http.StatusBadRequest, errResp)
		}
		if req.Query == "" {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:     "missing_query",
				Message:   "Missing query",
				RequestID: requestID(c),
				Timestamp: time.Now(),
			})
		}
		req.Normalize()

		params := search.Params{Query: req.Query, Page: req.Page, Size: req.Size}
		res := coord.SearchAll(c.Request().Context(), params)
		res.Time = utils.FormatElapsed(time.Since(started))

		return c.JSON(http.StatusOK, res)
	}
}

// StatsHandler reports per-index document counts and their sum
func StatsHandler(coord *search.Coordinator, cfg *config.Config) echo.HandlerFunc {
	endpoints := map[models.Variant]string{
		models.VariantLegacy:  "/api/legacy",
		models.VariantCrawler: "/api/crawler",
	}

	return func(c echo.Context) error {
		started := time.Now()

		res := coord.Stats(c.Request().Context(), endpoints)
		res.Time = utils.FormatElapsed(time.Since(started))

		return c.JSON(http.StatusOK, res)
	}
}
