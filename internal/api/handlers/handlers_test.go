package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/search"
	"vietjobs-search/pkg/models"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedEngine replays one canned search reply and a fixed document set,
// recording the request bodies it receives.
type scriptedEngine struct {
	response *engine.SearchResponse
	docs     map[string]json.RawMessage
	bodies   []any
}

func (s *scriptedEngine) Search(ctx context.Context, index string, body any) (*engine.SearchResponse, error) {
	s.bodies = append(s.bodies, body)
	if s.response != nil {
		return s.response, nil
	}
	return &engine.SearchResponse{}, nil
}

func (s *scriptedEngine) Count(ctx context.Context, index string) (int64, error) {
	return int64(len(s.docs)), nil
}

func (s *scriptedEngine) GetDocument(ctx context.Context, index, id string) (json.RawMessage, error) {
	if doc, ok := s.docs[id]; ok {
		return doc, nil
	}
	return nil, engine.ErrNotFound
}

func newTestCoordinator(es engine.Searcher) *search.Coordinator {
	return search.NewCoordinator(es, "tuyendung3s", "jobs_data")
}

func doJSON(t *testing.T, handler echo.HandlerFunc, method, target, body string, pathParams map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	for key, value := range pathParams {
		c.SetParamNames(key)
		c.SetParamValues(value)
	}

	require.NoError(t, handler(c))
	return rec
}

func TestSearchHandlerReturnsHitsAndPaging(t *testing.T) {
	es := &scriptedEngine{response: &engine.SearchResponse{}}
	es.response.Hits.Total.Value = 2
	es.response.Hits.Hits = []engine.Hit{
		{ID: "1", Score: 3.2, Source: json.RawMessage(`{"Tiêu đề tin":"Kế toán"}`)},
		{ID: "2", Score: 1.1, Source: json.RawMessage(`{"Tiêu đề tin":"Kế toán kho"}`)},
	}

	rec := doJSON(t, SearchHandler(newTestCoordinator(es), models.VariantLegacy),
		http.MethodPost, "/api/legacy/search", `{"q":"kế toán"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, int64(2), res.Total)
	assert.Len(t, res.Hits, 2)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 10, res.Size)
	assert.NotEmpty(t, res.Time)
}

func TestSearchHandlerRejectsOversizedPage(t *testing.T) {
	rec := doJSON(t, SearchHandler(newTestCoordinator(&scriptedEngine{}), models.VariantLegacy),
		http.MethodPost, "/api/legacy/search", `{"q":"x","size":500}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "validation_failed", res.Error)
}

func TestCombinedSearchRequiresQuery(t *testing.T) {
	rec := doJSON(t, CombinedSearchHandler(newTestCoordinator(&scriptedEngine{})),
		http.MethodPost, "/api/search/all", `{"page":1}`, nil)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "missing_query", res.Error)
	assert.Equal(t, "Missing query", res.Message)
}

func TestJobHandlerNotFound(t *testing.T) {
	es := &scriptedEngine{docs: map[string]json.RawMessage{}}

	rec := doJSON(t, JobHandler(newTestCoordinator(es), models.VariantLegacy),
		http.MethodGet, "/api/legacy/job/999", "", map[string]string{"id": "999"})

	require.Equal(t, http.StatusNotFound, rec.Code)

	var res models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Not found", res.Message)
}

func TestJobHandlerReturnsDocument(t *testing.T) {
	es := &scriptedEngine{docs: map[string]json.RawMessage{
		"42": json.RawMessage(`{"Id tin":"42","Tiêu đề tin":"Lái xe"}`),
	}}

	rec := doJSON(t, JobHandler(newTestCoordinator(es), models.VariantLegacy),
		http.MethodGet, "/api/legacy/job/42", "", map[string]string{"id": "42"})

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.JobResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.JSONEq(t, `{"Id tin":"42","Tiêu đề tin":"Lái xe"}`, string(res.Data))
}

func TestFieldAggsHandlerRejectsUnknownKey(t *testing.T) {
	rec := doJSON(t, FieldAggsHandler(newTestCoordinator(&scriptedEngine{}), models.VariantLegacy, nil),
		http.MethodGet, "/api/legacy/aggs/bogus", "", map[string]string{"field": "bogus"})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var res models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "unknown_facet", res.Error)
	assert.Contains(t, res.Available, "tinh-thanh")
	assert.Contains(t, res.Available, "nganh-nghe")
}

// termClauses flattens the recorded advanced-search body's filter context
// into field→value pairs.
func termClauses(t *testing.T, body any) map[string]string {
	t.Helper()

	boolQuery := body.(map[string]any)["query"].(map[string]any)["bool"].(map[string]any)
	filter, ok := boolQuery["filter"].([]any)
	require.True(t, ok)

	out := make(map[string]string)
	for _, clause := range filter {
		term, ok := clause.(map[string]any)["term"].(map[string]any)
		if !ok {
			continue
		}
		for field, value := range term {
			out[field] = value.(string)
		}
	}
	return out
}

func TestAdvancedSearchMapsLegacyFilterKeysToEngineFields(t *testing.T) {
	es := &scriptedEngine{}

	rec := doJSON(t, AdvancedSearchHandler(newTestCoordinator(es), models.VariantLegacy),
		http.MethodPost, "/api/legacy/search/advanced",
		`{"q":"kế toán","tinh_thanh":"Hà Nội","hinh_thuc":"Toàn thời gian","kinh_nghiem":"Chưa có kinh nghiệm"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, es.bodies, 1)

	terms := termClauses(t, es.bodies[0])
	assert.Equal(t, "Hà Nội", terms["Tỉnh thành tuyển dụng.keyword"])
	assert.Equal(t, "Toàn thời gian", terms["Hình thức làm việc.keyword"])
	assert.Equal(t, "Chưa có kinh nghiệm", terms["Kinh nghiệm.keyword"])

	// The request keys themselves must never leak into the DSL: the
	// legacy index has no such fields and would match nothing.
	assert.NotContains(t, terms, "tinh_thanh")
	assert.NotContains(t, terms, "hinh_thuc")
	assert.NotContains(t, terms, "kinh_nghiem")
}

func TestAdvancedSearchMapsCrawlerFilterKeys(t *testing.T) {
	es := &scriptedEngine{}

	rec := doJSON(t, AdvancedSearchHandler(newTestCoordinator(es), models.VariantCrawler),
		http.MethodPost, "/api/crawler/search/advanced",
		`{"q":"golang","location_city":"Đà Nẵng","work_type":"Full-time","tinh_thanh":"Hà Nội"}`, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, es.bodies, 1)

	terms := termClauses(t, es.bodies[0])
	assert.Equal(t, "Đà Nẵng", terms["location_city"])
	assert.Equal(t, "Full-time", terms["work_type"])

	// Legacy-only keys are ignored on the crawler index, not passed
	// through as fields.
	assert.NotContains(t, terms, "tinh_thanh")
}

func TestAutocompleteHandlerShortPrefix(t *testing.T) {
	rec := doJSON(t, AutocompleteHandler(newTestCoordinator(&scriptedEngine{}), models.VariantCrawler),
		http.MethodGet, "/api/crawler/autocomplete?q=a", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AutocompleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Empty(t, res.Suggestions)
}

func TestAutocompleteHandlerEchoesNormalizedQuery(t *testing.T) {
	es := &scriptedEngine{}

	target := "/api/crawler/autocomplete?q=" + url.QueryEscape("  Kế Toán ")
	rec := doJSON(t, AutocompleteHandler(newTestCoordinator(es), models.VariantCrawler),
		http.MethodGet, target, "", nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var res models.AutocompleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "kế toán", res.Query)
}
