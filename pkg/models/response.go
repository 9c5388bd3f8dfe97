package models

import (
	"encoding/json"
	"time"
)

// SearchHit is one ranked result returned by the engine.
type SearchHit struct {
	ID        string              `json:"_id"`
	Score     float64             `json:"_score"`
	Source    json.RawMessage     `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SearchResponse is the shape returned by the single-index search endpoints.
type SearchResponse struct {
	Time       string      `json:"time"`
	Page       int         `json:"page"`
	Size       int         `json:"size"`
	Total      int64       `json:"total"`
	Hits       []SearchHit `json:"hits"`
	DidYouMean *string     `json:"didYouMean,omitempty"`
}

// BranchResult is one index's slice of a multi-index search. A failed branch
// reports zero hits and carries the error message instead of failing the
// combined response.
type BranchResult struct {
	Index string      `json:"index"`
	Total int64       `json:"total"`
	Hits  []SearchHit `json:"hits"`
	Error string      `json:"error,omitempty"`
}

// CombinedSearchResponse is the shape of the fan-out search across both
// indices. Results stay separated per branch; there is no merged ranking.
type CombinedSearchResponse struct {
	Time    string       `json:"time"`
	Page    int          `json:"page"`
	Size    int          `json:"size"`
	Legacy  BranchResult `json:"legacy"`
	Crawler BranchResult `json:"crawler"`
}

// IndexStats describes one index in the stats response.
type IndexStats struct {
	Name     string `json:"name"`
	Count    int64  `json:"count"`
	Endpoint string `json:"endpoint"`
}

// StatsResponse reports per-index document counts and their sum.
type StatsResponse struct {
	Time    string                `json:"time"`
	Indexes map[string]IndexStats `json:"indexes"`
	Total   int64                 `json:"total"`
}

// JobResponse wraps a single fetched document.
type JobResponse struct {
	Time string          `json:"time"`
	Data json.RawMessage `json:"data"`
}

// AutocompleteResponse carries the deduplicated prefix completions.
type AutocompleteResponse struct {
	Query       string   `json:"query"`
	Suggestions []string `json:"suggestions"`
}

// SuggestResponse carries the did-you-mean phrase correction, or null when
// nothing better than the original query was found.
type SuggestResponse struct {
	Time          string  `json:"time"`
	OriginalQuery string  `json:"originalQuery"`
	Suggestion    *string `json:"suggestion"`
}

// UploadResponse reports the per-document outcome of a bulk upload. Partial
// failures are counted, never surfaced as a request-level error.
type UploadResponse struct {
	Status  string `json:"status"`
	Indexed int    `json:"indexed"`
	Dropped int    `json:"dropped"`
	Errors  int    `json:"errors"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Uptime    time.Duration     `json:"uptime"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Available []string  `json:"available,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
