package engine

import "encoding/json"

// SearchResponse is the decoded subset of the engine's search reply that
// this service consumes: ranked hits, aggregation payloads, and suggester
// output. Aggregations stay raw; the aggregation facade reshapes them.
type SearchResponse struct {
	Took         int                        `json:"took"`
	Hits         SearchHits                 `json:"hits"`
	Aggregations map[string]json.RawMessage `json:"aggregations"`
	Suggest      map[string][]SuggestEntry  `json:"suggest"`
}

// SearchHits carries the total hit count and the result window.
type SearchHits struct {
	Total struct {
		Value int64 `json:"value"`
	} `json:"total"`
	Hits []Hit `json:"hits"`
}

// Hit is a single ranked document.
type Hit struct {
	Index     string              `json:"_index"`
	ID        string              `json:"_id"`
	Score     float64             `json:"_score"`
	Source    json.RawMessage     `json:"_source"`
	Highlight map[string][]string `json:"highlight,omitempty"`
}

// SuggestEntry is one suggester result for a slice of the input text.
type SuggestEntry struct {
	Text    string          `json:"text"`
	Offset  int             `json:"offset"`
	Length  int             `json:"length"`
	Options []SuggestOption `json:"options"`
}

// SuggestOption is one candidate correction.
type SuggestOption struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// TermsBucket is one bucket of a terms/range aggregation.
type TermsBucket struct {
	Key      any   `json:"key"`
	DocCount int64 `json:"doc_count"`
}

// termsAggPayload matches the engine's terms/range aggregation shape.
type termsAggPayload struct {
	Buckets []TermsBucket `json:"buckets"`
}

// DecodeBuckets extracts the bucket list from a raw terms or range
// aggregation payload. Malformed or absent payloads decode to an empty
// slice rather than an error.
func DecodeBuckets(raw json.RawMessage) []TermsBucket {
	if len(raw) == 0 {
		return []TermsBucket{}
	}
	var payload termsAggPayload
	if err := json.Unmarshal(raw, &payload); err != nil || payload.Buckets == nil {
		return []TermsBucket{}
	}
	return payload.Buckets
}

// StatsPayload matches the engine's stats aggregation shape.
type StatsPayload struct {
	Count int64    `json:"count"`
	Min   *float64 `json:"min"`
	Max   *float64 `json:"max"`
	Avg   *float64 `json:"avg"`
	Sum   *float64 `json:"sum"`
}

// DecodeStats extracts a stats aggregation payload; nil when absent.
func DecodeStats(raw json.RawMessage) *StatsPayload {
	if len(raw) == 0 {
		return nil
	}
	var payload StatsPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil
	}
	return &payload
}
