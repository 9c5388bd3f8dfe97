package search

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"vietjobs-search/internal/engine"
)

// fakeEngine scripts per-index search replies and records the bodies it
// receives, standing in for the real engine in coordinator tests.
type fakeEngine struct {
	mu        sync.Mutex
	responses map[string]*engine.SearchResponse
	failures  map[string]error
	counts    map[string]int64
	docs      map[string]json.RawMessage
	searches  []string // indices queried, in call order
}

func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		responses: make(map[string]*engine.SearchResponse),
		failures:  make(map[string]error),
		counts:    make(map[string]int64),
		docs:      make(map[string]json.RawMessage),
	}
}

func (f *fakeEngine) Search(ctx context.Context, index string, body any) (*engine.SearchResponse, error) {
	f.mu.Lock()
	f.searches = append(f.searches, index)
	f.mu.Unlock()

	if err, ok := f.failures[index]; ok {
		return nil, err
	}
	if res, ok := f.responses[index]; ok {
		return res, nil
	}
	return &engine.SearchResponse{}, nil
}

func (f *fakeEngine) Count(ctx context.Context, index string) (int64, error) {
	if err, ok := f.failures[index]; ok {
		return 0, err
	}
	return f.counts[index], nil
}

func (f *fakeEngine) GetDocument(ctx context.Context, index, id string) (json.RawMessage, error) {
	if doc, ok := f.docs[index+"/"+id]; ok {
		return doc, nil
	}
	return nil, engine.ErrNotFound
}

func (f *fakeEngine) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.searches)
}

var errEngineDown = errors.New("connection refused")

func hitsResponse(total int64, sources ...string) *engine.SearchResponse {
	res := &engine.SearchResponse{}
	res.Hits.Total.Value = total
	for i, src := range sources {
		res.Hits.Hits = append(res.Hits.Hits, engine.Hit{
			ID:     string(rune('a' + i)),
			Score:  float64(len(sources) - i),
			Source: json.RawMessage(src),
		})
	}
	return res
}
