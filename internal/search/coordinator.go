package search

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/logging"
	"vietjobs-search/pkg/models"

	"golang.org/x/sync/errgroup"
)

// Coordinator orchestrates query building, aggregation, and suggestion
// against the two physical indices. It holds no per-request state; every
// method is safe for concurrent use.
type Coordinator struct {
	engine  engine.Searcher
	indices map[models.Variant]string
	logger  logging.Logger
}

// NewCoordinator wires the search layer to the engine and the configured
// index names.
func NewCoordinator(es engine.Searcher, legacyIndex, crawlerIndex string) *Coordinator {
	return &Coordinator{
		engine: es,
		indices: map[models.Variant]string{
			models.VariantLegacy:  legacyIndex,
			models.VariantCrawler: crawlerIndex,
		},
		logger: logging.GetGlobalLogger(),
	}
}

// Index returns the physical index name backing a variant.
func (c *Coordinator) Index(v models.Variant) string {
	return c.indices[v]
}

// Facade returns the aggregation facade for a variant's index.
func (c *Coordinator) Facade(v models.Variant) *Facade {
	return NewFacade(c.engine, c.indices[v], v)
}

// Suggester returns the suggestion engine for a variant's index.
func (c *Coordinator) Suggester(v models.Variant) *Suggester {
	return NewSuggester(c.engine, c.indices[v], v)
}

func toHits(hits []engine.Hit) []models.SearchHit {
	out := make([]models.SearchHit, 0, len(hits))
	for _, h := range hits {
		out = append(out, models.SearchHit{
			ID:        h.ID,
			Score:     h.Score,
			Source:    h.Source,
			Highlight: h.Highlight,
		})
	}
	return out
}

// Search runs the unified single-index search: hybrid or recency-boosted
// text matching with paging, plus the crawler's inline did-you-mean.
func (c *Coordinator) Search(ctx context.Context, v models.Variant, p Params) (*models.SearchResponse, error) {
	p.Normalize()

	res, err := c.engine.Search(ctx, c.indices[v], BuildSearchBody(p, v))
	if err != nil {
		return nil, err
	}

	out := &models.SearchResponse{
		Page:  p.Page,
		Size:  p.Size,
		Total: res.Hits.Total.Value,
		Hits:  toHits(res.Hits.Hits),
	}

	if TaxonomyFor(v).ShingleField != "" && strings.TrimSpace(p.Query) != "" {
		if suggestion := ExtractDidYouMean(res, p.Query); suggestion != "" {
			out.DidYouMean = &suggestion
		}
	}

	return out, nil
}

// AdvancedSearch runs the filter-narrowed search for a variant.
func (c *Coordinator) AdvancedSearch(ctx context.Context, v models.Variant, p Params) (*models.SearchResponse, error) {
	p.Normalize()

	res, err := c.engine.Search(ctx, c.indices[v], BuildAdvancedBody(p, v))
	if err != nil {
		return nil, err
	}

	return &models.SearchResponse{
		Page:  p.Page,
		Size:  p.Size,
		Total: res.Hits.Total.Value,
		Hits:  toHits(res.Hits.Hits),
	}, nil
}

// GetJob fetches one document by id from a variant's index.
func (c *Coordinator) GetJob(ctx context.Context, v models.Variant, id string) (json.RawMessage, error) {
	return c.engine.GetDocument(ctx, c.indices[v], id)
}

// searchBranch issues one branch of the fan-out and converts any failure
// into an error-annotated empty result. A branch can fail for its own
// reasons (missing index, timeout, malformed field) without affecting its
// sibling.
func (c *Coordinator) searchBranch(ctx context.Context, v models.Variant, p Params) models.BranchResult {
	branch := models.BranchResult{
		Index: c.indices[v],
		Hits:  []models.SearchHit{},
	}

	res, err := c.engine.Search(ctx, c.indices[v], BuildFanoutBody(p, v))
	if err != nil {
		c.logger.Warn("Search branch failed", map[string]interface{}{
			"index": c.indices[v],
			"error": err.Error(),
		})
		branch.Error = err.Error()
		return branch
	}

	branch.Total = res.Hits.Total.Value
	branch.Hits = toHits(res.Hits.Hits)
	return branch
}

// SearchAll fans one logical query out across both indices concurrently.
// Branch failures are isolated at the branch boundary; the join always
// succeeds and the two result sets are reported side by side, never merged.
func (c *Coordinator) SearchAll(ctx context.Context, p Params) *models.CombinedSearchResponse {
	p.Normalize()

	out := &models.CombinedSearchResponse{Page: p.Page, Size: p.Size}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		out.Legacy = c.searchBranch(gctx, models.VariantLegacy, p)
		return nil
	})
	g.Go(func() error {
		out.Crawler = c.searchBranch(gctx, models.VariantCrawler, p)
		return nil
	})
	_ = g.Wait() // branches never return errors

	return out
}

// Stats counts both indices concurrently, treating a count failure as zero
// rather than a request failure, and sums the result.
func (c *Coordinator) Stats(ctx context.Context, endpoints map[models.Variant]string) *models.StatsResponse {
	var mu sync.Mutex
	counts := make(map[models.Variant]int64, len(c.indices))

	g, gctx := errgroup.WithContext(ctx)
	for v := range c.indices {
		g.Go(func() error {
			n, err := c.engine.Count(gctx, c.indices[v])
			if err != nil {
				c.logger.Warn("Index count failed", map[string]interface{}{
					"index": c.indices[v],
					"error": err.Error(),
				})
				n = 0
			}
			mu.Lock()
			counts[v] = n
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	out := &models.StatsResponse{Indexes: make(map[string]models.IndexStats, len(counts))}
	for v, n := range counts {
		out.Indexes[string(v)] = models.IndexStats{
			Name:     c.indices[v],
			Count:    n,
			Endpoint: endpoints[v],
		}
		out.Total += n
	}
	return out
}
