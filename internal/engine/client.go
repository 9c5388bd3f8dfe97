package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"vietjobs-search/internal/config"
	"vietjobs-search/internal/logging"
	"vietjobs-search/pkg/models"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
)

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("document not found")

// Searcher is the read-side surface the search layer consumes. The concrete
// Client implements it; tests substitute a fake.
type Searcher interface {
	Search(ctx context.Context, index string, body any) (*SearchResponse, error)
	Count(ctx context.Context, index string) (int64, error)
	GetDocument(ctx context.Context, index, id string) (json.RawMessage, error)
}

// Indexer is the write-side surface the seeder and upload path consume.
type Indexer interface {
	IndexExists(ctx context.Context, index string) (bool, error)
	CreateIndex(ctx context.Context, index string, mapping []byte) error
	Count(ctx context.Context, index string) (int64, error)
	Bulk(ctx context.Context, index string, docs []models.JobDocument, variant models.Variant) (indexed, failed int, err error)
	PutDocument(ctx context.Context, index, id string, doc any) error
}

// Client wraps the Elasticsearch client with the narrow operations this
// service needs. The engine itself is a black box; all query semantics live
// in the search layer.
type Client struct {
	es     *elasticsearch.Client
	logger logging.Logger
}

// NewClient builds and verifies an Elasticsearch client from configuration.
func NewClient(cfg *config.Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Elasticsearch.Addresses,
		Username:  cfg.Elasticsearch.Username,
		Password:  cfg.Elasticsearch.Password,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: cfg.Elasticsearch.RequestTimeout,
			IdleConnTimeout:       90 * time.Second,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create es client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("es error: %s", res.Status())
	}

	return &Client{es: es, logger: logging.GetGlobalLogger()}, nil
}

// Ping verifies the engine is reachable.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Info(c.es.Info.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es info: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("es error: %s", res.Status())
	}
	return nil
}

// IndexExists probes for an index via the existence endpoint (200 vs 404).
func (c *Client) IndexExists(ctx context.Context, index string) (bool, error) {
	res, err := c.es.Indices.Exists([]string{index}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	defer res.Body.Close()

	return res.StatusCode == http.StatusOK, nil
}

// CreateIndex creates an index with the given settings/mappings body.
func (c *Client) CreateIndex(ctx context.Context, index string, mapping []byte) error {
	res, err := c.es.Indices.Create(
		index,
		c.es.Indices.Create.WithBody(bytes.NewReader(mapping)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("create index error: %s", res.Status())
	}
	return nil
}

// Count returns the document count of an index.
func (c *Client) Count(ctx context.Context, index string) (int64, error) {
	res, err := c.es.Count(c.es.Count.WithIndex(index), c.es.Count.WithContext(ctx))
	if err != nil {
		return 0, fmt.Errorf("count request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, fmt.Errorf("count error: %s", res.Status())
	}

	var body struct {
		Count int64 `json:"count"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return 0, fmt.Errorf("parse count response: %w", err)
	}
	return body.Count, nil
}

// PutDocument indexes a single document under the given id.
func (c *Client) PutDocument(ctx context.Context, index, id string, doc any) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	req := esapi.IndexRequest{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(data),
		Refresh:    "false",
	}

	res, err := req.Do(ctx, c.es)
	if err != nil {
		return fmt.Errorf("index request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("index error: %s", res.Status())
	}
	return nil
}

// GetDocument fetches a document source by id. Returns ErrNotFound for
// absent documents.
func (c *Client) GetDocument(ctx context.Context, index, id string) (json.RawMessage, error) {
	res, err := c.es.Get(index, id, c.es.Get.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if res.IsError() {
		return nil, fmt.Errorf("get error: %s", res.Status())
	}

	var body struct {
		Found  bool            `json:"found"`
		Source json.RawMessage `json:"_source"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("parse get response: %w", err)
	}
	if !body.Found {
		return nil, ErrNotFound
	}
	return body.Source, nil
}

// Bulk indexes a batch of documents in one NDJSON request, using each
// document's own identity field as the engine id. Per-document failures are
// tallied, not fatal; only a failed request is an error.
func (c *Client) Bulk(ctx context.Context, index string, docs []models.JobDocument, variant models.Variant) (int, int, error) {
	if len(docs) == 0 {
		return 0, 0, nil
	}

	var buf bytes.Buffer
	for _, doc := range docs {
		meta := map[string]any{
			"index": map[string]any{
				"_index": index,
				"_id":    doc.ID(variant),
			},
		}
		metaBytes, _ := json.Marshal(meta)
		buf.Write(metaBytes)
		buf.WriteByte('\n')

		docBytes, err := json.Marshal(doc)
		if err != nil {
			c.logger.Warn("Skipping unmarshalable document", map[string]interface{}{
				"id":    doc.ID(variant),
				"error": err.Error(),
			})
			continue
		}
		buf.Write(docBytes)
		buf.WriteByte('\n')
	}

	res, err := c.es.Bulk(
		bytes.NewReader(buf.Bytes()),
		c.es.Bulk.WithContext(ctx),
		c.es.Bulk.WithRefresh("true"),
	)
	if err != nil {
		return 0, len(docs), fmt.Errorf("bulk request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return 0, len(docs), fmt.Errorf("bulk error: %s", res.Status())
	}

	var bulkRes struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				ID     string `json:"_id"`
				Status int    `json:"status"`
				Error  struct {
					Type   string `json:"type"`
					Reason string `json:"reason"`
				} `json:"error"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&bulkRes); err != nil {
		return 0, len(docs), fmt.Errorf("parse bulk response: %w", err)
	}

	failed := 0
	if bulkRes.Errors {
		for _, item := range bulkRes.Items {
			if item.Index.Status >= 400 {
				failed++
				c.logger.Warn("Bulk index item failed", map[string]interface{}{
					"id":     item.Index.ID,
					"type":   item.Index.Error.Type,
					"reason": item.Index.Error.Reason,
				})
			}
		}
	}

	return len(docs) - failed, failed, nil
}

// Search executes a raw query DSL body against an index.
func (c *Client) Search(ctx context.Context, index string, body any) (*SearchResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(data)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search error: %s", res.Status())
	}

	var parsed SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("parse search response: %w", err)
	}
	return &parsed, nil
}
