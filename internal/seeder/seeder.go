package seeder

import (
	"context"
	"fmt"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/logging"
	"vietjobs-search/internal/normalize"
	"vietjobs-search/pkg/models"
)

// Report summarizes one seed attempt.
type Report struct {
	Skipped       bool  // index already populated, nothing written
	ExistingCount int64 // document count when skipped
	Indexed       int
	Errors        int
	Dropped       int // documents missing identity or title
	ParseFailures int // malformed NDJSON lines
}

// Seeder performs the one-time initial bulk load of an index from a local
// data file. It runs at process start and is idempotent: a non-empty index
// is never seeded again.
type Seeder struct {
	engine engine.Indexer
	logger logging.Logger
}

// New builds a seeder on top of the engine's write surface.
func New(es engine.Indexer) *Seeder {
	return &Seeder{engine: es, logger: logging.GetGlobalLogger()}
}

// SeedIfEmpty ensures the index exists and is populated exactly once:
// a missing index is created and seeded, an empty one is seeded, a
// populated one is left untouched. Per-document failures are tallied in
// the report; only total inability to reach the engine is an error, and
// even that is expected to be logged and swallowed by the caller so the
// service still starts against whatever index state exists.
func (s *Seeder) SeedIfEmpty(ctx context.Context, index, dataPath string, variant models.Variant) (*Report, error) {
	exists, err := s.engine.IndexExists(ctx, index)
	if err != nil {
		return nil, fmt.Errorf("check index %s: %w", index, err)
	}

	if exists {
		count, err := s.engine.Count(ctx, index)
		if err != nil {
			return nil, fmt.Errorf("count index %s: %w", index, err)
		}
		if count > 0 {
			s.logger.Info("Index already populated, skipping seed", map[string]interface{}{
				"index": index,
				"count": count,
			})
			return &Report{Skipped: true, ExistingCount: count}, nil
		}
	} else {
		s.logger.Info("Creating index", map[string]interface{}{"index": index})
		if err := s.engine.CreateIndex(ctx, index, engine.MappingFor(variant)); err != nil {
			return nil, fmt.Errorf("create index %s: %w", index, err)
		}
	}

	return s.seed(ctx, index, dataPath, variant)
}

func (s *Seeder) seed(ctx context.Context, index, dataPath string, variant models.Variant) (*Report, error) {
	rawDocs, parseFailures, err := LoadFile(dataPath)
	if err != nil {
		return nil, err
	}

	report := &Report{ParseFailures: parseFailures}
	if len(rawDocs) == 0 {
		s.logger.Warn("No seed data to load", map[string]interface{}{"path": dataPath})
		return report, nil
	}

	docs := normalize.ProcessAll(rawDocs, variant)

	valid := docs[:0]
	for _, doc := range docs {
		if doc.Valid(variant) {
			valid = append(valid, doc)
		} else {
			report.Dropped++
		}
	}

	s.logger.Info("Bulk indexing seed data", map[string]interface{}{
		"index":   index,
		"total":   len(rawDocs),
		"valid":   len(valid),
		"dropped": report.Dropped,
	})

	indexed, failed, err := s.engine.Bulk(ctx, index, valid, variant)
	if err != nil {
		return nil, fmt.Errorf("bulk index %s: %w", index, err)
	}
	report.Indexed = indexed
	report.Errors = failed

	s.logger.Info("Seed complete", map[string]interface{}{
		"index":   index,
		"indexed": report.Indexed,
		"errors":  report.Errors,
	})
	return report, nil
}
