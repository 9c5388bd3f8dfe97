package search

import (
	"context"
	"encoding/json"
	"testing"

	"vietjobs-search/internal/engine"
	"vietjobs-search/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggResponse(total int64, aggs map[string]string) *engine.SearchResponse {
	res := &engine.SearchResponse{Aggregations: make(map[string]json.RawMessage)}
	res.Hits.Total.Value = total
	for name, payload := range aggs {
		res.Aggregations[name] = json.RawMessage(payload)
	}
	return res
}

func TestFieldUnknownKeyEnumeratesRegisteredKeys(t *testing.T) {
	es := newFakeEngine()
	f := NewFacade(es, "jobs_crawler", models.VariantCrawler)

	_, err := f.Field(context.Background(), "salary", 10)
	require.Error(t, err)

	var unknown *UnknownFacetError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "salary", unknown.Key)
	assert.Equal(t, []string{
		"experience", "industry", "location-city", "location-district",
		"position", "qualifications", "skills", "source", "work-type",
	}, unknown.Available)

	// Rejected before any engine round trip.
	assert.Zero(t, es.searchCount())
}

func TestFieldKnownKey(t *testing.T) {
	es := newFakeEngine()
	es.responses["jobs_crawler"] = aggResponse(42, map[string]string{
		"field_agg": `{"buckets":[{"key":"Hà Nội","doc_count":30},{"key":"Đà Nẵng","doc_count":12}]}`,
	})

	f := NewFacade(es, "jobs_crawler", models.VariantCrawler)
	report, err := f.Field(context.Background(), "location-city", 10)
	require.NoError(t, err)

	assert.Equal(t, "location-city", report.Field)
	assert.Equal(t, int64(42), report.TotalDocs)
	require.Len(t, report.Buckets, 2)

	// With no filters the buckets cover the whole index.
	var sum int64
	for _, b := range report.Buckets {
		sum += b.DocCount
	}
	assert.Equal(t, report.TotalDocs, sum)
}

func TestAllComputesFixedFacetSet(t *testing.T) {
	es := newFakeEngine()
	es.responses["jobs"] = aggResponse(10, map[string]string{
		"tinh_thanh":  `{"buckets":[{"key":"Hà Nội","doc_count":6}]}`,
		"chuc_vu":     `{"buckets":[]}`,
		"hinh_thuc":   `{"buckets":[]}`,
		"kinh_nghiem": `{"buckets":[]}`,
		"nganh_nghe":  `{"buckets":[]}`,
	})

	f := NewFacade(es, "jobs", models.VariantLegacy)
	out, err := f.All(context.Background(), 0)
	require.NoError(t, err)

	assert.Equal(t, int64(10), out.TotalDocs)
	assert.Len(t, out.Aggregations, 5)
	require.Len(t, out.Aggregations["tinh_thanh"], 1)
	assert.Equal(t, "Hà Nội", out.Aggregations["tinh_thanh"][0].Key)

	// Absent payloads decode to empty bucket lists, not nil.
	assert.NotNil(t, out.Aggregations["chuc_vu"])
}

func TestSalaryRangesPerVariant(t *testing.T) {
	es := newFakeEngine()
	es.responses["jobs"] = aggResponse(5, map[string]string{
		"salary_ranges": `{"buckets":[{"key":"10-15 triệu","doc_count":3}]}`,
		"salary_stats":  `{"count":5,"min":0,"max":30,"avg":12.4,"sum":62}`,
		"salary_text":   `{"buckets":[{"key":"Thỏa thuận","doc_count":2}]}`,
	})

	f := NewFacade(es, "jobs", models.VariantLegacy)
	report, err := f.SalaryRanges(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "10-15 triệu", report.ByRange[0].Key)
	assert.Len(t, report.ByText, 1)
	assert.Empty(t, report.IsNegotiable)
	require.NotNil(t, report.Stats)
	assert.Equal(t, int64(5), report.Stats.Count)
	assert.InDelta(t, 12.4, *report.Stats.Avg, 0.001)
}

func TestExperienceStatsCrawlerUsesTags(t *testing.T) {
	es := newFakeEngine()
	es.responses["jobs_crawler"] = aggResponse(7, map[string]string{
		"by_experience":      `{"buckets":[{"key":"1 năm","doc_count":4}]}`,
		"by_experience_tags": `{"buckets":[{"key":"F","doc_count":7}]}`,
	})

	f := NewFacade(es, "jobs_crawler", models.VariantCrawler)
	report, err := f.ExperienceStats(context.Background())
	require.NoError(t, err)

	assert.Len(t, report.ByTags, 1)
	assert.Empty(t, report.ByRange)
}

func TestFacadePropagatesEngineError(t *testing.T) {
	es := newFakeEngine()
	es.failures["jobs"] = errEngineDown

	f := NewFacade(es, "jobs", models.VariantLegacy)
	_, err := f.All(context.Background(), 20)
	assert.Error(t, err)
}
