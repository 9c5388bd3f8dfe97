package search

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"vietjobs-search/internal/engine"
	"vietjobs-search/pkg/models"
)

// UnknownFacetError rejects a facet key missing from the lookup table. The
// valid keys travel with the error so the response can enumerate them;
// unknown keys are never silently mapped to some default field.
type UnknownFacetError struct {
	Key       string
	Available []string
}

func (e *UnknownFacetError) Error() string {
	return fmt.Sprintf("unknown facet %q (available: %s)", e.Key, strings.Join(e.Available, ", "))
}

// salaryBuckets holds the per-variant human-labeled salary bucket tables.
// The boundaries are deliberately different units: legacy buckets count
// "triệu", crawler buckets are absolute VND. The source datasets never
// reconciled the two and neither does this service.
var salaryBuckets = map[models.Variant][]map[string]any{
	models.VariantLegacy: {
		{"key": "Thỏa thuận", "from": 0, "to": 1},
		{"key": "Dưới 7 triệu", "from": 1, "to": 7},
		{"key": "7-10 triệu", "from": 7, "to": 10},
		{"key": "10-15 triệu", "from": 10, "to": 15},
		{"key": "15-20 triệu", "from": 15, "to": 20},
		{"key": "20-30 triệu", "from": 20, "to": 30},
		{"key": "Trên 30 triệu", "from": 30},
	},
	models.VariantCrawler: {
		{"key": "Thỏa thuận", "from": 0, "to": 1},
		{"key": "Dưới 10 triệu", "from": 1, "to": 10000000},
		{"key": "10-20 triệu", "from": 10000000, "to": 20000000},
		{"key": "20-30 triệu", "from": 20000000, "to": 30000000},
		{"key": "30-50 triệu", "from": 30000000, "to": 50000000},
		{"key": "Trên 50 triệu", "from": 50000000},
	},
}

// experienceBuckets labels numeric experience ranges for the legacy index.
var experienceBuckets = []map[string]any{
	{"key": "Không yêu cầu (0)", "from": 0, "to": 1},
	{"key": "Fresher (0-1)", "from": 0, "to": 2},
	{"key": "Junior (1-2)", "from": 1, "to": 3},
	{"key": "Middle (2-5)", "from": 2, "to": 6},
	{"key": "Senior (5-10)", "from": 5, "to": 11},
	{"key": "Expert (10+)", "from": 10},
}

// AllFacets is the one-round-trip answer for the fixed facet set.
type AllFacets struct {
	TotalDocs    int64                           `json:"total_docs"`
	Aggregations map[string][]engine.TermsBucket `json:"aggregations"`
}

// SalaryReport reshapes the salary aggregations of one variant.
type SalaryReport struct {
	TotalDocs    int64                `json:"total_docs"`
	ByText       []engine.TermsBucket `json:"salary_by_text,omitempty"`
	IsNegotiable []engine.TermsBucket `json:"is_negotiable,omitempty"`
	ByRange      []engine.TermsBucket `json:"salary_by_range"`
	Stats        *engine.StatsPayload `json:"salary_stats"`
}

// ExperienceReport reshapes the experience aggregations of one variant.
type ExperienceReport struct {
	TotalDocs int64                `json:"total_docs"`
	ByText    []engine.TermsBucket `json:"by_experience"`
	ByRange   []engine.TermsBucket `json:"by_experience_range,omitempty"`
	ByTags    []engine.TermsBucket `json:"by_experience_tags,omitempty"`
}

// SourcesReport reshapes the crawl source distribution.
type SourcesReport struct {
	TotalDocs int64                `json:"total_docs"`
	BySource  []engine.TermsBucket `json:"by_source"`
	Timeline  []engine.TermsBucket `json:"crawl_timeline"`
}

// FieldReport is the dynamic single-field facet answer.
type FieldReport struct {
	Field     string               `json:"field"`
	TotalDocs int64                `json:"total_docs"`
	Buckets   []engine.TermsBucket `json:"buckets"`
}

// Facade turns named facets and dynamic field keys into aggregation DSL
// and reshapes the engine's reply into stable facet→bucket structures. All
// facade queries request zero hits; only bucket computation is needed.
type Facade struct {
	engine  engine.Searcher
	index   string
	variant models.Variant
	tax     Taxonomy
}

// NewFacade builds the aggregation facade for one index.
func NewFacade(es engine.Searcher, index string, variant models.Variant) *Facade {
	return &Facade{engine: es, index: index, variant: variant, tax: TaxonomyFor(variant)}
}

func terms(field string, size int) map[string]any {
	return map[string]any{"terms": map[string]any{"field": field, "size": size}}
}

func ranged(field string, buckets []map[string]any) map[string]any {
	return map[string]any{"range": map[string]any{"field": field, "ranges": buckets}}
}

// All computes the variant's fixed facet set in one round trip.
func (f *Facade) All(ctx context.Context, size int) (*AllFacets, error) {
	if size < 1 {
		size = models.DefaultAggSize
	}

	aggs := make(map[string]any, len(f.tax.NamedFacets))
	for name, field := range f.tax.NamedFacets {
		aggs[name] = terms(field, size)
	}

	res, err := f.engine.Search(ctx, f.index, map[string]any{"size": 0, "aggs": aggs})
	if err != nil {
		return nil, err
	}

	out := &AllFacets{
		TotalDocs:    res.Hits.Total.Value,
		Aggregations: make(map[string][]engine.TermsBucket, len(f.tax.NamedFacets)),
	}
	for name := range f.tax.NamedFacets {
		out.Aggregations[name] = engine.DecodeBuckets(res.Aggregations[name])
	}
	return out, nil
}

// SalaryRanges exposes salary both as labeled buckets in the variant's own
// unit and as summary statistics over salary_min.
func (f *Facade) SalaryRanges(ctx context.Context) (*SalaryReport, error) {
	aggs := map[string]any{
		"salary_ranges": ranged(models.FieldSalaryMin, salaryBuckets[f.variant]),
		"salary_stats":  map[string]any{"stats": map[string]any{"field": models.FieldSalaryMin}},
	}
	if f.variant == models.VariantLegacy {
		aggs["salary_text"] = terms("Mức lương.keyword", 20)
	} else {
		aggs["is_negotiable"] = map[string]any{"terms": map[string]any{"field": "is_negotiable"}}
	}

	res, err := f.engine.Search(ctx, f.index, map[string]any{"size": 0, "aggs": aggs})
	if err != nil {
		return nil, err
	}

	report := &SalaryReport{
		TotalDocs: res.Hits.Total.Value,
		ByRange:   engine.DecodeBuckets(res.Aggregations["salary_ranges"]),
		Stats:     engine.DecodeStats(res.Aggregations["salary_stats"]),
	}
	if f.variant == models.VariantLegacy {
		report.ByText = engine.DecodeBuckets(res.Aggregations["salary_text"])
	} else {
		report.IsNegotiable = engine.DecodeBuckets(res.Aggregations["is_negotiable"])
	}
	return report, nil
}

// ExperienceStats exposes experience as raw-text buckets plus, per variant,
// labeled numeric ranges (legacy) or eligibility tag counts (crawler).
func (f *Facade) ExperienceStats(ctx context.Context) (*ExperienceReport, error) {
	var textField string
	aggs := map[string]any{}
	if f.variant == models.VariantLegacy {
		textField = "Kinh nghiệm.keyword"
		aggs["experience_ranges"] = ranged(models.FieldExperienceMin, experienceBuckets)
	} else {
		textField = "experience"
		aggs["by_experience_tags"] = terms(models.FieldExperienceTags, 20)
	}
	aggs["by_experience"] = terms(textField, 20)

	res, err := f.engine.Search(ctx, f.index, map[string]any{"size": 0, "aggs": aggs})
	if err != nil {
		return nil, err
	}

	report := &ExperienceReport{
		TotalDocs: res.Hits.Total.Value,
		ByText:    engine.DecodeBuckets(res.Aggregations["by_experience"]),
	}
	if f.variant == models.VariantLegacy {
		report.ByRange = engine.DecodeBuckets(res.Aggregations["experience_ranges"])
	} else {
		report.ByTags = engine.DecodeBuckets(res.Aggregations["by_experience_tags"])
	}
	return report, nil
}

// Sources reports the crawl source distribution and a daily crawl timeline.
func (f *Facade) Sources(ctx context.Context) (*SourcesReport, error) {
	body := map[string]any{
		"size": 0,
		"aggs": map[string]any{
			"by_source": terms("source", 10),
			"crawl_timeline": map[string]any{
				"date_histogram": map[string]any{
					"field":             "crawled_at",
					"calendar_interval": "day",
				},
			},
		},
	}

	res, err := f.engine.Search(ctx, f.index, body)
	if err != nil {
		return nil, err
	}

	return &SourcesReport{
		TotalDocs: res.Hits.Total.Value,
		BySource:  engine.DecodeBuckets(res.Aggregations["by_source"]),
		Timeline:  engine.DecodeBuckets(res.Aggregations["crawl_timeline"]),
	}, nil
}

// Field computes a facet for one dynamically chosen key. Unknown keys fail
// with the registered key list; they are never defaulted to another field.
func (f *Facade) Field(ctx context.Context, key string, size int) (*FieldReport, error) {
	field, ok := f.tax.FacetFields[key]
	if !ok {
		return nil, &UnknownFacetError{Key: key, Available: f.FacetKeys()}
	}
	if size < 1 {
		size = 50
	}

	body := map[string]any{
		"size": 0,
		"aggs": map[string]any{"field_agg": terms(field, size)},
	}

	res, err := f.engine.Search(ctx, f.index, body)
	if err != nil {
		return nil, err
	}

	return &FieldReport{
		Field:     key,
		TotalDocs: res.Hits.Total.Value,
		Buckets:   engine.DecodeBuckets(res.Aggregations["field_agg"]),
	}, nil
}

// FacetKeys returns the registered dynamic facet keys, sorted.
func (f *Facade) FacetKeys() []string {
	keys := make([]string, 0, len(f.tax.FacetFields))
	for k := range f.tax.FacetFields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
