package search

import (
	"sort"
	"strings"

	"vietjobs-search/pkg/models"
)

// Params is one logical search: free text, paging, and the optional exact
// filter set. Terms maps engine keyword fields to required values; salary
// bounds stay in the variant's own unit.
type Params struct {
	Query     string
	Page      int
	Size      int
	Terms     map[string]string
	SalaryMin *int
	SalaryMax *int
}

// Normalize applies paging defaults and the size cap.
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = models.DefaultPage
	}
	if p.Size < 1 {
		p.Size = models.DefaultSize
	}
	if p.Size > models.MaxSize {
		p.Size = models.MaxSize
	}
}

// From is the result window offset.
func (p *Params) From() int {
	return (p.Page - 1) * p.Size
}

// BuildQuery returns the scoring query for the given text. Empty text
// matches everything so filter-only and facet-only requests still page.
//
// Legacy text queries are a weighted disjunction of an exact multi-field
// match (boost 0.8) and the same match with automatic fuzziness (boost
// 0.2): the fuzzy clause can never outrank an exact hit, so the query is
// typo tolerant without sacrificing precision.
func BuildQuery(text string, variant models.Variant) map[string]any {
	text = strings.TrimSpace(text)
	if text == "" {
		return map[string]any{"match_all": map[string]any{}}
	}

	tax := TaxonomyFor(variant)

	if variant == models.VariantLegacy {
		return map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{
						"multi_match": map[string]any{
							"query":  text,
							"fields": tax.SearchFields,
							"boost":  0.8,
						},
					},
					map[string]any{
						"multi_match": map[string]any{
							"query":     text,
							"fields":    tax.SearchFields,
							"fuzziness": "AUTO",
							"boost":     0.2,
						},
					},
				},
			},
		}
	}

	return map[string]any{
		"multi_match": map[string]any{
			"query":  text,
			"fields": tax.SearchFields,
		},
	}
}

// withRecencyDecay wraps a query in a function_score envelope that adds a
// Gaussian decay on the variant's recency field: half value at 30 days,
// full value kept through a 7 day grace offset. Scores combine by sum, so
// a relevant old posting degrades gracefully instead of being suppressed.
func withRecencyDecay(query map[string]any, field string) map[string]any {
	return map[string]any{
		"function_score": map[string]any{
			"query": query,
			"functions": []any{
				map[string]any{
					"gauss": map[string]any{
						field: map[string]any{
							"origin": "now",
							"scale":  "30d",
							"offset": "7d",
							"decay":  0.5,
						},
					},
				},
			},
			"boost_mode": "sum",
			"score_mode": "sum",
		},
	}
}

// buildSuggestBlock builds the in-search did-you-mean phrase suggester.
func buildSuggestBlock(text, field string) map[string]any {
	return map[string]any{
		"text": text,
		"did-you-mean": map[string]any{
			"phrase": map[string]any{
				"field":      field,
				"size":       1,
				"gram_size":  2,
				"confidence": 0.5,
				"max_errors": 2,
				"direct_generator": []any{
					map[string]any{
						"field":           field,
						"suggest_mode":    "always",
						"min_word_length": 2,
					},
				},
			},
		},
	}
}

// BuildSearchBody builds the full request body for the unified search
// endpoint. Crawler bodies carry the recency decay and, for non-empty
// queries, an inline did-you-mean suggester.
func BuildSearchBody(p Params, variant models.Variant) map[string]any {
	tax := TaxonomyFor(variant)
	query := BuildQuery(p.Query, variant)

	if tax.RecencyField != "" {
		query = withRecencyDecay(query, tax.RecencyField)
	}

	body := map[string]any{
		"query": query,
		"from":  p.From(),
		"size":  p.Size,
	}

	if tax.ShingleField != "" && strings.TrimSpace(p.Query) != "" {
		body["suggest"] = buildSuggestBlock(p.Query, tax.ShingleField)
	}

	return body
}

// BuildFanoutBody builds one branch of the cross-index search: a plain
// weighted multi_match with paging. The per-index ranking extras (hybrid
// fuzziness, recency decay, inline suggest) stay out of the fan-out.
func BuildFanoutBody(p Params, variant models.Variant) map[string]any {
	var query map[string]any
	if strings.TrimSpace(p.Query) == "" {
		query = map[string]any{"match_all": map[string]any{}}
	} else {
		query = map[string]any{
			"multi_match": map[string]any{
				"query":  p.Query,
				"fields": TaxonomyFor(variant).SearchFields,
			},
		}
	}

	return map[string]any{
		"query": query,
		"from":  p.From(),
		"size":  p.Size,
	}
}

// BuildAdvancedBody builds the filtered search body: the scoring query (or
// match_all) in a must clause, exact and range constraints in the
// non-scoring filter context.
func BuildAdvancedBody(p Params, variant models.Variant) map[string]any {
	tax := TaxonomyFor(variant)

	fields := make([]string, 0, len(p.Terms))
	for field := range p.Terms {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	filter := make([]any, 0, len(fields)+2)
	for _, field := range fields {
		filter = append(filter, map[string]any{
			"term": map[string]any{field: p.Terms[field]},
		})
	}
	if p.SalaryMin != nil {
		filter = append(filter, map[string]any{
			"range": map[string]any{
				models.FieldSalaryMin: map[string]any{"gte": *p.SalaryMin},
			},
		})
	}
	if p.SalaryMax != nil {
		filter = append(filter, map[string]any{
			"range": map[string]any{
				models.FieldSalaryMax: map[string]any{"lte": *p.SalaryMax},
			},
		})
	}

	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must":   []any{BuildQuery(p.Query, variant)},
				"filter": filter,
			},
		},
		"from": p.From(),
		"size": p.Size,
	}

	if tax.SortField != "" {
		body["sort"] = []any{
			map[string]any{tax.SortField: map[string]any{"order": "desc"}},
		}
	}

	return body
}
