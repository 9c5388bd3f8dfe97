package search

import (
	"context"
	"encoding/json"
	"strings"

	"vietjobs-search/internal/engine"
	"vietjobs-search/internal/logging"
	"vietjobs-search/pkg/models"
)

// MinPrefixLen guards autocomplete against pathologically broad prefix
// queries; shorter inputs return an empty set without touching the engine.
const MinPrefixLen = 2

// DefaultAutocompleteLimit caps returned completions when the caller does
// not say otherwise.
const DefaultAutocompleteLimit = 8

const (
	autocompleteCandidates = 50
	maxExpansions          = 20
	maxFullTitleLen        = 50
)

// Suggester builds phrase-suggest and prefix-match queries against one
// index and post-processes the raw payloads into short-form completions.
type Suggester struct {
	engine engine.Searcher
	index  string
	tax    Taxonomy
	logger logging.Logger
}

// NewSuggester builds the suggestion engine for one index.
func NewSuggester(es engine.Searcher, index string, variant models.Variant) *Suggester {
	return &Suggester{
		engine: es,
		index:  index,
		tax:    TaxonomyFor(variant),
		logger: logging.GetGlobalLogger(),
	}
}

// DidYouMean returns at most one corrected phrase for the query, or empty
// when there is no correction. A suggestion identical to the input is
// suppressed, and engine failures degrade to "no suggestion" rather than
// erroring.
func (s *Suggester) DidYouMean(ctx context.Context, query string) string {
	if strings.TrimSpace(query) == "" {
		return ""
	}

	body := map[string]any{
		"suggest": map[string]any{
			"text": query,
			"did-you-mean": map[string]any{
				"phrase": map[string]any{
					"field":     s.tax.PhraseField,
					"size":      1,
					"gram_size": 2,
					"direct_generator": []any{
						map[string]any{
							"field":        s.tax.PhraseField,
							"suggest_mode": "popular",
						},
					},
				},
			},
		},
	}

	res, err := s.engine.Search(ctx, s.index, body)
	if err != nil {
		s.logger.Warn("Did-you-mean query failed", map[string]interface{}{
			"index": s.index,
			"error": err.Error(),
		})
		return ""
	}

	return ExtractDidYouMean(res, query)
}

// ExtractDidYouMean pulls the top phrase suggestion out of a search reply,
// suppressing a no-op echo of the original query.
func ExtractDidYouMean(res *engine.SearchResponse, query string) string {
	entries := res.Suggest["did-you-mean"]
	if len(entries) == 0 || len(entries[0].Options) == 0 {
		return ""
	}
	suggestion := entries[0].Options[0].Text
	if suggestion == query {
		return ""
	}
	return suggestion
}

// Autocomplete returns deduplicated short completions for a prefix:
// matched titles are cut at the prefix and continued by one, two, and
// three words, plus the full title when short enough.
func (s *Suggester) Autocomplete(ctx context.Context, prefix string, limit int) ([]string, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if len([]rune(prefix)) < MinPrefixLen {
		return []string{}, nil
	}
	if limit < 1 {
		limit = DefaultAutocompleteLimit
	}

	body := map[string]any{
		"size": autocompleteCandidates,
		"query": map[string]any{
			"match_phrase_prefix": map[string]any{
				s.tax.TitleField: map[string]any{
					"query":          prefix,
					"max_expansions": maxExpansions,
				},
			},
		},
		"_source": []string{s.tax.TitleField},
	}

	res, err := s.engine.Search(ctx, s.index, body)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var source map[string]any
		if err := json.Unmarshal(hit.Source, &source); err != nil {
			continue
		}
		if title, ok := source[s.tax.TitleField].(string); ok {
			titles = append(titles, title)
		}
	}

	return Completions(titles, prefix, limit), nil
}

// Completions derives the short suggestion set from matched titles. Pure;
// exported for the handler tests.
func Completions(titles []string, prefix string, limit int) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, limit)

	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		if _, dup := seen[s]; dup {
			return
		}
		seen[s] = struct{}{}
		if len(out) < limit {
			out = append(out, s)
		}
	}

	for _, title := range titles {
		lower := strings.ToLower(title)
		start := strings.Index(lower, prefix)
		if start < 0 {
			continue
		}

		after := strings.TrimSpace(title[start+len(prefix):])
		words := strings.Fields(after)

		for n := 1; n <= 3 && n <= len(words); n++ {
			add(prefix + " " + strings.Join(words[:n], " "))
		}

		if len([]rune(title)) <= maxFullTitleLen {
			add(title)
		}
	}

	return out
}
