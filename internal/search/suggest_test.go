package search

import (
	"context"
	"strings"
	"testing"

	"vietjobs-search/internal/engine"
	"vietjobs-search/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutocompleteShortPrefixSkipsEngine(t *testing.T) {
	es := newFakeEngine()
	s := NewSuggester(es, "jobs_crawler", models.VariantCrawler)

	out, err := s.Autocomplete(context.Background(), "p", 8)
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Zero(t, es.searchCount(), "short prefixes must not reach the engine")
}

func TestAutocompleteDerivesCompletions(t *testing.T) {
	es := newFakeEngine()
	es.responses["jobs_crawler"] = hitsResponse(2,
		`{"title":"Python Developer Senior Backend"}`,
		`{"title":"Python Developer"}`,
	)

	s := NewSuggester(es, "jobs_crawler", models.VariantCrawler)
	out, err := s.Autocomplete(context.Background(), "python", 8)
	require.NoError(t, err)

	assert.Contains(t, out, "python Developer")
	assert.Contains(t, out, "python Developer Senior")
	assert.Contains(t, out, "python Developer Senior Backend")
	assert.Contains(t, out, "Python Developer")

	for _, suggestion := range out {
		assert.True(t, strings.HasPrefix(strings.ToLower(suggestion), "python"),
			"suggestion %q must extend the prefix", suggestion)
	}
}

func TestCompletionsDeduplicatesAndLimits(t *testing.T) {
	titles := []string{
		"Kế toán tổng hợp",
		"Kế toán tổng hợp",
		"Kế toán trưởng",
		"Kế toán nội bộ",
	}

	out := Completions(titles, "kế toán", 3)

	assert.Len(t, out, 3)
	seen := make(map[string]int)
	for _, s := range out {
		seen[s]++
	}
	for s, n := range seen {
		assert.Equal(t, 1, n, "duplicate completion %q", s)
	}
}

func TestCompletionsSkipsLongFullTitles(t *testing.T) {
	long := "Python Developer " + strings.Repeat("x", 60)
	out := Completions([]string{long}, "python", 8)

	assert.NotContains(t, out, long)
	assert.Contains(t, out, "python Developer")
}

func TestDidYouMeanFailsSoft(t *testing.T) {
	es := newFakeEngine()
	es.failures["jobs"] = errEngineDown

	s := NewSuggester(es, "jobs", models.VariantLegacy)
	assert.Empty(t, s.DidYouMean(context.Background(), "ke toan"))
}

func TestDidYouMeanEmptyQuery(t *testing.T) {
	es := newFakeEngine()
	s := NewSuggester(es, "jobs", models.VariantLegacy)

	assert.Empty(t, s.DidYouMean(context.Background(), "  "))
	assert.Zero(t, es.searchCount())
}

func TestDidYouMeanReturnsTopOption(t *testing.T) {
	es := newFakeEngine()
	res := &engine.SearchResponse{Suggest: map[string][]engine.SuggestEntry{
		"did-you-mean": {{
			Text:    "ke toan",
			Options: []engine.SuggestOption{{Text: "kế toán", Score: 0.8}},
		}},
	}}
	es.responses["jobs"] = res

	s := NewSuggester(es, "jobs", models.VariantLegacy)
	assert.Equal(t, "kế toán", s.DidYouMean(context.Background(), "ke toan"))
}
