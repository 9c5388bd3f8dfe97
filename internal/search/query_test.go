package search

import (
	"testing"

	"vietjobs-search/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQueryEmptyTextMatchesAll(t *testing.T) {
	for _, v := range []models.Variant{models.VariantLegacy, models.VariantCrawler} {
		q := BuildQuery("   ", v)
		assert.Contains(t, q, "match_all")
	}
}

func TestBuildQueryLegacyHybrid(t *testing.T) {
	q := BuildQuery("kế toán", models.VariantLegacy)

	boolQuery, ok := q["bool"].(map[string]any)
	require.True(t, ok)
	should, ok := boolQuery["should"].([]any)
	require.True(t, ok)
	require.Len(t, should, 2)

	exact := should[0].(map[string]any)["multi_match"].(map[string]any)
	fuzzy := should[1].(map[string]any)["multi_match"].(map[string]any)

	assert.Equal(t, 0.8, exact["boost"])
	assert.NotContains(t, exact, "fuzziness")
	assert.Equal(t, 0.2, fuzzy["boost"])
	assert.Equal(t, "AUTO", fuzzy["fuzziness"])
	assert.Equal(t, legacyTaxonomy.SearchFields, exact["fields"])
}

func TestBuildQueryCrawlerMultiMatch(t *testing.T) {
	q := BuildQuery("backend engineer", models.VariantCrawler)

	mm, ok := q["multi_match"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "backend engineer", mm["query"])
	assert.Equal(t, crawlerTaxonomy.SearchFields, mm["fields"])
}

func TestBuildSearchBodyCrawlerRecencyDecay(t *testing.T) {
	p := Params{Query: "golang", Page: 2, Size: 10}
	body := BuildSearchBody(p, models.VariantCrawler)

	fs, ok := body["query"].(map[string]any)["function_score"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sum", fs["boost_mode"])
	assert.Equal(t, "sum", fs["score_mode"])

	gauss := fs["functions"].([]any)[0].(map[string]any)["gauss"].(map[string]any)
	decay := gauss["created_at"].(map[string]any)
	assert.Equal(t, "now", decay["origin"])
	assert.Equal(t, "30d", decay["scale"])
	assert.Equal(t, "7d", decay["offset"])
	assert.Equal(t, 0.5, decay["decay"])

	assert.Equal(t, 10, body["from"])
	assert.Equal(t, 10, body["size"])

	// Non-empty crawler queries carry the inline did-you-mean suggester.
	suggest, ok := body["suggest"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "golang", suggest["text"])
}

func TestBuildSearchBodyLegacyHasNoDecayOrSuggest(t *testing.T) {
	body := BuildSearchBody(Params{Query: "kế toán"}, models.VariantLegacy)

	assert.NotContains(t, body["query"].(map[string]any), "function_score")
	assert.NotContains(t, body, "suggest")
}

func TestBuildSearchBodyEmptyQueryNoSuggest(t *testing.T) {
	body := BuildSearchBody(Params{}, models.VariantCrawler)
	assert.NotContains(t, body, "suggest")
}

func TestBuildFanoutBodyIsPlainMultiMatch(t *testing.T) {
	p := Params{Query: "kế toán", Page: 2, Size: 5}
	p.Normalize()
	body := BuildFanoutBody(p, models.VariantLegacy)

	// Branches rank with a bare weighted multi_match: no hybrid fuzzy
	// clause, no recency decay, no suggester.
	query := body["query"].(map[string]any)
	require.Contains(t, query, "multi_match")
	assert.NotContains(t, query, "bool")
	assert.NotContains(t, query, "function_score")
	assert.NotContains(t, body, "suggest")

	multiMatch := query["multi_match"].(map[string]any)
	assert.Equal(t, "kế toán", multiMatch["query"])
	assert.Contains(t, multiMatch["fields"], "Tiêu đề tin^3")

	assert.Equal(t, 5, body["from"])
	assert.Equal(t, 5, body["size"])
}

func TestBuildFanoutBodyEmptyQueryMatchesAll(t *testing.T) {
	p := Params{}
	p.Normalize()
	body := BuildFanoutBody(p, models.VariantCrawler)

	assert.Contains(t, body["query"].(map[string]any), "match_all")
}

func TestBuildAdvancedBodyFilters(t *testing.T) {
	minSalary, maxSalary := 10, 20
	p := Params{
		Query:     "kế toán",
		Terms:     map[string]string{"Tỉnh thành tuyển dụng.keyword": "Hà Nội"},
		SalaryMin: &minSalary,
		SalaryMax: &maxSalary,
	}
	p.Normalize()
	body := BuildAdvancedBody(p, models.VariantLegacy)

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]any)
	require.Len(t, must, 1)
	assert.Contains(t, must[0].(map[string]any), "bool") // hybrid text query

	filter := boolQuery["filter"].([]any)
	require.Len(t, filter, 3)
	term := filter[0].(map[string]any)["term"].(map[string]any)
	assert.Equal(t, "Hà Nội", term["Tỉnh thành tuyển dụng.keyword"])

	salaryMin := filter[1].(map[string]any)["range"].(map[string]any)["salary_min"].(map[string]any)
	assert.Equal(t, 10, salaryMin["gte"])
	salaryMax := filter[2].(map[string]any)["range"].(map[string]any)["salary_max"].(map[string]any)
	assert.Equal(t, 20, salaryMax["lte"])
}

func TestBuildAdvancedBodyEmptyFiltersReduceToMatchAll(t *testing.T) {
	p := Params{}
	p.Normalize()
	body := BuildAdvancedBody(p, models.VariantLegacy)

	boolQuery := body["query"].(map[string]any)["bool"].(map[string]any)
	must := boolQuery["must"].([]any)
	assert.Contains(t, must[0].(map[string]any), "match_all")
	assert.Empty(t, boolQuery["filter"])
}

func TestBuildAdvancedBodyCrawlerSortsByCrawlDate(t *testing.T) {
	p := Params{Query: "golang"}
	p.Normalize()
	body := BuildAdvancedBody(p, models.VariantCrawler)

	sortClause := body["sort"].([]any)[0].(map[string]any)
	assert.Equal(t, "desc", sortClause["crawled_at"].(map[string]any)["order"])
}

func TestParamsNormalize(t *testing.T) {
	p := Params{Page: 0, Size: -5}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Size)

	p = Params{Page: 3, Size: 500}
	p.Normalize()
	assert.Equal(t, 50, p.Size)
	assert.Equal(t, 100, p.From())
}
