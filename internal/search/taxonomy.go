package search

import "vietjobs-search/pkg/models"

// Taxonomy lists, per variant, the text fields a free-text query matches,
// the keyword fields accepted as filters and facets, and the suggester
// fields. Tables are fixed at startup and read-only afterwards.
type Taxonomy struct {
	// SearchFields are the weighted multi_match targets.
	SearchFields []string
	// TitleField backs autocomplete prefix matching.
	TitleField string
	// PhraseField backs the standalone did-you-mean suggester.
	PhraseField string
	// ShingleField backs the in-search did-you-mean suggester; empty when
	// the variant has no shingle subfield.
	ShingleField string
	// RecencyField is the date field for the freshness decay; empty when
	// the variant has no reliable posting date.
	RecencyField string
	// SortField orders advanced-search results; empty means score order.
	SortField string
	// TermFilters maps request filter keys to exact-match keyword fields.
	TermFilters map[string]string
	// NamedFacets is the fixed facet set computed by the all-facets call.
	NamedFacets map[string]string
	// FacetFields maps external facet keys to keyword fields for the
	// dynamic single-field facet. Unknown keys are rejected, never
	// defaulted.
	FacetFields map[string]string
}

var legacyTaxonomy = Taxonomy{
	SearchFields: []string{
		"Tiêu đề tin^3",
		"Địa điểm tuyển dụng",
		"Tỉnh thành tuyển dụng",
		"Chức vụ",
		"Ngành nghề",
		"Lĩnh vực",
	},
	TitleField:  "Tiêu đề tin",
	PhraseField: "Tiêu đề tin",
	TermFilters: map[string]string{
		"tinh_thanh":  "Tỉnh thành tuyển dụng.keyword",
		"hinh_thuc":   "Hình thức làm việc.keyword",
		"kinh_nghiem": "Kinh nghiệm.keyword",
	},
	NamedFacets: map[string]string{
		"tinh_thanh":  "Tỉnh thành tuyển dụng.keyword",
		"chuc_vu":     "Chức vụ.keyword",
		"hinh_thuc":   "Hình thức làm việc.keyword",
		"kinh_nghiem": "Kinh nghiệm.keyword",
		"nganh_nghe":  "Ngành nghề.keyword",
	},
	FacetFields: map[string]string{
		"tinh-thanh":  "Tỉnh thành tuyển dụng.keyword",
		"chuc-vu":     "Chức vụ.keyword",
		"hinh-thuc":   "Hình thức làm việc.keyword",
		"kinh-nghiem": "Kinh nghiệm.keyword",
		"nganh-nghe":  "Ngành nghề.keyword",
	},
}

var crawlerTaxonomy = Taxonomy{
	SearchFields: []string{
		"title^3",
		"company^2",
		"location",
		"description",
		"requirements",
		"skills",
	},
	TitleField:   "title",
	PhraseField:  "title",
	ShingleField: "title.suggest",
	RecencyField: "created_at",
	SortField:    "crawled_at",
	TermFilters: map[string]string{
		"location_city": "location_city",
		"work_type":     "work_type",
		"experience":    "experience",
		"source":        "source",
	},
	NamedFacets: map[string]string{
		"location_city":  "location_city",
		"work_type":      "work_type",
		"experience":     "experience",
		"industry":       "industry",
		"source":         "source",
		"skills":         "skills",
		"company":        "company.keyword",
		"qualifications": "qualifications",
	},
	FacetFields: map[string]string{
		"location-city":     "location_city",
		"location-district": "location_district",
		"position":          "position",
		"work-type":         "work_type",
		"industry":          "industry",
		"experience":        "experience",
		"skills":            "skills",
		"source":            "source",
		"qualifications":    "qualifications",
	},
}

// TaxonomyFor returns the field taxonomy of a variant.
func TaxonomyFor(v models.Variant) Taxonomy {
	if v == models.VariantLegacy {
		return legacyTaxonomy
	}
	return crawlerTaxonomy
}
