package models

// SearchRequest is the payload for the unified search endpoints. An empty
// query is allowed and means "match everything" so that paging and facets
// still work without a search term.
type SearchRequest struct {
	Query string `json:"q"`
	Page  int    `json:"page" validate:"omitempty,min=1"`
	Size  int    `json:"size" validate:"omitempty,min=1,max=50"`
}

const (
	DefaultPage    = 1
	DefaultSize    = 10
	MaxSize        = 50
	DefaultAggSize = 20
)

// Normalize applies paging defaults and clamps out-of-range values.
func (r *SearchRequest) Normalize() {
	if r.Page < 1 {
		r.Page = DefaultPage
	}
	if r.Size < 1 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
}

// From derives the result window offset.
func (r *SearchRequest) From() int {
	return (r.Page - 1) * r.Size
}

// AdvancedSearchRequest carries the optional filter set on top of the basic
// search payload. Legacy and crawler filters coexist here; each variant only
// honours its own keys.
type AdvancedSearchRequest struct {
	SearchRequest

	// Legacy filters (Vietnamese keyword fields).
	TinhThanh  string `json:"tinh_thanh,omitempty"`
	HinhThuc   string `json:"hinh_thuc,omitempty"`
	KinhNghiem string `json:"kinh_nghiem,omitempty"`

	// Crawler filters.
	LocationCity string `json:"location_city,omitempty"`
	WorkType     string `json:"work_type,omitempty"`
	Experience   string `json:"experience,omitempty"`
	Source       string `json:"source,omitempty"`

	// Shared salary range, in the variant's own unit.
	SalaryMin *int `json:"salary_min,omitempty"`
	SalaryMax *int `json:"salary_max,omitempty"`
}

// SuggestRequest is the payload for the did-you-mean endpoint.
type SuggestRequest struct {
	Query string `json:"q"`
}

// UploadRequest is the payload for the bulk document upload endpoint. Docs
// are raw variant-shaped field maps; the normalization pipeline runs before
// indexing.
type UploadRequest struct {
	Docs []JobDocument `json:"docs" validate:"required,min=1"`
}
