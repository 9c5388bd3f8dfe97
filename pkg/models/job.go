package models

// Variant identifies which of the two document schemas a job posting uses.
// The legacy dataset keeps its original Vietnamese field names; the crawler
// dataset uses English field names. The two schemas are genuinely
// incompatible (field names and salary units differ) and are never unified.
type Variant string

const (
	VariantLegacy  Variant = "legacy"
	VariantCrawler Variant = "crawler"
)

// Legacy dataset field names.
const (
	LegacyFieldID         = "Id tin"
	LegacyFieldTitle      = "Tiêu đề tin"
	LegacyFieldSalary     = "Mức lương"
	LegacyFieldExperience = "Kinh nghiệm"
)

// Crawler dataset field names.
const (
	CrawlerFieldID         = "id"
	CrawlerFieldTitle      = "title"
	CrawlerFieldSalary     = "salary"
	CrawlerFieldExperience = "experience"
)

// Computed fields added by the normalization pipeline, present on both
// variants after processing. Salary units are NOT comparable across
// variants: legacy values are raw "triệu" counts, crawler values are
// absolute VND.
const (
	FieldSalaryMin      = "salary_min"
	FieldSalaryMax      = "salary_max"
	FieldExperienceMin  = "experience_min"
	FieldExperienceMax  = "experience_max"
	FieldExperienceTags = "experience_tags"
)

// JobDocument is a schema-on-read job posting: a plain field map in one of
// the two variant schemas. Only the identity and title fields are required;
// everything else is passed through as-is.
type JobDocument map[string]any

// stringField returns the named field as a string, tolerating absent or
// non-string values.
func (d JobDocument) stringField(name string) string {
	if v, ok := d[name]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// ID returns the document identity for the given variant.
func (d JobDocument) ID(v Variant) string {
	if v == VariantLegacy {
		return d.stringField(LegacyFieldID)
	}
	return d.stringField(CrawlerFieldID)
}

// Title returns the document title for the given variant.
func (d JobDocument) Title(v Variant) string {
	if v == VariantLegacy {
		return d.stringField(LegacyFieldTitle)
	}
	return d.stringField(CrawlerFieldTitle)
}

// SalaryText returns the raw salary text for the given variant.
func (d JobDocument) SalaryText(v Variant) string {
	if v == VariantLegacy {
		return d.stringField(LegacyFieldSalary)
	}
	return d.stringField(CrawlerFieldSalary)
}

// ExperienceText returns the raw experience text for the given variant.
func (d JobDocument) ExperienceText(v Variant) string {
	if v == VariantLegacy {
		return d.stringField(LegacyFieldExperience)
	}
	return d.stringField(CrawlerFieldExperience)
}

// Valid reports whether the document carries the required identity and
// title fields. Documents failing this are dropped before indexing.
func (d JobDocument) Valid(v Variant) bool {
	return d.ID(v) != "" && d.Title(v) != ""
}
