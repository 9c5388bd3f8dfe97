package normalize

import (
	"regexp"
	"strconv"
)

// Experience bands, ordered by seniority. A job's tag set is the set of
// candidate bands eligible to apply, so a candidate's own band answers
// "jobs I qualify for" with a single exact-term match against
// experience_tags instead of a numeric range query.
const (
	BandA = "A" // no experience
	BandB = "B" // under 1 year
	BandC = "C" // 1-2 years
	BandD = "D" // 2-3 years
	BandE = "E" // 3-5 years
	BandF = "F" // 5+ years
)

// AllBands is the full tag set, meaning "no experience constraint".
var AllBands = []string{BandA, BandB, BandC, BandD, BandE, BandF}

// experienceTags maps the exact requirement phrases found in the datasets to
// the eligible band set. Keys are matched verbatim (case and punctuation
// sensitive); phrases with dissimilar text can map identically ("0 - 1 năm
// kinh nghiệm" and "Dưới 1 năm"), so there is no numeric fallback that could
// regenerate this table. Unknown phrases fail open to AllBands: an
// unrecognized requirement is treated as no constraint, not as no match.
var experienceTags = map[string][]string{
	"Không yêu cầu":           {BandA, BandB, BandC, BandD, BandE, BandF},
	"Chưa có kinh nghiệm":     {BandA, BandB, BandC, BandD, BandE, BandF},
	"0 - 1 năm kinh nghiệm":   {BandB, BandC, BandD, BandE, BandF},
	"Dưới 1 năm":              {BandB, BandC, BandD, BandE, BandF},
	"1 năm":                   {BandC, BandD, BandE, BandF},
	"1 - 2 năm kinh nghiệm":   {BandC, BandD, BandE, BandF},
	"2 năm":                   {BandD, BandE, BandF},
	"2 - 3 năm kinh nghiệm":   {BandD, BandE, BandF},
	"3 năm":                   {BandE, BandF},
	"3 - 5 năm kinh nghiệm":   {BandE, BandF},
	"2 - 5 năm kinh nghiệm":   {BandE, BandF},
	"5 năm":                   {BandE, BandF},
	"5 - 10 năm kinh nghiệm":  {BandF},
	"Hơn 5 năm":               {BandF},
	"Trên 5 năm":              {BandF},
	"Hơn 10 năm kinh nghiệm":  {BandF},
	"Trên 10 năm kinh nghiệm": {BandF},
}

// ExperienceMaxYears is the open upper bound for unbounded requirements.
const ExperienceMaxYears = 99

// Experience is the normalized form of a requirement phrase.
type Experience struct {
	Tags []string `json:"tags"`
	Min  int      `json:"min"`
	Max  int      `json:"max"`
}

var (
	expRangePattern  = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	expSinglePattern = regexp.MustCompile(`(\d+)`)
)

// ParseExperience turns a raw requirement phrase into eligibility tags and a
// numeric year range. Always succeeds; missing or unknown input yields the
// unconstrained result.
func ParseExperience(text string) Experience {
	if text == "" {
		return Experience{Tags: AllBands, Min: 0, Max: ExperienceMaxYears}
	}

	tags, ok := experienceTags[text]
	if !ok {
		tags = AllBands
	}

	if m := expRangePattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		return Experience{Tags: tags, Min: lo, Max: hi}
	}

	if m := expSinglePattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return Experience{Tags: tags, Min: lo, Max: ExperienceMaxYears}
	}

	return Experience{Tags: tags, Min: 0, Max: ExperienceMaxYears}
}

// KnownPhrases returns the phrases covered by the mapping table.
func KnownPhrases() []string {
	phrases := make([]string, 0, len(experienceTags))
	for p := range experienceTags {
		phrases = append(phrases, p)
	}
	return phrases
}
