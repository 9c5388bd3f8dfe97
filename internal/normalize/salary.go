package normalize

import (
	"regexp"
	"strconv"
)

// SalaryRange is the numeric form of a free-text salary. Values stay in the
// unit of the source dataset (legacy: "triệu" counts, crawler: absolute VND).
type SalaryRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// SalaryUncapped marks an open-ended upper bound ("Trên 30 triệu",
// negotiable, or unparsed text).
const SalaryUncapped = 999

// Negotiable is the literal marker used by both datasets for jobs without a
// stated salary.
const Negotiable = "Thỏa thuận"

var (
	salaryRangePattern = regexp.MustCompile(`(\d+)\s*-\s*(\d+)`)
	salaryAbovePattern = regexp.MustCompile(`[Tt]rên\s*(\d+)`)
	salaryBelowPattern = regexp.MustCompile(`[Dd]ưới\s*(\d+)`)
)

// ParseSalary turns a raw salary string into a numeric range. It never
// fails: anything unparsed comes back as the wide-open {0, SalaryUncapped}.
func ParseSalary(text string) SalaryRange {
	if text == "" || text == Negotiable {
		return SalaryRange{Min: 0, Max: SalaryUncapped}
	}

	if m := salaryRangePattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		return SalaryRange{Min: lo, Max: hi}
	}

	if m := salaryAbovePattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.Atoi(m[1])
		return SalaryRange{Min: lo, Max: SalaryUncapped}
	}

	if m := salaryBelowPattern.FindStringSubmatch(text); m != nil {
		hi, _ := strconv.Atoi(m[1])
		return SalaryRange{Min: 0, Max: hi}
	}

	return SalaryRange{Min: 0, Max: SalaryUncapped}
}
