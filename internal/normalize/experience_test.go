package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExperienceRangePhrase(t *testing.T) {
	exp := ParseExperience("2 - 5 năm kinh nghiệm")
	assert.Equal(t, []string{BandE, BandF}, exp.Tags)
	assert.Equal(t, 2, exp.Min)
	assert.Equal(t, 5, exp.Max)
}

func TestParseExperienceMissing(t *testing.T) {
	exp := ParseExperience("")
	assert.Equal(t, AllBands, exp.Tags)
	assert.Equal(t, 0, exp.Min)
	assert.Equal(t, 99, exp.Max)
}

func TestParseExperienceSingleNumber(t *testing.T) {
	exp := ParseExperience("3 năm")
	assert.Equal(t, []string{BandE, BandF}, exp.Tags)
	assert.Equal(t, 3, exp.Min)
	assert.Equal(t, 99, exp.Max)
}

func TestParseExperienceNoRequirement(t *testing.T) {
	exp := ParseExperience("Không yêu cầu")
	assert.Equal(t, AllBands, exp.Tags)
	assert.Equal(t, 0, exp.Min)
	assert.Equal(t, 99, exp.Max)
}

// Unknown phrases fail open: treated as no constraint, never as no match.
func TestParseExperienceUnknownPhraseFailsOpen(t *testing.T) {
	exp := ParseExperience("Kinh nghiệm lập trình nhúng")
	assert.Equal(t, AllBands, exp.Tags)
}

// Phrases with dissimilar text map to identical tag sets.
func TestParseExperienceEquivalentPhrases(t *testing.T) {
	a := ParseExperience("0 - 1 năm kinh nghiệm")
	b := ParseExperience("Dưới 1 năm")
	assert.Equal(t, a.Tags, b.Tags)
}

// Every phrase in the table yields a non-empty tag set, and the tag set
// shrinks monotonically as the required experience increases.
func TestExperienceTagsMonotonic(t *testing.T) {
	bandIndex := map[string]int{BandA: 0, BandB: 1, BandC: 2, BandD: 3, BandE: 4, BandF: 5}

	for _, phrase := range KnownPhrases() {
		exp := ParseExperience(phrase)
		require.NotEmpty(t, exp.Tags, "phrase %q has empty tag set", phrase)

		// Tag sets are always a contiguous suffix of the band order: once a
		// band qualifies, every higher band does too.
		first := bandIndex[exp.Tags[0]]
		for i, tag := range exp.Tags {
			assert.Equal(t, first+i, bandIndex[tag], "phrase %q tags not a band suffix", phrase)
		}
		assert.Equal(t, BandF, exp.Tags[len(exp.Tags)-1], "phrase %q must include the top band", phrase)

		// More required experience never widens the tag set.
		assert.LessOrEqual(t, len(exp.Tags), 6-bandIndex[exp.Tags[0]])
	}
}
