package normalize

import (
	"testing"

	"vietjobs-search/pkg/models"

	"github.com/stretchr/testify/assert"
)

func TestProcessLegacyDocument(t *testing.T) {
	doc := models.JobDocument{
		"Id tin":      "12345",
		"Tiêu đề tin": "Nhân viên kinh doanh",
		"Mức lương":   "10 - 15 triệu",
		"Kinh nghiệm": "1 - 2 năm kinh nghiệm",
	}

	got := Process(doc, models.VariantLegacy)

	assert.Equal(t, 10, got["salary_min"])
	assert.Equal(t, 15, got["salary_max"])
	assert.Equal(t, 1, got["experience_min"])
	assert.Equal(t, 2, got["experience_max"])
	assert.Equal(t, []string{BandC, BandD, BandE, BandF}, got["experience_tags"])

	// Input is not mutated.
	_, mutated := doc["salary_min"]
	assert.False(t, mutated)
}

func TestProcessKeepsExistingComputedFields(t *testing.T) {
	doc := models.JobDocument{
		"id":         "c-1",
		"title":      "Backend Engineer",
		"salary":     "Thỏa thuận",
		"salary_min": 10000000,
		"salary_max": 20000000,
	}

	got := Process(doc, models.VariantCrawler)

	assert.Equal(t, 10000000, got["salary_min"])
	assert.Equal(t, 20000000, got["salary_max"])
}

func TestProcessAll(t *testing.T) {
	docs := []models.JobDocument{
		{"Id tin": "1", "Tiêu đề tin": "A", "Mức lương": "Trên 30"},
		{"Id tin": "2", "Tiêu đề tin": "B"},
	}

	got := ProcessAll(docs, models.VariantLegacy)

	assert.Len(t, got, 2)
	assert.Equal(t, 30, got[0]["salary_min"])
	assert.Equal(t, 999, got[0]["salary_max"])
	assert.Equal(t, 0, got[1]["salary_min"])
	assert.Equal(t, AllBands, got[1]["experience_tags"])
}
