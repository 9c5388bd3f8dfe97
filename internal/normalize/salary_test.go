package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSalaryRange(t *testing.T) {
	assert.Equal(t, SalaryRange{Min: 10, Max: 15}, ParseSalary("10 - 15 triệu"))
	assert.Equal(t, SalaryRange{Min: 7, Max: 10}, ParseSalary("7-10 triệu"))
}

func TestParseSalaryNegotiable(t *testing.T) {
	assert.Equal(t, SalaryRange{Min: 0, Max: 999}, ParseSalary("Thỏa thuận"))
}

func TestParseSalaryMissing(t *testing.T) {
	assert.Equal(t, SalaryRange{Min: 0, Max: 999}, ParseSalary(""))
}

func TestParseSalaryAbove(t *testing.T) {
	assert.Equal(t, SalaryRange{Min: 30, Max: 999}, ParseSalary("Trên 30"))
	assert.Equal(t, SalaryRange{Min: 50, Max: 999}, ParseSalary("trên 50 triệu"))
}

func TestParseSalaryBelow(t *testing.T) {
	assert.Equal(t, SalaryRange{Min: 0, Max: 7}, ParseSalary("Dưới 7 triệu"))
}

func TestParseSalaryUnparsed(t *testing.T) {
	assert.Equal(t, SalaryRange{Min: 0, Max: 999}, ParseSalary("Cạnh tranh"))
}
