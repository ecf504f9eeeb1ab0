package mapper_test

import (
	"testing"
	"time"

	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeMonth(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"2025-3", "2025-03"},
		{"2025-03", "2025-03"},
		{"2025-12", "2025-12"},
		{"2025-03-14", "2025-03"},
		{" 2024-1 ", "2024-01"},
		{"2025-13", ""},
		{"2025", ""},
		{"march", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapper.NormalizeMonth(tt.input))
		})
	}
}

func TestTrailingMonths(t *testing.T) {
	now := time.Date(2025, time.March, 31, 15, 0, 0, 0, time.UTC)

	months := mapper.TrailingMonths(now, 12)
	require.Len(t, months, 12)
	assert.Equal(t, "2024-04", months[0])
	assert.Equal(t, "2024-12", months[8])
	assert.Equal(t, "2025-01", months[9])
	assert.Equal(t, "2025-03", months[11])
}

func TestMonthOfDate(t *testing.T) {
	assert.Equal(t, "2025-06", mapper.MonthOfDate("2025-06-30"))
	assert.Equal(t, "2025-06", mapper.MonthOfDate("2025-6"))
}

func TestParseMonth(t *testing.T) {
	year, month, err := mapper.ParseMonth("2025-7")
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, 7, month)

	_, _, err = mapper.ParseMonth("July")
	assert.Error(t, err)
}
