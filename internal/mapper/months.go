package mapper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage format of document and transaction dates
const DateLayout = "2006-01-02"

// NormalizeMonth returns s as zero-padded YYYY-MM. It accepts "2025-3",
// "2025-03" and full dates such as "2025-03-14". Unparseable input yields "".
func NormalizeMonth(s string) string {
	parts := strings.Split(strings.TrimSpace(s), "-")
	if len(parts) < 2 {
		return ""
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year < 1 || year > 9999 {
		return ""
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%04d-%02d", year, month)
}

// MonthKey formats t as YYYY-MM
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// MonthOfDate derives the stored month of a YYYY-MM-DD date
func MonthOfDate(date string) string {
	if len(date) < 7 {
		return NormalizeMonth(date)
	}
	return date[:7]
}

// TrailingMonths returns the n calendar months ending with now's month,
// oldest first
func TrailingMonths(now time.Time, n int) []string {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months := make([]string, n)
	for i := 0; i < n; i++ {
		months[i] = MonthKey(first.AddDate(0, -(n - 1 - i), 0))
	}
	return months
}

// ParseMonth splits a YYYY-MM (or loosely formatted) month into year and month
func ParseMonth(s string) (int, int, error) {
	norm := NormalizeMonth(s)
	if norm == "" {
		return 0, 0, fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	year, _ := strconv.Atoi(norm[:4])
	month, _ := strconv.Atoi(norm[5:])
	return year, month, nil
}
