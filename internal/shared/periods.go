package shared

import (
	"errors"
	"sort"
	"strconv"
	"strings"
)

// Month bounds for any fiscal period.
const (
	MinMonth = 1
	MaxMonth = 12
)

// Year bounds accepted by report queries.
const (
	MinYear = 2000
	MaxYear = 2100
)

var (
	// ErrInvalidYear indicates a year outside the accepted range.
	ErrInvalidYear = errors.New("year out of range")
	// ErrInvalidMonth indicates a month outside 1-12.
	ErrInvalidMonth = errors.New("month out of range")
	// ErrEmptyMonths indicates a query without any month selected.
	ErrEmptyMonths = errors.New("no months selected")
)

// ValidateYear checks the year lies in the supported range.
func ValidateYear(year int) error {
	if year < MinYear || year > MaxYear {
		return ErrInvalidYear
	}
	return nil
}

// NormalizeMonths validates, deduplicates and sorts a month selection.
func NormalizeMonths(months []int) ([]int, error) {
	if len(months) == 0 {
		return nil, ErrEmptyMonths
	}
	seen := make(map[int]struct{}, len(months))
	out := make([]int, 0, len(months))
	for _, m := range months {
		if m < MinMonth || m > MaxMonth {
			return nil, ErrInvalidMonth
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Ints(out)
	return out, nil
}

// ParseMonthList parses a comma separated month list such as "1,2,3".
func ParseMonthList(raw string) ([]int, error) {
	parts := strings.Split(raw, ",")
	months := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		m, err := strconv.Atoi(part)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		months = append(months, m)
	}
	return NormalizeMonths(months)
}
