package shared

import (
	"errors"
	"testing"
)

func TestNormalizeMonthsSortsAndDeduplicates(t *testing.T) {
	months, err := NormalizeMonths([]int{3, 1, 3, 2})
	if err != nil {
		t.Fatalf("NormalizeMonths() error = %v", err)
	}
	want := []int{1, 2, 3}
	if len(months) != len(want) {
		t.Fatalf("expected %v got %v", want, months)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Fatalf("expected %v got %v", want, months)
		}
	}
}

func TestNormalizeMonthsRejectsOutOfRange(t *testing.T) {
	if _, err := NormalizeMonths([]int{0}); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth got %v", err)
	}
	if _, err := NormalizeMonths([]int{13}); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth got %v", err)
	}
	if _, err := NormalizeMonths(nil); !errors.Is(err, ErrEmptyMonths) {
		t.Fatalf("expected ErrEmptyMonths got %v", err)
	}
}

func TestParseMonthList(t *testing.T) {
	months, err := ParseMonthList(" 2, 1 ,2")
	if err != nil {
		t.Fatalf("ParseMonthList() error = %v", err)
	}
	if len(months) != 2 || months[0] != 1 || months[1] != 2 {
		t.Fatalf("expected [1 2] got %v", months)
	}
	if _, err := ParseMonthList("1,x"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth got %v", err)
	}
	if _, err := ParseMonthList(""); !errors.Is(err, ErrEmptyMonths) {
		t.Fatalf("expected ErrEmptyMonths got %v", err)
	}
}

func TestValidateYear(t *testing.T) {
	if err := ValidateYear(2025); err != nil {
		t.Fatalf("ValidateYear(2025) error = %v", err)
	}
	if err := ValidateYear(1850); !errors.Is(err, ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear got %v", err)
	}
}
