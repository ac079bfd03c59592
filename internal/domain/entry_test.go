package domain

import (
	"errors"
	"testing"
)

func TestParseCategoryType(t *testing.T) {
	tests := []struct {
		input       string
		want        CategoryType
		expectError bool
	}{
		{"EXPENSE", CategoryTypeExpense, false},
		{"INCOME", CategoryTypeIncome, false},
		{"TRANSFER", CategoryTypeTransfer, false},
		{"", CategoryTypeNone, false},
		{"expense", CategoryTypeNone, true},
		{"DEPOSIT", CategoryTypeNone, true},
	}

	for _, tt := range tests {
		t.Run("input "+tt.input, func(t *testing.T) {
			got, err := ParseCategoryType(tt.input)

			if tt.expectError {
				if !errors.Is(err, ErrInvalidCategoryType) {
					t.Fatalf("expected ErrInvalidCategoryType, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestSortEntries(t *testing.T) {
	entries := []*Entry{
		{ID: "e1", Date: date("2025-01-02")},
		{ID: "e2", Date: date("2025-01-01")},
		{ID: "e3", Date: date("2025-01-03")},
	}

	SortEntries(entries)

	want := []string{"e2", "e1", "e3"}
	for i, w := range want {
		if entries[i].ID != w {
			t.Errorf("position %d: expected %s, got %s", i, w, entries[i].ID)
		}
	}
}
