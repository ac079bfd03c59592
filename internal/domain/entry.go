package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryType classifies an entry and governs how its amount sign is
// normalized when the entry is recorded.
type CategoryType string

const (
	// CategoryTypeExpense entries are stored with a negative amount.
	CategoryTypeExpense CategoryType = "EXPENSE"
	// CategoryTypeIncome entries are stored with a positive amount.
	CategoryTypeIncome CategoryType = "INCOME"
	// CategoryTypeTransfer entries keep the caller-provided sign.
	CategoryTypeTransfer CategoryType = "TRANSFER"
	// CategoryTypeNone keeps the caller-provided sign, like TRANSFER.
	CategoryTypeNone CategoryType = ""
)

// ParseCategoryType validates a category type string.
func ParseCategoryType(s string) (CategoryType, error) {
	switch ct := CategoryType(s); ct {
	case CategoryTypeExpense, CategoryTypeIncome, CategoryTypeTransfer, CategoryTypeNone:
		return ct, nil
	default:
		return CategoryTypeNone, fmt.Errorf("%w: %q", ErrInvalidCategoryType, s)
	}
}

// signedAmount applies the sign convention for this category type.
// EXPENSE stores -abs(amount), INCOME stores abs(amount), TRANSFER and
// unset store the amount exactly as provided.
func (ct CategoryType) signedAmount(amount decimal.Decimal) decimal.Decimal {
	switch ct {
	case CategoryTypeExpense:
		return amount.Abs().Neg()
	case CategoryTypeIncome:
		return amount.Abs()
	default:
		return amount
	}
}

// Entry is a single signed monetary movement against one account.
// Entries are immutable once created; they are constructed only by
// Account.RecordEntry and the transfer protocol, which apply sign
// normalization before construction. Identity and equality are by ID.
type Entry struct {
	ID           string
	AccountID    string
	Amount       decimal.Decimal
	Date         time.Time
	Category     string
	CategoryType CategoryType
	CreatedAt    time.Time
}

func newEntry(id, accountID string, amount decimal.Decimal, date time.Time, category string, categoryType CategoryType) *Entry {
	return &Entry{
		ID:           id,
		AccountID:    accountID,
		Amount:       amount,
		Date:         date,
		Category:     category,
		CategoryType: categoryType,
		CreatedAt:    time.Now().UTC(),
	}
}

// SortEntries orders entries by date ascending. Entries with equal
// dates keep their insertion order.
func SortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
}
