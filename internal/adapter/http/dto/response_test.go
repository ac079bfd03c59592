package dto

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budget/internal/domain"
)

func TestAccountFromDomain(t *testing.T) {
	account, err := domain.NewAccount("acc-1", "Groceries", "EUR", decimal.RequireFromString("100.50"))
	if err != nil {
		t.Fatalf("failed to build account: %v", err)
	}

	if _, err := account.RecordEntry(decimal.NewFromInt(10), time.Now(), "food", domain.CategoryTypeExpense); err != nil {
		t.Fatalf("failed to record entry: %v", err)
	}

	resp := AccountFromDomain(account)

	if resp.ID != "acc-1" || resp.Name != "Groceries" || resp.Currency != "EUR" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	if !resp.Balance.Equal(decimal.RequireFromString("90.50")) {
		t.Fatalf("expected balance 90.50, got %s", resp.Balance)
	}
}

func TestAccountResponseMarshalsExactAmounts(t *testing.T) {
	account, err := domain.NewAccount("acc-1", "Savings", "USD", decimal.RequireFromString("0.1"))
	if err != nil {
		t.Fatalf("failed to build account: %v", err)
	}

	if _, err := account.RecordEntry(decimal.RequireFromString("0.2"), time.Now(), "salary", domain.CategoryTypeIncome); err != nil {
		t.Fatalf("failed to record entry: %v", err)
	}

	body, err := json.Marshal(AccountFromDomain(account))
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	// Decimal amounts serialize exactly, with no float drift.
	if !strings.Contains(string(body), `"balance":"0.3"`) {
		t.Fatalf("expected exact balance 0.3 in JSON, got %s", body)
	}
}

func TestEntryFromDomainKeepsStoredSign(t *testing.T) {
	entry := &domain.Entry{
		ID:           "ent-1",
		AccountID:    "acc-1",
		Amount:       decimal.NewFromInt(-25),
		Date:         time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		Category:     "rent",
		CategoryType: domain.CategoryTypeExpense,
	}

	resp := EntryFromDomain(entry)

	if !resp.Amount.Equal(decimal.NewFromInt(-25)) {
		t.Fatalf("expected amount -25, got %s", resp.Amount)
	}

	if resp.CategoryType != "EXPENSE" {
		t.Fatalf("expected category type EXPENSE, got %s", resp.CategoryType)
	}
}
