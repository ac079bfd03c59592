package domain

import (
	"fmt"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
)

// NewID returns a new ULID string.
func NewID() string {
	return ulid.Make().String()
}

// Account is the ledger aggregate. It owns its entries and derives its
// balance from the starting balance plus the sum of entry amounts. All
// mutations go through RecordEntry, which guarantees the balance never
// goes negative.
//
// An account carries its own lock: RecordEntry takes the write lock,
// Balance and Entries take the read lock, so readers always see a
// consistent snapshot. Cross-account operations must lock both
// accounts in ID order (see Transfer).
type Account struct {
	ID              string
	Name            string
	Currency        string
	StartingBalance decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time

	mu      sync.RWMutex
	entries []*Entry
}

// NewAccount creates an account with a non-negative starting balance.
// An empty id is replaced with a generated ULID.
func NewAccount(id, name, currency string, startingBalance decimal.Decimal) (*Account, error) {
	if startingBalance.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInitialBalance, startingBalance)
	}

	if id == "" {
		id = NewID()
	}

	now := time.Now().UTC()

	return &Account{
		ID:              id,
		Name:            name,
		Currency:        currency,
		StartingBalance: startingBalance,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Balance returns the current balance: starting balance plus the sum
// of all entry amounts. The arithmetic is exact decimal arithmetic.
func (a *Account) Balance() decimal.Decimal {
	a.mu.RLock()
	defer a.mu.RUnlock()

	return a.balanceLocked()
}

func (a *Account) balanceLocked() decimal.Decimal {
	balance := a.StartingBalance
	for _, e := range a.entries {
		balance = balance.Add(e.Amount)
	}

	return balance
}

// Entries returns a copy of the account's entries ordered by date
// ascending. Entries with equal dates keep insertion order.
func (a *Account) Entries() []*Entry {
	a.mu.RLock()
	defer a.mu.RUnlock()

	entries := make([]*Entry, len(a.entries))
	copy(entries, a.entries)
	SortEntries(entries)

	return entries
}

// RecordEntry records a movement against the account.
//
// The stored amount follows the category-type sign convention: EXPENSE
// stores -abs(amount), INCOME stores abs(amount), TRANSFER or unset
// stores the amount exactly as provided, the caller being responsible
// for its sign. If the resulting balance would be negative the call
// fails with ErrInsufficientFunds and no entry is appended.
func (a *Account) RecordEntry(amount decimal.Decimal, date time.Time, category string, categoryType CategoryType) (*Entry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.recordEntryLocked(amount, date, category, categoryType)
}

func (a *Account) recordEntryLocked(amount decimal.Decimal, date time.Time, category string, categoryType CategoryType) (*Entry, error) {
	effective := categoryType.signedAmount(amount)

	balance := a.balanceLocked()

	newBalance := balance.Add(effective)
	if newBalance.IsNegative() {
		return nil, fmt.Errorf(
			"%w: account %q has balance %s %s, entry of %s would leave %s",
			ErrInsufficientFunds, a.Name, balance, a.Currency, effective, newBalance,
		)
	}

	entry := newEntry(NewID(), a.ID, effective, date, category, categoryType)
	a.entries = append(a.entries, entry)
	a.UpdatedAt = time.Now().UTC()

	return entry, nil
}

// RestoreEntries replaces the entry collection with entries loaded
// from storage. Used by repositories when rehydrating an aggregate,
// never by domain callers.
func (a *Account) RestoreEntries(entries []*Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = entries
}
