package dto

import (
	"fmt"
	"time"

	"github.com/iho/budget/internal/domain"
	"github.com/iho/budget/internal/usecase"
)

// Amounts cross the API boundary as decimal strings. They are parsed
// through domain.ParseAmount so binary floats never reach the core.

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name            string `json:"name"`
	Currency        string `json:"currency"`
	StartingBalance string `json:"starting_balance"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	balance, err := domain.ParseAmount(r.StartingBalance)
	if err != nil {
		return usecase.CreateAccountInput{}, err
	}

	return usecase.CreateAccountInput{
		Name:            r.Name,
		Currency:        r.Currency,
		StartingBalance: balance,
	}, nil
}

// RecordEntryRequest represents a request to record an entry on an
// account.
type RecordEntryRequest struct {
	Amount       string `json:"amount"`
	Date         string `json:"date"`
	Category     string `json:"category"`
	CategoryType string `json:"category_type,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput(accountID string) (usecase.RecordEntryInput, error) {
	amount, err := domain.ParseAmount(r.Amount)
	if err != nil {
		return usecase.RecordEntryInput{}, err
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.RecordEntryInput{}, err
	}

	categoryType, err := domain.ParseCategoryType(r.CategoryType)
	if err != nil {
		return usecase.RecordEntryInput{}, err
	}

	return usecase.RecordEntryInput{
		AccountID:    accountID,
		Amount:       amount,
		Date:         date,
		Category:     r.Category,
		CategoryType: categoryType,
	}, nil
}

// CreateTransferRequest represents a request to create a transfer.
// DebitAmount is taken from the source account and CreditAmount is
// added to the destination account; they may differ for cross-currency
// transfers.
type CreateTransferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Date          string `json:"date"`
	DebitAmount   string `json:"debit_amount"`
	CreditAmount  string `json:"credit_amount"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() (usecase.CreateTransferInput, error) {
	debit, err := domain.ParseAmount(r.DebitAmount)
	if err != nil {
		return usecase.CreateTransferInput{}, err
	}

	credit, err := domain.ParseAmount(r.CreditAmount)
	if err != nil {
		return usecase.CreateTransferInput{}, err
	}

	date, err := parseDate(r.Date)
	if err != nil {
		return usecase.CreateTransferInput{}, err
	}

	return usecase.CreateTransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Date:          date,
		DebitAmount:   debit,
		CreditAmount:  credit,
	}, nil
}

// parseDate accepts RFC3339 timestamps or plain dates. An empty value
// means "now".
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now().UTC(), nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use RFC3339 or YYYY-MM-DD", s)
	}

	return t, nil
}
