package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budget/internal/domain"
	"github.com/iho/budget/internal/infrastructure/metrics"
)

// EntryUseCase handles entry business logic.
type EntryUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	metrics     *metrics.Metrics
}

// NewEntryUseCase creates a new EntryUseCase. metrics may be nil.
func NewEntryUseCase(txManager TransactionManager, accountRepo AccountRepository, entryRepo EntryRepository, m *metrics.Metrics) *EntryUseCase {
	return &EntryUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		metrics:     m,
	}
}

// RecordEntryInput represents input for recording an entry.
type RecordEntryInput struct {
	AccountID    string
	Amount       decimal.Decimal
	Date         time.Time
	Category     string
	CategoryType domain.CategoryType
}

// RecordEntry records a movement on an account. The account row is
// locked for the duration of the transaction so the insufficient-funds
// check cannot race with concurrent writers; a domain rejection rolls
// the transaction back and leaves no partial state.
func (uc *EntryUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*domain.Entry, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	entry, err := account.RecordEntry(input.Amount, input.Date, input.Category, input.CategoryType)
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrInsufficientFunds) {
			uc.metrics.InsufficientFunds.Inc()
		}

		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesRecorded.WithLabelValues(string(entry.CategoryType)).Inc()
		amount, _ := entry.Amount.Abs().Float64()
		uc.metrics.EntryAmount.Observe(amount)
	}

	return entry, nil
}

// GetEntriesByAccountInput represents input for listing entries.
type GetEntriesByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// GetEntriesByAccount lists entries for an account, ordered by entry
// date ascending.
func (uc *EntryUseCase) GetEntriesByAccount(ctx context.Context, input GetEntriesByAccountInput) ([]*domain.Entry, error) {
	if input.Limit <= 0 {
		input.Limit = 20
	}

	if input.Limit > 100 {
		input.Limit = 100
	}

	if input.Offset < 0 {
		input.Offset = 0
	}

	if _, err := uc.accountRepo.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	entries, err := uc.entryRepo.GetByAccount(ctx, input.AccountID, input.Limit, input.Offset)
	if err != nil {
		return nil, err
	}

	domain.SortEntries(entries)

	return entries, nil
}
