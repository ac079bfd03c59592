package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budget/internal/domain"
	"github.com/iho/budget/internal/infrastructure/metrics"
)

// TransferUseCase handles transfer business logic.
type TransferUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	retrier     Retrier
	metrics     *metrics.Metrics
}

// NewTransferUseCase creates a new TransferUseCase. metrics may be nil.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	retrier Retrier,
	m *metrics.Metrics,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		retrier:     retrier,
		metrics:     m,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	FromAccountID string
	ToAccountID   string
	Date          time.Time
	DebitAmount   decimal.Decimal
	CreditAmount  decimal.Decimal
}

// TransferResult holds the two entries created by a transfer.
type TransferResult struct {
	DebitEntry  *domain.Entry
	CreditEntry *domain.Entry
}

// CreateTransfer moves funds between two accounts. Both legs are
// written inside one database transaction with both account rows
// locked in sorted-ID order, so a failure on either leg rolls the
// whole transfer back and concurrent opposite-direction transfers
// cannot deadlock. Transient deadlock or serialization failures are
// retried.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	// Validate inputs before touching storage.
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	if !input.DebitAmount.IsPositive() {
		return nil, fmt.Errorf("%w: debit amount %s", domain.ErrInvalidTransferAmount, input.DebitAmount)
	}

	if !input.CreditAmount.IsPositive() {
		return nil, fmt.Errorf("%w: credit amount %s", domain.ErrInvalidTransferAmount, input.CreditAmount)
	}

	start := time.Now()

	var result *TransferResult

	err := uc.retrier.Retry(ctx, func() error {
		var err error
		result, err = uc.executeTransfer(ctx, input)
		return err
	})
	if err != nil {
		if uc.metrics != nil && errors.Is(err, domain.ErrInsufficientFunds) {
			uc.metrics.InsufficientFunds.Inc()
		}

		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransfersCreated.Inc()
		uc.metrics.TransferDuration.Observe(time.Since(start).Seconds())
	}

	return result, nil
}

func (uc *TransferUseCase) executeTransfer(ctx context.Context, input CreateTransferInput) (*TransferResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	accountIDs := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}

	if len(accounts) != len(accountIDs) {
		return nil, domain.ErrAccountNotFound
	}

	var src, dst *domain.Account
	for _, a := range accounts {
		switch a.ID {
		case input.FromAccountID:
			src = a
		case input.ToAccountID:
			dst = a
		}
	}

	if src == nil || dst == nil {
		return nil, domain.ErrAccountNotFound
	}

	debit, credit, err := domain.Transfer(src, dst, input.Date, input.DebitAmount, input.CreditAmount)
	if err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, debit); err != nil {
		return nil, err
	}

	if err := uc.entryRepo.Create(ctx, tx, credit); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{DebitEntry: debit, CreditEntry: credit}, nil
}
