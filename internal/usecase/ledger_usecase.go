package usecase

import (
	"context"
	"errors"
)

var (
	// ErrInconsistentLedger is returned when an account holds a negative balance.
	ErrInconsistentLedger = errors.New("ledger is inconsistent: negative account balance found")
)

// LedgerUseCase handles ledger-wide operations.
type LedgerUseCase struct {
	ledgerRepo LedgerRepository
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(ledgerRepo LedgerRepository) *LedgerUseCase {
	return &LedgerUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// CheckConsistency verifies the non-negativity invariant across the
// whole ledger: no account's starting balance plus entry sum may be
// negative. Every write path enforces this per account, so a hit here
// means writes bypassed the domain layer.
func (uc *LedgerUseCase) CheckConsistency(ctx context.Context) (bool, error) {
	negative, err := uc.ledgerRepo.CountNegativeBalances(ctx)
	if err != nil {
		return false, err
	}

	if negative > 0 {
		return false, ErrInconsistentLedger
	}

	return true, nil
}
