package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transfer moves funds between two accounts as a matched debit/credit
// pair of TRANSFER entries sharing the same date. The debit and credit
// magnitudes are specified independently so the two accounts may hold
// different currencies; no conversion is performed here, the caller
// supplies both legs already converted.
//
// Both amounts must be strictly positive. The debit leg is recorded
// first: if the source account lacks funds nothing is mutated and the
// failure propagates. Both accounts are locked in ID order so two
// concurrent transfers going in opposite directions cannot deadlock.
//
// The two legs are independent aggregate mutations; making them
// atomic across a failure between the legs is the job of the
// surrounding persistence transaction (see usecase.TransferUseCase).
func Transfer(src, dst *Account, date time.Time, debitAmt, creditAmt decimal.Decimal) (debit, credit *Entry, err error) {
	if src.ID == dst.ID {
		return nil, nil, ErrSameAccount
	}

	if !debitAmt.IsPositive() {
		return nil, nil, fmt.Errorf("%w: debit amount %s", ErrInvalidTransferAmount, debitAmt)
	}

	if !creditAmt.IsPositive() {
		return nil, nil, fmt.Errorf("%w: credit amount %s", ErrInvalidTransferAmount, creditAmt)
	}

	first, second := src, dst
	if second.ID < first.ID {
		first, second = second, first
	}

	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	debit, err = src.recordEntryLocked(debitAmt.Neg(), date, "TRANSFER", CategoryTypeTransfer)
	if err != nil {
		return nil, nil, err
	}

	credit, err = dst.recordEntryLocked(creditAmt, date, "TRANSFER", CategoryTypeTransfer)
	if err != nil {
		return nil, nil, err
	}

	return debit, credit, nil
}
