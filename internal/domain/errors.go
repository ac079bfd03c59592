package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound       = errors.New("account not found")
	ErrInvalidInitialBalance = errors.New("initial balance cannot be negative")
	ErrDuplicateAccountName  = errors.New("account name already exists")
	ErrInsufficientFunds     = errors.New("insufficient funds")

	// Entry errors
	ErrInvalidCategoryType = errors.New("invalid category type")

	// Transfer errors
	ErrSameAccount           = errors.New("cannot transfer to same account")
	ErrInvalidTransferAmount = errors.New("transfer amount must be positive")
)
