package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidAccountName = errors.New("invalid account name")
	ErrInvalidCurrency    = errors.New("invalid currency code")
	ErrInvalidAmount      = errors.New("invalid amount")
)

// Validation constants
const (
	MinAccountNameLength = 3
	MaxAccountNameLength = 100
)

// Account names are 3-100 characters, start with an alphanumeric
// character and may contain alphanumerics, spaces, hyphens and
// underscores after that.
var accountNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9 _-]*$`)

// Valid currency codes (ISO 4217)
var validCurrencies = map[string]bool{
	"USD": true, "EUR": true, "GBP": true, "JPY": true,
	"CNY": true, "AUD": true, "CAD": true, "CHF": true,
	"SEK": true, "NZD": true, "KRW": true, "SGD": true,
	"NOK": true, "MXN": true, "INR": true, "BRL": true,
	"ZAR": true, "RUB": true, "TRY": true, "HKD": true,
}

// ValidateAccountName validates an account name at the input boundary.
func ValidateAccountName(name string) error {
	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: %q is shorter than %d characters", ErrInvalidAccountName, name, MinAccountNameLength)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: %q exceeds %d characters", ErrInvalidAccountName, name, MaxAccountNameLength)
	}

	if !accountNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q must start with an alphanumeric character and contain only alphanumerics, spaces, hyphens and underscores", ErrInvalidAccountName, name)
	}

	return nil
}

// ValidateCurrency validates a currency code at the input boundary.
// The domain core treats the currency as an opaque string; ISO 4217
// membership is checked here, before a request reaches the core.
func ValidateCurrency(currency string) error {
	currency = strings.ToUpper(strings.TrimSpace(currency))

	if !validCurrencies[currency] {
		return fmt.Errorf("%w: %s is not a valid ISO 4217 currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ParseAmount parses a decimal amount from its textual form. This is
// the only conversion path into the domain's money representation;
// binary floats never enter the domain layer.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q is not an exact decimal", ErrInvalidAmount, s)
	}

	return d, nil
}
