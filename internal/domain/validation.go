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
	ErrAmountTooLarge     = errors.New("amount exceeds maximum allowed")
	ErrAmountTooSmall     = errors.New("amount below minimum allowed")
	ErrNegativeBalance    = errors.New("initial balance cannot be negative")
)

// Validation constants
const (
	MaxAccountNameLength = 255
	MinAccountNameLength = 1
	MaxTransferAmount    = "1000000000000" // 1 trillion
	MinTransferAmount    = "0.01"
)

// Storage precision of pricing values. Finer values are rejected rather than
// rounded so every backend prices a transfer the same way.
const (
	RateScale          = 10
	MaxRateIntegerPart = 14
	FeeScale           = 6
)

var maxRate = decimal.New(1, MaxRateIntegerPart)

// Currency codes are any three letters; no allow-list is enforced.
var currencyRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// NormalizeCurrency trims and upper-cases a currency code.
func NormalizeCurrency(currency string) string {
	return strings.ToUpper(strings.TrimSpace(currency))
}

// ValidateAccountName validates account name
func ValidateAccountName(name string) error {
	name = strings.TrimSpace(name)

	if len(name) < MinAccountNameLength {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidAccountName)
	}

	if len(name) > MaxAccountNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidAccountName, MaxAccountNameLength)
	}

	return nil
}

// ValidateCurrency validates currency code
func ValidateCurrency(currency string) error {
	currency = NormalizeCurrency(currency)

	if !currencyRegex.MatchString(currency) {
		return fmt.Errorf("%w: %q is not a 3-letter currency code", ErrInvalidCurrency, currency)
	}

	return nil
}

// ValidateAmount validates a transfer amount after it has been rounded to MoneyScale.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	minAmount := decimal.RequireFromString(MinTransferAmount)
	if RoundMoney(amount).LessThan(minAmount) {
		return fmt.Errorf("%w: minimum amount is %s", ErrAmountTooSmall, MinTransferAmount)
	}

	maxAmount := decimal.RequireFromString(MaxTransferAmount)
	if amount.GreaterThan(maxAmount) {
		return fmt.Errorf("%w: maximum amount is %s", ErrAmountTooLarge, MaxTransferAmount)
	}

	return nil
}

// ValidateInitialBalance validates the opening balance of a new account.
func ValidateInitialBalance(balance decimal.Decimal) error {
	if balance.IsNegative() {
		return ErrNegativeBalance
	}
	return nil
}

// ValidateRate validates an FX multiplier.
func ValidateRate(rate decimal.Decimal) error {
	if rate.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidRate
	}
	if !rate.Equal(rate.Truncate(RateScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidRate, RateScale)
	}
	if rate.GreaterThanOrEqual(maxRate) {
		return fmt.Errorf("%w: must be below %s", ErrInvalidRate, maxRate)
	}
	return nil
}

// ValidateFeePercentage validates the global fee fraction.
func ValidateFeePercentage(pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return ErrInvalidFeePercentage
	}
	if !pct.Equal(pct.Truncate(FeeScale)) {
		return fmt.Errorf("%w: at most %d decimal places", ErrInvalidFeePercentage, FeeScale)
	}
	return nil
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 100
	const DefaultPageSize = 20

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
