package dto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

// ErrMissingValue is returned when a required decimal field is empty.
var ErrMissingValue = errors.New("value is required")

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string `json:"name"`
	Currency       string `json:"currency"`
	InitialBalance string `json:"initial_balance,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() (usecase.CreateAccountInput, error) {
	balance := decimal.Zero
	if strings.TrimSpace(r.InitialBalance) != "" {
		parsed, err := parseDecimal("initial_balance", r.InitialBalance)
		if err != nil {
			return usecase.CreateAccountInput{}, err
		}
		balance = parsed
	}

	return usecase.CreateAccountInput{
		Name:           r.Name,
		Currency:       r.Currency,
		InitialBalance: balance,
	}, nil
}

// CreateTransferRequest represents a request to move money between two accounts.
type CreateTransferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
}

// ToDomain parses the amount and rejects non-positive values.
func (r *CreateTransferRequest) ToDomain() (domain.TransferRequest, error) {
	amount, err := parseDecimal("amount", r.Amount)
	if err != nil {
		return domain.TransferRequest{}, err
	}

	if err := domain.ValidateAmount(amount); err != nil {
		return domain.TransferRequest{}, err
	}

	return domain.TransferRequest{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        amount,
	}, nil
}

// SetFxRateRequest upserts the multiplier for a currency pair.
type SetFxRateRequest struct {
	FromCurrency string `json:"from_currency"`
	ToCurrency   string `json:"to_currency"`
	Rate         string `json:"rate"`
}

// ToUseCaseInput converts to use case input.
func (r *SetFxRateRequest) ToUseCaseInput() (usecase.SetRateInput, error) {
	rate, err := parseDecimal("rate", r.Rate)
	if err != nil {
		return usecase.SetRateInput{}, err
	}

	return usecase.SetRateInput{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         rate,
	}, nil
}

// SetFeeRequest sets the global fee fraction, e.g. "0.01" for 1%.
type SetFeeRequest struct {
	Percentage string `json:"percentage"`
}

// ParsePercentage parses the requested fee fraction.
func (r *SetFeeRequest) ParsePercentage() (decimal.Decimal, error) {
	return parseDecimal("percentage", r.Percentage)
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero, fmt.Errorf("%s: %w", field, ErrMissingValue)
	}

	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", field, err)
	}

	return d, nil
}
