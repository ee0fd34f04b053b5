package dto

import (
	"time"

	"github.com/iho/fxtransfer/internal/domain"
)

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	Balance   string    `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountFromDomain converts domain account to response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Currency:  a.Currency,
		Balance:   domain.FormatMoney(a.Balance),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a page of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// TransferOutcomeResponse is the body returned by POST /transfers for both
// committed and rejected transfers.
type TransferOutcomeResponse struct {
	Status         string    `json:"status"`
	Message        string    `json:"message"`
	TransactionID  string    `json:"transaction_id,omitempty"`
	AmountDebited  string    `json:"amount_debited,omitempty"`
	AmountCredited string    `json:"amount_credited,omitempty"`
	Fee            string    `json:"fee,omitempty"`
	FromCurrency   string    `json:"from_currency,omitempty"`
	ToCurrency     string    `json:"to_currency,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// OutcomeFromDomain converts a transfer outcome to response. Amounts are only
// reported for committed transfers.
func OutcomeFromDomain(o *domain.TransferOutcome) *TransferOutcomeResponse {
	resp := &TransferOutcomeResponse{
		Status:        string(o.Status),
		Message:       o.Message,
		TransactionID: o.TransactionID,
		FromCurrency:  o.FromCurrency,
		ToCurrency:    o.ToCurrency,
		Timestamp:     o.Timestamp,
	}

	if o.Succeeded() {
		resp.AmountDebited = domain.FormatMoney(o.AmountDebited)
		resp.AmountCredited = domain.FormatMoney(o.AmountCredited)
		resp.Fee = domain.FormatMoney(o.Fee)
	}

	return resp
}

// TransferResponse represents a ledger record in API responses.
type TransferResponse struct {
	ID             string    `json:"id"`
	FromAccountID  string    `json:"from_account_id"`
	ToAccountID    string    `json:"to_account_id"`
	AmountDebited  string    `json:"amount_debited"`
	AmountCredited string    `json:"amount_credited"`
	Fee            string    `json:"fee"`
	TotalDebit     string    `json:"total_debit"`
	FromCurrency   string    `json:"from_currency"`
	ToCurrency     string    `json:"to_currency"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

// TransferFromDomain converts a ledger record to response.
func TransferFromDomain(t *domain.TransferRecord) *TransferResponse {
	return &TransferResponse{
		ID:             t.ID,
		FromAccountID:  t.FromAccountID,
		ToAccountID:    t.ToAccountID,
		AmountDebited:  domain.FormatMoney(t.AmountDebited),
		AmountCredited: domain.FormatMoney(t.AmountCredited),
		Fee:            domain.FormatMoney(t.Fee),
		TotalDebit:     domain.FormatMoney(t.TotalDebit()),
		FromCurrency:   t.FromCurrency,
		ToCurrency:     t.ToCurrency,
		Status:         string(t.Status),
		CreatedAt:      t.CreatedAt,
	}
}

// TransfersFromDomain converts ledger records to responses.
func TransfersFromDomain(transfers []*domain.TransferRecord) []*TransferResponse {
	result := make([]*TransferResponse, len(transfers))
	for i, t := range transfers {
		result[i] = TransferFromDomain(t)
	}
	return result
}

// FxRateResponse represents a configured FX pair.
type FxRateResponse struct {
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	Rate         string    `json:"rate"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FxRateFromDomain converts a rate to response. Rates keep their full precision.
func FxRateFromDomain(r *domain.FxRate) *FxRateResponse {
	return &FxRateResponse{
		FromCurrency: r.FromCurrency,
		ToCurrency:   r.ToCurrency,
		Rate:         r.Rate.String(),
		UpdatedAt:    r.UpdatedAt,
	}
}

// FxRatesFromDomain converts rates to responses.
func FxRatesFromDomain(rates []*domain.FxRate) []*FxRateResponse {
	result := make([]*FxRateResponse, len(rates))
	for i, r := range rates {
		result[i] = FxRateFromDomain(r)
	}
	return result
}

// FeeResponse represents the global fee fraction.
type FeeResponse struct {
	Percentage string     `json:"percentage"`
	UpdatedAt  *time.Time `json:"updated_at,omitempty"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
