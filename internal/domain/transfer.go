package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferStatus is the outcome of a transfer attempt.
type TransferStatus string

const (
	TransferStatusSuccess TransferStatus = "SUCCESS"
	TransferStatusFailed  TransferStatus = "FAILED"
)

// Outcome messages returned to callers.
const (
	MessageTransferSucceeded = "Successful transfer"
	MessageInsufficientFunds = "Insufficient funds"
	MessageFxRateNotFound    = "FX rate not found for transfer"
)

// TransferRequest asks to move Amount (in the source currency) between two accounts.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	Amount        decimal.Decimal
}

// Validate validates transfer request.
func (r *TransferRequest) Validate() error {
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// TransferRecord is an immutable ledger entry written for every committed transfer.
type TransferRecord struct {
	CreatedAt      time.Time
	ID             string
	FromAccountID  string
	ToAccountID    string
	FromCurrency   string
	ToCurrency     string
	Status         TransferStatus
	AmountDebited  decimal.Decimal
	AmountCredited decimal.Decimal
	Fee            decimal.Decimal
}

// TotalDebit is the principal plus the fee taken from the source account.
func (t *TransferRecord) TotalDebit() decimal.Decimal {
	return t.AmountDebited.Add(t.Fee)
}

// TransferOutcome is the result of a transfer attempt, successful or rejected.
type TransferOutcome struct {
	Timestamp      time.Time
	Status         TransferStatus
	Message        string
	TransactionID  string
	FromCurrency   string
	ToCurrency     string
	AmountDebited  decimal.Decimal
	AmountCredited decimal.Decimal
	Fee            decimal.Decimal
}

// Succeeded reports whether the outcome committed a transfer.
func (o *TransferOutcome) Succeeded() bool {
	return o.Status == TransferStatusSuccess
}

// RejectedOutcome builds a failed outcome carrying only a status and a reason.
func RejectedOutcome(message string, at time.Time) *TransferOutcome {
	return &TransferOutcome{
		Status:    TransferStatusFailed,
		Message:   message,
		Timestamp: at,
	}
}

// OutcomeFromRecord builds the success outcome for a committed ledger record.
func OutcomeFromRecord(r *TransferRecord) *TransferOutcome {
	return &TransferOutcome{
		Status:         TransferStatusSuccess,
		Message:        MessageTransferSucceeded,
		TransactionID:  r.ID,
		AmountDebited:  r.AmountDebited,
		AmountCredited: r.AmountCredited,
		Fee:            r.Fee,
		FromCurrency:   r.FromCurrency,
		ToCurrency:     r.ToCurrency,
		Timestamp:      r.CreatedAt,
	}
}
