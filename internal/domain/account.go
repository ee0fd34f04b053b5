package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a balance-holding account denominated in a single currency.
type Account struct {
	ID        string
	Name      string
	Currency  string
	Balance   decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidateDebit checks if account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ApplyDebit returns new balance after debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return RoundMoney(a.Balance.Sub(amount))
}

// ApplyCredit returns new balance after credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return RoundMoney(a.Balance.Add(amount))
}
