package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FxRate is the multiplier converting FromCurrency amounts into ToCurrency.
type FxRate struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
	UpdatedAt    time.Time
}

// FeeConfig holds the global fee fraction charged on every transfer.
type FeeConfig struct {
	Percentage decimal.Decimal
	UpdatedAt  time.Time
}
