package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// Transfer errors
	ErrSameAccount      = errors.New("cannot transfer to same account")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrTransferNotFound = errors.New("transfer not found")

	// Pricing errors
	ErrFxRateNotFound       = errors.New("fx rate not found")
	ErrFeeConfigNotFound    = errors.New("fee configuration not found")
	ErrInvalidRate          = errors.New("fx rate must be positive")
	ErrInvalidFeePercentage = errors.New("fee percentage must be in [0, 1)")
)
