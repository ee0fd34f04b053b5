package usecase

import "time"

const (
	// DefaultTransferTimeout bounds how long a caller waits for a transfer,
	// including time spent queued on account locks.
	DefaultTransferTimeout = 10 * time.Second

	// DefaultRateCacheTTL is how long FX rates and the fee percentage are cached.
	DefaultRateCacheTTL = 5 * time.Minute

	// Rejection reasons reported to metrics.
	RejectReasonInsufficientFunds = "insufficient_funds"
	RejectReasonFxRateNotFound    = "fx_rate_not_found"
)
