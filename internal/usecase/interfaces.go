package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// GetByIDForUpdate reads an account and holds an exclusive lock on it until
	// tx ends. Locking an id already held by tx must not block.
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Account, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	List(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	Count(ctx context.Context) (int64, error)
}

// TransferRepository is the append-only ledger of committed transfers.
type TransferRepository interface {
	Create(ctx context.Context, tx Transaction, record *domain.TransferRecord) error
	GetByID(ctx context.Context, id string) (*domain.TransferRecord, error)
	ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferRecord, error)
}

// FxRateRepository defines data access for the FX rate table.
type FxRateRepository interface {
	Get(ctx context.Context, from, to string) (*domain.FxRate, error)
	Upsert(ctx context.Context, rate *domain.FxRate) error
	List(ctx context.Context) ([]*domain.FxRate, error)
}

// FeeConfigRepository defines data access for the global fee configuration.
type FeeConfigRepository interface {
	Get(ctx context.Context) (*domain.FeeConfig, error)
	Set(ctx context.Context, cfg *domain.FeeConfig) error
}

// RateOracle resolves the multiplier converting amounts between two currencies.
// It must never acquire account locks.
type RateOracle interface {
	Resolve(ctx context.Context, from, to string) (decimal.Decimal, error)
}

// FeePolicy resolves the global fee fraction applied to transfers.
type FeePolicy interface {
	GlobalFeePercentage(ctx context.Context) (decimal.Decimal, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Retrier re-runs an operation while it fails with a transient storage error.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// MetricsRecorder receives transfer engine observations.
type MetricsRecorder interface {
	TransferCompleted(amount decimal.Decimal, duration time.Duration)
	TransferRejected(reason string)
	TransferFailed(err error)
}

type nopMetrics struct{}

func (nopMetrics) TransferCompleted(decimal.Decimal, time.Duration) {}
func (nopMetrics) TransferRejected(string)                          {}
func (nopMetrics) TransferFailed(error)                             {}
