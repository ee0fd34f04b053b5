package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/infrastructure/postgres/generated"
)

// FxRateRepository implements usecase.FxRateRepository.
type FxRateRepository struct {
	queries *generated.Queries
}

// NewFxRateRepository creates a new FxRateRepository.
func NewFxRateRepository(pool *pgxpool.Pool) *FxRateRepository {
	return newFxRateRepositoryWithDB(pool)
}

func newFxRateRepositoryWithDB(db generated.DBTX) *FxRateRepository {
	return &FxRateRepository{queries: generated.New(db)}
}

// Get returns the rate for an ordered currency pair.
func (r *FxRateRepository) Get(ctx context.Context, from, to string) (*domain.FxRate, error) {
	row, err := r.queries.GetFxRate(ctx, generated.GetFxRateParams{
		FromCurrency: domain.NormalizeCurrency(from),
		ToCurrency:   domain.NormalizeCurrency(to),
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFxRateNotFound
		}

		return nil, err
	}

	return rowToFxRate(row), nil
}

// Upsert creates or replaces the rate for its pair.
func (r *FxRateRepository) Upsert(ctx context.Context, rate *domain.FxRate) error {
	return r.queries.UpsertFxRate(ctx, generated.UpsertFxRateParams{
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         decimalToNumeric(rate.Rate),
		UpdatedAt:    timeToPgTimestamptz(rate.UpdatedAt),
	})
}

// List returns every configured rate.
func (r *FxRateRepository) List(ctx context.Context) ([]*domain.FxRate, error) {
	rows, err := r.queries.ListFxRates(ctx)
	if err != nil {
		return nil, err
	}

	rates := make([]*domain.FxRate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, rowToFxRate(row))
	}

	return rates, nil
}

func rowToFxRate(row generated.FxRate) *domain.FxRate {
	return &domain.FxRate{
		FromCurrency: row.FromCurrency,
		ToCurrency:   row.ToCurrency,
		Rate:         numericToDecimal(row.Rate),
		UpdatedAt:    row.UpdatedAt.Time,
	}
}

// FeeConfigRepository implements usecase.FeeConfigRepository.
type FeeConfigRepository struct {
	queries *generated.Queries
}

// NewFeeConfigRepository creates a new FeeConfigRepository.
func NewFeeConfigRepository(pool *pgxpool.Pool) *FeeConfigRepository {
	return newFeeConfigRepositoryWithDB(pool)
}

func newFeeConfigRepositoryWithDB(db generated.DBTX) *FeeConfigRepository {
	return &FeeConfigRepository{queries: generated.New(db)}
}

// Get returns the global fee configuration.
func (r *FeeConfigRepository) Get(ctx context.Context) (*domain.FeeConfig, error) {
	row, err := r.queries.GetFeeConfig(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFeeConfigNotFound
		}

		return nil, err
	}

	return &domain.FeeConfig{
		Percentage: numericToDecimal(row.Percentage),
		UpdatedAt:  row.UpdatedAt.Time,
	}, nil
}

// Set replaces the global fee configuration.
func (r *FeeConfigRepository) Set(ctx context.Context, cfg *domain.FeeConfig) error {
	return r.queries.UpsertFeeConfig(ctx, generated.UpsertFeeConfigParams{
		Percentage: decimalToNumeric(cfg.Percentage),
		UpdatedAt:  timeToPgTimestamptz(cfg.UpdatedAt),
	})
}
