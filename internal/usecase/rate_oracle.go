package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
)

// FxRateService resolves FX multipliers from the rate table with a read-through cache.
type FxRateService struct {
	repo  FxRateRepository
	cache decimalCache
	now   func() time.Time
}

// NewFxRateService creates a new FxRateService. cache may be nil.
func NewFxRateService(repo FxRateRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *FxRateService {
	return &FxRateService{
		repo:  repo,
		cache: newDecimalCache(cache, ttl, logger),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func fxCacheKey(from, to string) string {
	return "fx:" + from + ":" + to
}

// Resolve returns the multiplier for from -> to. Identical currencies
// (case-insensitive) always resolve to 1 without touching storage.
func (s *FxRateService) Resolve(ctx context.Context, from, to string) (decimal.Decimal, error) {
	from = domain.NormalizeCurrency(from)
	to = domain.NormalizeCurrency(to)

	if from == to {
		return decimal.NewFromInt(1), nil
	}

	key := fxCacheKey(from, to)
	cached, gen, ok := s.cache.get(ctx, key)
	if ok {
		return cached, nil
	}

	rate, err := s.repo.Get(ctx, from, to)
	if err != nil {
		return decimal.Zero, err
	}

	s.cache.fill(ctx, key, gen, rate.Rate)

	return rate.Rate, nil
}

// SetRateInput represents input for configuring an FX rate.
type SetRateInput struct {
	FromCurrency string
	ToCurrency   string
	Rate         decimal.Decimal
}

// SetRate creates or replaces the rate for a currency pair and writes it
// through to the cache. An error wrapping ErrCacheRefresh means the rate was
// stored but the cache may still hold the previous value.
func (s *FxRateService) SetRate(ctx context.Context, input SetRateInput) (*domain.FxRate, error) {
	if err := domain.ValidateCurrency(input.FromCurrency); err != nil {
		return nil, err
	}
	if err := domain.ValidateCurrency(input.ToCurrency); err != nil {
		return nil, err
	}
	if err := domain.ValidateRate(input.Rate); err != nil {
		return nil, err
	}

	from := domain.NormalizeCurrency(input.FromCurrency)
	to := domain.NormalizeCurrency(input.ToCurrency)
	if from == to {
		return nil, fmt.Errorf("%w: %s to itself is always 1", domain.ErrInvalidRate, from)
	}

	rate := &domain.FxRate{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         input.Rate,
		UpdatedAt:    s.now(),
	}

	if err := s.repo.Upsert(ctx, rate); err != nil {
		return nil, err
	}

	if err := s.cache.refresh(ctx, fxCacheKey(from, to), rate.Rate); err != nil {
		return nil, err
	}

	return rate, nil
}

// ListRates returns every configured rate.
func (s *FxRateService) ListRates(ctx context.Context) ([]*domain.FxRate, error) {
	return s.repo.List(ctx)
}
