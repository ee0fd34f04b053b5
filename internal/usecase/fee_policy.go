package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
)

const feeCacheKey = "fee:global"

// FeePolicyService resolves the global fee percentage, falling back to
// domain.DefaultFeePercentage when nothing is configured.
type FeePolicyService struct {
	repo  FeeConfigRepository
	cache decimalCache
	now   func() time.Time
}

// NewFeePolicyService creates a new FeePolicyService. cache may be nil.
func NewFeePolicyService(repo FeeConfigRepository, cache Cache, ttl time.Duration, logger zerolog.Logger) *FeePolicyService {
	return &FeePolicyService{
		repo:  repo,
		cache: newDecimalCache(cache, ttl, logger),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// GlobalFeePercentage returns the configured fee fraction.
func (s *FeePolicyService) GlobalFeePercentage(ctx context.Context) (decimal.Decimal, error) {
	cached, gen, ok := s.cache.get(ctx, feeCacheKey)
	if ok {
		return cached, nil
	}

	pct := domain.DefaultFeePercentage

	cfg, err := s.repo.Get(ctx)
	switch {
	case errors.Is(err, domain.ErrFeeConfigNotFound):
	case err != nil:
		return decimal.Zero, err
	default:
		pct = cfg.Percentage
	}

	s.cache.fill(ctx, feeCacheKey, gen, pct)

	return pct, nil
}

// SetGlobalFeePercentage replaces the fee fraction and writes it through to
// the cache.
func (s *FeePolicyService) SetGlobalFeePercentage(ctx context.Context, pct decimal.Decimal) (*domain.FeeConfig, error) {
	if err := domain.ValidateFeePercentage(pct); err != nil {
		return nil, err
	}

	cfg := &domain.FeeConfig{
		Percentage: pct,
		UpdatedAt:  s.now(),
	}

	if err := s.repo.Set(ctx, cfg); err != nil {
		return nil, err
	}

	if err := s.cache.refresh(ctx, feeCacheKey, pct); err != nil {
		return nil, err
	}

	return cfg, nil
}
