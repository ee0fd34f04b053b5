package memory

import (
	"context"
	"sort"

	"github.com/iho/fxtransfer/internal/domain"
)

// FxRateRepository implements usecase.FxRateRepository.
type FxRateRepository struct {
	store *Store
}

// NewFxRateRepository creates a new FxRateRepository.
func NewFxRateRepository(store *Store) *FxRateRepository {
	return &FxRateRepository{store: store}
}

func pairKey(from, to string) string {
	return from + ":" + to
}

// Get returns the rate for an ordered currency pair.
func (r *FxRateRepository) Get(ctx context.Context, from, to string) (*domain.FxRate, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rate, ok := s.rates[pairKey(domain.NormalizeCurrency(from), domain.NormalizeCurrency(to))]
	if !ok {
		return nil, domain.ErrFxRateNotFound
	}
	cp := *rate
	return &cp, nil
}

// Upsert creates or replaces the rate for its pair.
func (r *FxRateRepository) Upsert(ctx context.Context, rate *domain.FxRate) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *rate
	s.rates[pairKey(rate.FromCurrency, rate.ToCurrency)] = &cp
	return nil
}

// List returns every rate ordered by pair.
func (r *FxRateRepository) List(ctx context.Context) ([]*domain.FxRate, error) {
	s := r.store
	s.mu.RLock()
	rates := make([]*domain.FxRate, 0, len(s.rates))
	for _, rate := range s.rates {
		cp := *rate
		rates = append(rates, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(rates, func(i, j int) bool {
		return pairKey(rates[i].FromCurrency, rates[i].ToCurrency) < pairKey(rates[j].FromCurrency, rates[j].ToCurrency)
	})
	return rates, nil
}

// FeeConfigRepository implements usecase.FeeConfigRepository.
type FeeConfigRepository struct {
	store *Store
}

// NewFeeConfigRepository creates a new FeeConfigRepository.
func NewFeeConfigRepository(store *Store) *FeeConfigRepository {
	return &FeeConfigRepository{store: store}
}

// Get returns the fee configuration or domain.ErrFeeConfigNotFound.
func (r *FeeConfigRepository) Get(ctx context.Context) (*domain.FeeConfig, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fee == nil {
		return nil, domain.ErrFeeConfigNotFound
	}
	cp := *s.fee
	return &cp, nil
}

// Set replaces the fee configuration.
func (r *FeeConfigRepository) Set(ctx context.Context, cfg *domain.FeeConfig) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *cfg
	s.fee = &cp
	return nil
}
