package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	store *Store
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(store *Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// Create inserts a new account.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.ID]; exists {
		return ErrDuplicateID
	}

	cp := *account
	s.accounts[account.ID] = &cp
	s.locks[account.ID] = make(chan struct{}, 1)
	return nil
}

// GetByID retrieves the committed state of an account.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	acc, ok := r.store.snapshot(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// GetByIDForUpdate locks the account for tx and returns its state as tx sees it.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	t, err := asTx(tx)
	if err != nil {
		return nil, err
	}

	if err := t.lock(ctx, id); err != nil {
		return nil, err
	}

	acc, ok := t.read(id)
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return acc, nil
}

// UpdateBalance stages a new balance; the account must be locked by tx.
func (r *AccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	return t.stageBalance(id, balance, updatedAt)
}

// List returns accounts ordered by creation time.
func (r *AccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	s := r.store
	s.mu.RLock()
	all := make([]*domain.Account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		cp := *acc
		all = append(all, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID < all[j].ID
		}
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})

	return paginate(all, limit, offset), nil
}

// Count returns the number of committed accounts.
func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.accounts)), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
