// Package memory provides process-local implementations of the usecase
// repositories. Account locks are exclusive, held until the owning Tx commits
// or rolls back, and writes staged in a Tx become visible only on Commit.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

var (
	// ErrTxDone is returned when a finished transaction is used again.
	ErrTxDone = errors.New("transaction already committed or rolled back")
	// ErrNotLocked is returned when a write targets an account the Tx does not hold.
	ErrNotLocked = errors.New("account is not locked by this transaction")
	// ErrForeignTx is returned when a Transaction from another backend is passed in.
	ErrForeignTx = errors.New("transaction does not belong to the memory store")
	// ErrDuplicateID is returned when an id is inserted twice.
	ErrDuplicateID = errors.New("duplicate id")
)

// Store holds every table of the memory backend.
type Store struct {
	mu        sync.RWMutex
	accounts  map[string]*domain.Account
	locks     map[string]chan struct{}
	transfers map[string]*domain.TransferRecord
	ledger    []*domain.TransferRecord
	rates     map[string]*domain.FxRate
	fee       *domain.FeeConfig
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]*domain.Account),
		locks:     make(map[string]chan struct{}),
		transfers: make(map[string]*domain.TransferRecord),
		rates:     make(map[string]*domain.FxRate),
	}
}

// Ping always succeeds; it lets the store back readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// TotalBalance sums the balances of every account.
func (s *Store) TotalBalance() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := decimal.Zero
	for _, acc := range s.accounts {
		total = total.Add(acc.Balance)
	}
	return total
}

func (s *Store) lockFor(id string) (chan struct{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	lock, ok := s.locks[id]
	return lock, ok
}

func (s *Store) snapshot(id string) (*domain.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[id]
	if !ok {
		return nil, false
	}
	cp := *acc
	return &cp, true
}

type stagedBalance struct {
	balance   decimal.Decimal
	updatedAt time.Time
}

// Tx is a unit of work over a Store.
type Tx struct {
	store *Store

	mu       sync.Mutex
	held     map[string]chan struct{}
	balances map[string]stagedBalance
	records  []*domain.TransferRecord
	done     bool
}

// TxManager implements usecase.TransactionManager for the memory Store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a new TxManager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &Tx{
		store:    m.store,
		held:     make(map[string]chan struct{}),
		balances: make(map[string]stagedBalance),
	}, nil
}

func asTx(tx usecase.Transaction) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok {
		return nil, ErrForeignTx
	}
	return t, nil
}

// lock acquires the account lock unless this Tx already holds it. The wait
// is abandoned when ctx is cancelled.
func (t *Tx) lock(ctx context.Context, id string) error {
	t.mu.Lock()
	if t.done {
		t.mu.Unlock()
		return ErrTxDone
	}
	if _, ok := t.held[id]; ok {
		t.mu.Unlock()
		return nil
	}
	t.mu.Unlock()

	lock, ok := t.store.lockFor(id)
	if !ok {
		return domain.ErrAccountNotFound
	}

	select {
	case lock <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		<-lock
		return ErrTxDone
	}
	t.held[id] = lock
	return nil
}

func (t *Tx) holds(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.held[id]
	return ok
}

func (t *Tx) read(id string) (*domain.Account, bool) {
	acc, ok := t.store.snapshot(id)
	if !ok {
		return nil, false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if staged, ok := t.balances[id]; ok {
		acc.Balance = staged.balance
		acc.UpdatedAt = staged.updatedAt
	}
	return acc, true
}

func (t *Tx) stageBalance(id string, balance decimal.Decimal, updatedAt time.Time) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	if _, ok := t.held[id]; !ok {
		return ErrNotLocked
	}
	t.balances[id] = stagedBalance{balance: balance, updatedAt: updatedAt}
	return nil
}

func (t *Tx) stageRecord(record *domain.TransferRecord) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	cp := *record
	t.records = append(t.records, &cp)
	return nil
}

// Commit applies every staged write atomically and releases the locks.
func (t *Tx) Commit(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return ErrTxDone
	}
	t.done = true
	defer t.release()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range t.records {
		if _, exists := s.transfers[r.ID]; exists {
			return ErrDuplicateID
		}
	}

	for id, staged := range t.balances {
		acc := s.accounts[id]
		acc.Balance = staged.balance
		acc.UpdatedAt = staged.updatedAt
	}
	for _, r := range t.records {
		s.transfers[r.ID] = r
		s.ledger = append(s.ledger, r)
	}

	return nil
}

// Rollback discards staged writes and releases the locks. Calling it after
// Commit is a no-op.
func (t *Tx) Rollback(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return nil
	}
	t.done = true
	t.release()
	return nil
}

// release must be called with t.mu held.
func (t *Tx) release() {
	ids := make([]string, 0, len(t.held))
	for id := range t.held {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		<-t.held[id]
	}
	t.held = nil
	t.balances = nil
	t.records = nil
}
