package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

// MockAccountRepository is a mock implementation of AccountRepository.
// Without overrides it behaves as a map and records the order of lock calls.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
	locked   []string

	CreateFunc           func(ctx context.Context, account *domain.Account) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error)
	UpdateBalanceFunc    func(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error
	ListFunc             func(ctx context.Context, limit, offset int) ([]*domain.Account, error)
	CountFunc            func(ctx context.Context) (int64, error)
}

func NewMockAccountRepository(accounts ...*domain.Account) *MockAccountRepository {
	m := &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
	for _, acc := range accounts {
		m.accounts[acc.ID] = acc
	}
	return m
}

// LockedIDs returns the ids passed to GetByIDForUpdate, in call order.
func (m *MockAccountRepository) LockedIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.locked...)
}

// Balance returns the stored balance of an account.
func (m *MockAccountRepository) Balance(id string) decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		return acc.Balance
	}
	return decimal.Zero
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if acc, ok := m.accounts[id]; ok {
		cp := *acc
		return &cp, nil
	}
	return nil, domain.ErrAccountNotFound
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Account, error) {
	m.mu.Lock()
	m.locked = append(m.locked, id)
	m.mu.Unlock()

	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance decimal.Decimal, updatedAt time.Time) error {
	if m.UpdateBalanceFunc != nil {
		return m.UpdateBalanceFunc(ctx, tx, id, balance, updatedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if acc, ok := m.accounts[id]; ok {
		acc.Balance = balance
		acc.UpdatedAt = updatedAt
	}
	return nil
}

func (m *MockAccountRepository) List(ctx context.Context, limit, offset int) ([]*domain.Account, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, acc := range m.accounts {
		accounts = append(accounts, acc)
	}
	return accounts, nil
}

func (m *MockAccountRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.accounts)), nil
}

// MockTransferRepository is a mock implementation of TransferRepository.
type MockTransferRepository struct {
	mu        sync.RWMutex
	transfers map[string]*domain.TransferRecord

	CreateFunc        func(ctx context.Context, tx usecase.Transaction, record *domain.TransferRecord) error
	GetByIDFunc       func(ctx context.Context, id string) (*domain.TransferRecord, error)
	ListByAccountFunc func(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferRecord, error)
}

func NewMockTransferRepository() *MockTransferRepository {
	return &MockTransferRepository{
		transfers: make(map[string]*domain.TransferRecord),
	}
}

// Count returns the number of stored records.
func (m *MockTransferRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transfers)
}

func (m *MockTransferRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransferRecord) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, record)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transfers[record.ID] = record
	return nil
}

func (m *MockTransferRepository) GetByID(ctx context.Context, id string) (*domain.TransferRecord, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transfers[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTransferNotFound
}

func (m *MockTransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferRecord, error) {
	if m.ListByAccountFunc != nil {
		return m.ListByAccountFunc(ctx, accountID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transfers []*domain.TransferRecord
	for _, t := range m.transfers {
		if t.FromAccountID == accountID || t.ToAccountID == accountID {
			transfers = append(transfers, t)
		}
	}
	return transfers, nil
}

// MockRateOracle is a mock implementation of RateOracle backed by a pair map.
type MockRateOracle struct {
	Rates       map[string]decimal.Decimal
	ResolveFunc func(ctx context.Context, from, to string) (decimal.Decimal, error)
}

func NewMockRateOracle() *MockRateOracle {
	return &MockRateOracle{Rates: make(map[string]decimal.Decimal)}
}

// Set registers a rate for from -> to.
func (m *MockRateOracle) Set(from, to, rate string) *MockRateOracle {
	m.Rates[from+":"+to] = decimal.RequireFromString(rate)
	return m
}

func (m *MockRateOracle) Resolve(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, from, to)
	}
	if domain.NormalizeCurrency(from) == domain.NormalizeCurrency(to) {
		return decimal.NewFromInt(1), nil
	}
	if rate, ok := m.Rates[from+":"+to]; ok {
		return rate, nil
	}
	return decimal.Zero, domain.ErrFxRateNotFound
}

// MockFeePolicy is a mock implementation of FeePolicy.
type MockFeePolicy struct {
	Percentage              decimal.Decimal
	GlobalFeePercentageFunc func(ctx context.Context) (decimal.Decimal, error)
}

func NewMockFeePolicy(pct string) *MockFeePolicy {
	return &MockFeePolicy{Percentage: decimal.RequireFromString(pct)}
}

func (m *MockFeePolicy) GlobalFeePercentage(ctx context.Context) (decimal.Decimal, error) {
	if m.GlobalFeePercentageFunc != nil {
		return m.GlobalFeePercentageFunc(ctx)
	}
	return m.Percentage, nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	mu  sync.Mutex
	txs []*MockTransaction
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

// Transactions returns every transaction handed out by Begin.
func (m *MockTransactionManager) Transactions() []*MockTransaction {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*MockTransaction(nil), m.txs...)
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.mu.Lock()
	m.txs = append(m.txs, tx)
	m.mu.Unlock()
	return tx, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockMetricsRecorder counts the observations it receives.
type MockMetricsRecorder struct {
	mu        sync.Mutex
	Completed int
	Rejected  map[string]int
	Failed    int
}

func NewMockMetricsRecorder() *MockMetricsRecorder {
	return &MockMetricsRecorder{Rejected: make(map[string]int)}
}

func (m *MockMetricsRecorder) TransferCompleted(decimal.Decimal, time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Completed++
}

func (m *MockMetricsRecorder) TransferRejected(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Rejected[reason]++
}

func (m *MockMetricsRecorder) TransferFailed(error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failed++
}
