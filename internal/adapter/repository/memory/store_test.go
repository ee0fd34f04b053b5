package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/fxtransfer/internal/adapter/repository/memory"
	"github.com/iho/fxtransfer/internal/domain"
)

func seedAccount(t *testing.T, repo *memory.AccountRepository, id, currency, balance string) {
	t.Helper()
	now := time.Now().UTC()
	require.NoError(t, repo.Create(context.Background(), &domain.Account{
		ID:        id,
		Name:      id,
		Currency:  currency,
		Balance:   decimal.RequireFromString(balance),
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func TestTx_StagedWritesInvisibleUntilCommit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	txManager := memory.NewTxManager(store)
	seedAccount(t, accounts, "a", "USD", "100")

	tx, err := txManager.Begin(ctx)
	require.NoError(t, err)

	_, err = accounts.GetByIDForUpdate(ctx, tx, "a")
	require.NoError(t, err)
	require.NoError(t, accounts.UpdateBalance(ctx, tx, "a", decimal.NewFromInt(40), time.Now()))

	inTx, err := accounts.GetByIDForUpdate(ctx, tx, "a")
	require.NoError(t, err)
	assert.True(t, inTx.Balance.Equal(decimal.NewFromInt(40)), "tx must see its own write")

	committed, err := accounts.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, committed.Balance.Equal(decimal.NewFromInt(100)), "write leaked before commit")

	require.NoError(t, tx.Commit(ctx))

	committed, err = accounts.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, committed.Balance.Equal(decimal.NewFromInt(40)))
}

func TestTx_RollbackDiscardsWrites(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	transfers := memory.NewTransferRepository(store)
	txManager := memory.NewTxManager(store)
	seedAccount(t, accounts, "a", "USD", "100")

	tx, err := txManager.Begin(ctx)
	require.NoError(t, err)
	_, err = accounts.GetByIDForUpdate(ctx, tx, "a")
	require.NoError(t, err)
	require.NoError(t, accounts.UpdateBalance(ctx, tx, "a", decimal.Zero, time.Now()))
	require.NoError(t, transfers.Create(ctx, tx, &domain.TransferRecord{ID: "t1", FromAccountID: "a"}))
	require.NoError(t, tx.Rollback(ctx))

	acc, err := accounts.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.True(t, acc.Balance.Equal(decimal.NewFromInt(100)))

	_, err = transfers.GetByID(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrTransferNotFound)

	assert.ErrorIs(t, tx.Commit(ctx), memory.ErrTxDone)
	assert.NoError(t, tx.Rollback(ctx))
}

func TestTx_LockIsExclusiveUntilRelease(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	txManager := memory.NewTxManager(store)
	seedAccount(t, accounts, "a", "USD", "100")

	first, err := txManager.Begin(ctx)
	require.NoError(t, err)
	_, err = accounts.GetByIDForUpdate(ctx, first, "a")
	require.NoError(t, err)

	acquired := make(chan error, 1)
	go func() {
		second, err := txManager.Begin(ctx)
		if err != nil {
			acquired <- err
			return
		}
		defer second.Rollback(ctx)
		_, err = accounts.GetByIDForUpdate(ctx, second, "a")
		acquired <- err
	}()

	select {
	case <-acquired:
		t.Fatal("second transaction acquired a held lock")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, first.Commit(ctx))

	select {
	case err := <-acquired:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("lock was not released on commit")
	}
}

func TestTx_LockWaitHonorsContext(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	txManager := memory.NewTxManager(store)
	seedAccount(t, accounts, "a", "USD", "100")

	holder, err := txManager.Begin(ctx)
	require.NoError(t, err)
	defer holder.Rollback(ctx)
	_, err = accounts.GetByIDForUpdate(ctx, holder, "a")
	require.NoError(t, err)

	waitCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()

	waiter, err := txManager.Begin(ctx)
	require.NoError(t, err)
	defer waiter.Rollback(ctx)

	_, err = accounts.GetByIDForUpdate(waitCtx, waiter, "a")
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "expected deadline, got %v", err)
}

func TestTx_RelockingHeldAccountDoesNotBlock(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	seedAccount(t, accounts, "a", "USD", "100")

	tx, err := memory.NewTxManager(store).Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	for i := 0; i < 3; i++ {
		_, err := accounts.GetByIDForUpdate(ctx, tx, "a")
		require.NoError(t, err)
	}
}

func TestAccountRepository_Errors(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	seedAccount(t, accounts, "a", "USD", "100")

	err := accounts.Create(ctx, &domain.Account{ID: "a"})
	assert.ErrorIs(t, err, memory.ErrDuplicateID)

	tx, err := memory.NewTxManager(store).Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = accounts.GetByIDForUpdate(ctx, tx, "missing")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)

	err = accounts.UpdateBalance(ctx, tx, "a", decimal.Zero, time.Now())
	assert.ErrorIs(t, err, memory.ErrNotLocked)
}

func TestAccountRepository_ListPaginates(t *testing.T) {
	ctx := context.Background()
	accounts := memory.NewAccountRepository(memory.NewStore())
	for _, id := range []string{"a", "b", "c"} {
		seedAccount(t, accounts, id, "USD", "1")
	}

	page, err := accounts.List(ctx, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	page, err = accounts.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	page, err = accounts.List(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, page)

	total, err := accounts.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
}

func TestPricingRepositories(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	rates := memory.NewFxRateRepository(store)
	fees := memory.NewFeeConfigRepository(store)

	_, err := rates.Get(ctx, "USD", "EUR")
	assert.ErrorIs(t, err, domain.ErrFxRateNotFound)

	require.NoError(t, rates.Upsert(ctx, &domain.FxRate{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.9")}))
	require.NoError(t, rates.Upsert(ctx, &domain.FxRate{FromCurrency: "USD", ToCurrency: "EUR", Rate: decimal.RequireFromString("0.95")}))

	rate, err := rates.Get(ctx, "usd", "eur")
	require.NoError(t, err)
	assert.True(t, rate.Rate.Equal(decimal.RequireFromString("0.95")))

	_, err = rates.Get(ctx, "EUR", "USD")
	assert.ErrorIs(t, err, domain.ErrFxRateNotFound, "pairs are directional")

	all, err := rates.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = fees.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrFeeConfigNotFound)

	require.NoError(t, fees.Set(ctx, &domain.FeeConfig{Percentage: decimal.RequireFromString("0.02")}))
	cfg, err := fees.Get(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.Percentage.Equal(decimal.RequireFromString("0.02")))
}
