package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
	"github.com/iho/fxtransfer/internal/usecase/mocks"
)

type transferFixture struct {
	accounts  *mocks.MockAccountRepository
	transfers *mocks.MockTransferRepository
	txManager *mocks.MockTransactionManager
	rates     *mocks.MockRateOracle
	fees      *mocks.MockFeePolicy
	metrics   *mocks.MockMetricsRecorder
	uc        *usecase.TransferUseCase
}

func newTransferFixture(feePct string, accounts ...*domain.Account) *transferFixture {
	f := &transferFixture{
		accounts:  mocks.NewMockAccountRepository(accounts...),
		transfers: mocks.NewMockTransferRepository(),
		txManager: mocks.NewMockTransactionManager(),
		rates:     mocks.NewMockRateOracle(),
		fees:      mocks.NewMockFeePolicy(feePct),
		metrics:   mocks.NewMockMetricsRecorder(),
	}
	f.uc = usecase.NewTransferUseCase(
		f.txManager, f.accounts, f.transfers, f.rates, f.fees, mocks.NewMockIDGenerator(),
		usecase.WithMetrics(f.metrics),
	)
	return f
}

func account(id, currency, balance string) *domain.Account {
	return &domain.Account{ID: id, Name: id, Currency: currency, Balance: decimal.RequireFromString(balance)}
}

func request(from, to, amount string) domain.TransferRequest {
	return domain.TransferRequest{FromAccountID: from, ToAccountID: to, Amount: decimal.RequireFromString(amount)}
}

func assertBalance(t *testing.T, repo *mocks.MockAccountRepository, id, want string) {
	t.Helper()
	if got := repo.Balance(id); !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("balance of %s: expected %s, got %s", id, want, got)
	}
}

func assertMoney(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %s", field, want, got)
	}
}

func TestTransferUseCase_Transfer_CrossCurrency(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "1000.00"), account("b", "AUD", "500.00"))
	f.rates.Set("USD", "AUD", "2.0")

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "50.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if outcome.Status != domain.TransferStatusSuccess {
		t.Fatalf("expected SUCCESS, got %s", outcome.Status)
	}
	if outcome.Message != domain.MessageTransferSucceeded {
		t.Errorf("expected message %q, got %q", domain.MessageTransferSucceeded, outcome.Message)
	}
	if outcome.TransactionID == "" {
		t.Error("expected transaction id")
	}
	assertMoney(t, "amount debited", outcome.AmountDebited, "50.00")
	assertMoney(t, "amount credited", outcome.AmountCredited, "100.00")
	assertMoney(t, "fee", outcome.Fee, "0.50")
	if outcome.FromCurrency != "USD" || outcome.ToCurrency != "AUD" {
		t.Errorf("unexpected currencies %s -> %s", outcome.FromCurrency, outcome.ToCurrency)
	}

	assertBalance(t, f.accounts, "a", "949.50")
	assertBalance(t, f.accounts, "b", "600.00")

	record, err := f.transfers.GetByID(context.Background(), outcome.TransactionID)
	if err != nil {
		t.Fatalf("expected ledger record, got %v", err)
	}
	assertMoney(t, "record total debit", record.TotalDebit(), "50.50")

	if !f.txManager.Transactions()[0].Committed {
		t.Error("expected transaction to be committed")
	}
	if f.metrics.Completed != 1 {
		t.Errorf("expected 1 completed metric, got %d", f.metrics.Completed)
	}
}

func TestTransferUseCase_Transfer_SameCurrencyIgnoresRateTable(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "100.00"), account("b", "usd", "0"))

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertMoney(t, "amount credited", outcome.AmountCredited, "10.00")
	assertBalance(t, f.accounts, "a", "89.90")
	assertBalance(t, f.accounts, "b", "10.00")
}

func TestTransferUseCase_Transfer_InsufficientFunds(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "50.00"), account("b", "USD", "0"))

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "50.00"))
	if err != nil {
		t.Fatalf("rejections must not be errors, got %v", err)
	}

	if outcome.Status != domain.TransferStatusFailed {
		t.Fatalf("expected FAILED, got %s", outcome.Status)
	}
	if outcome.Message != domain.MessageInsufficientFunds {
		t.Errorf("expected message %q, got %q", domain.MessageInsufficientFunds, outcome.Message)
	}
	if outcome.TransactionID != "" {
		t.Errorf("expected no transaction id, got %q", outcome.TransactionID)
	}

	assertBalance(t, f.accounts, "a", "50.00")
	assertBalance(t, f.accounts, "b", "0")
	if f.transfers.Count() != 0 {
		t.Errorf("expected no ledger records, got %d", f.transfers.Count())
	}

	tx := f.txManager.Transactions()[0]
	if tx.Committed || !tx.RolledBack {
		t.Error("expected transaction to be rolled back")
	}
	if f.metrics.Rejected[usecase.RejectReasonInsufficientFunds] != 1 {
		t.Error("expected insufficient funds rejection metric")
	}
}

func TestTransferUseCase_Transfer_ExactBalanceSucceeds(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "50.50"), account("b", "USD", "0"))

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "50.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Succeeded() {
		t.Fatalf("expected success, got %s", outcome.Message)
	}
	assertBalance(t, f.accounts, "a", "0")
}

func TestTransferUseCase_Transfer_MissingFxRate(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "1000.00"), account("b", "JPY", "0"))

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "10.00"))
	if err != nil {
		t.Fatalf("rejections must not be errors, got %v", err)
	}

	if outcome.Status != domain.TransferStatusFailed || outcome.Message != domain.MessageFxRateNotFound {
		t.Fatalf("unexpected outcome %s %q", outcome.Status, outcome.Message)
	}
	assertBalance(t, f.accounts, "a", "1000.00")
	assertBalance(t, f.accounts, "b", "0")
	if f.metrics.Rejected[usecase.RejectReasonFxRateNotFound] != 1 {
		t.Error("expected fx rate rejection metric")
	}
}

func TestTransferUseCase_Transfer_Rounding(t *testing.T) {
	f := newTransferFixture("0.015", account("a", "USD", "1000.00"), account("b", "EUR", "0"))
	f.rates.Set("USD", "EUR", "0.3333")

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "100.005"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 100.005 -> 100.01; 100.01 * 0.3333 = 33.333333 -> 33.33; fee 1.50015 -> 1.50
	assertMoney(t, "amount debited", outcome.AmountDebited, "100.01")
	assertMoney(t, "amount credited", outcome.AmountCredited, "33.33")
	assertMoney(t, "fee", outcome.Fee, "1.50")
	assertBalance(t, f.accounts, "a", "898.49")
	assertBalance(t, f.accounts, "b", "33.33")
}

func TestTransferUseCase_Transfer_Faults(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.TransferRequest
		wantErr error
		locks   bool
	}{
		{"zero amount", request("a", "b", "0"), domain.ErrInvalidAmount, false},
		{"negative amount", request("a", "b", "-1"), domain.ErrInvalidAmount, false},
		{"rounds to zero", request("a", "b", "0.004"), domain.ErrInvalidAmount, false},
		{"unknown source", request("zz", "b", "10"), domain.ErrAccountNotFound, true},
		{"unknown destination", request("a", "zz", "10"), domain.ErrAccountNotFound, true},
		{"same account", request("a", "a", "10"), domain.ErrSameAccount, true},
		{"same unknown account", request("zz", "zz", "10"), domain.ErrAccountNotFound, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransferFixture("0.01", account("a", "USD", "100.00"), account("b", "USD", "0"))

			outcome, err := f.uc.Transfer(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if outcome != nil {
				t.Errorf("expected nil outcome, got %+v", outcome)
			}

			assertBalance(t, f.accounts, "a", "100.00")
			assertBalance(t, f.accounts, "b", "0")
			if got := len(f.accounts.LockedIDs()) > 0; got != tt.locks {
				t.Errorf("expected locks taken = %v, got %v", tt.locks, got)
			}
			if f.metrics.Failed != 1 {
				t.Errorf("expected 1 failed metric, got %d", f.metrics.Failed)
			}
		})
	}
}

func TestTransferUseCase_Transfer_SameAccountLocksOnce(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "100.00"))

	_, err := f.uc.Transfer(context.Background(), request("a", "a", "10"))
	if !errors.Is(err, domain.ErrSameAccount) {
		t.Fatalf("expected ErrSameAccount, got %v", err)
	}
	if locked := f.accounts.LockedIDs(); len(locked) != 1 {
		t.Fatalf("expected a single lock, got %v", locked)
	}
}

func TestTransferUseCase_Transfer_LockOrderIndependentOfDirection(t *testing.T) {
	f := newTransferFixture("0", account("acc-1", "USD", "100.00"), account("acc-2", "USD", "100.00"))

	if _, err := f.uc.Transfer(context.Background(), request("acc-2", "acc-1", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.uc.Transfer(context.Background(), request("acc-1", "acc-2", "10")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	locked := f.accounts.LockedIDs()
	want := []string{"acc-1", "acc-2", "acc-1", "acc-2"}
	if len(locked) != len(want) {
		t.Fatalf("expected %v, got %v", want, locked)
	}
	for i := range want {
		if locked[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, locked)
		}
	}
}

func TestTransferUseCase_Transfer_StorageFailureCommitsNothing(t *testing.T) {
	storageErr := errors.New("disk on fire")

	tests := []struct {
		name  string
		setup func(f *transferFixture)
	}{
		{
			name: "begin fails",
			setup: func(f *transferFixture) {
				f.txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
					return nil, storageErr
				}
			},
		},
		{
			name: "ledger append fails",
			setup: func(f *transferFixture) {
				f.transfers.CreateFunc = func(ctx context.Context, tx usecase.Transaction, record *domain.TransferRecord) error {
					return storageErr
				}
			},
		},
		{
			name: "fee lookup fails",
			setup: func(f *transferFixture) {
				f.fees.GlobalFeePercentageFunc = func(ctx context.Context) (decimal.Decimal, error) {
					return decimal.Zero, storageErr
				}
			},
		},
		{
			name: "rate lookup fails",
			setup: func(f *transferFixture) {
				f.rates.ResolveFunc = func(ctx context.Context, from, to string) (decimal.Decimal, error) {
					return decimal.Zero, storageErr
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransferFixture("0.01", account("a", "USD", "100.00"), account("b", "USD", "0"))
			tt.setup(f)

			_, err := f.uc.Transfer(context.Background(), request("a", "b", "10"))
			if !errors.Is(err, storageErr) {
				t.Fatalf("expected storage error, got %v", err)
			}

			for _, tx := range f.txManager.Transactions() {
				if tx.Committed {
					t.Error("expected no commit")
				}
			}
		})
	}
}

func TestTransferUseCase_Transfer_CommitFailure(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "100.00"), account("b", "USD", "0"))
	commitErr := errors.New("serialization failure")
	f.txManager.BeginFunc = func(ctx context.Context) (usecase.Transaction, error) {
		return &mocks.MockTransaction{
			CommitFunc: func(ctx context.Context) error { return commitErr },
		}, nil
	}

	_, err := f.uc.Transfer(context.Background(), request("a", "b", "10"))
	if !errors.Is(err, commitErr) {
		t.Fatalf("expected commit error, got %v", err)
	}
}

func TestTransferUseCase_Transfer_UsesClock(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	accounts := mocks.NewMockAccountRepository(account("a", "USD", "100.00"), account("b", "USD", "0"))
	uc := usecase.NewTransferUseCase(
		mocks.NewMockTransactionManager(), accounts, mocks.NewMockTransferRepository(),
		mocks.NewMockRateOracle(), mocks.NewMockFeePolicy("0"), mocks.NewMockIDGenerator(),
		usecase.WithClock(func() time.Time { return at }),
	)

	outcome, err := uc.Transfer(context.Background(), request("a", "b", "1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !outcome.Timestamp.Equal(at) {
		t.Errorf("expected timestamp %v, got %v", at, outcome.Timestamp)
	}
}

func TestTransferUseCase_GetTransfer(t *testing.T) {
	f := newTransferFixture("0.01", account("a", "USD", "100.00"), account("b", "USD", "0"))

	_, err := f.uc.GetTransfer(context.Background(), "missing")
	if !errors.Is(err, domain.ErrTransferNotFound) {
		t.Fatalf("expected ErrTransferNotFound, got %v", err)
	}

	outcome, err := f.uc.Transfer(context.Background(), request("a", "b", "10"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	record, err := f.uc.GetTransfer(context.Background(), outcome.TransactionID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.FromAccountID != "a" || record.ToAccountID != "b" {
		t.Errorf("unexpected record %+v", record)
	}
}

func TestTransferUseCase_ListTransfersByAccount_ClampsPagination(t *testing.T) {
	f := newTransferFixture("0.01")

	var gotLimit, gotOffset int
	f.transfers.ListByAccountFunc = func(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferRecord, error) {
		gotLimit, gotOffset = limit, offset
		return nil, nil
	}

	_, err := f.uc.ListTransfersByAccount(context.Background(), usecase.ListTransfersByAccountInput{
		AccountID: "a", Limit: 1000, Offset: -5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotLimit != 100 || gotOffset != 0 {
		t.Errorf("expected 100/0, got %d/%d", gotLimit, gotOffset)
	}
}

func TestLockOrder(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"b", "a"}, []string{"a", "b"}},
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"a", "a"}, []string{"a"}},
	}

	for _, tt := range tests {
		got := usecase.LockOrder(tt.in...)
		if len(got) != len(tt.want) {
			t.Fatalf("LockOrder(%v) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("LockOrder(%v) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}
