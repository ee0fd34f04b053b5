package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/fxtransfer/internal/domain"
)

// TransferUseCase moves money between two accounts as one atomic unit of work.
type TransferUseCase struct {
	txManager    TransactionManager
	accountRepo  AccountRepository
	transferRepo TransferRepository
	rates        RateOracle
	fees         FeePolicy
	idGen        IDGenerator
	logger       zerolog.Logger
	metrics      MetricsRecorder
	now          func() time.Time
}

// TransferOption configures optional TransferUseCase collaborators.
type TransferOption func(*TransferUseCase)

// WithLogger sets the logger used for rejections and faults.
func WithLogger(logger zerolog.Logger) TransferOption {
	return func(uc *TransferUseCase) { uc.logger = logger }
}

// WithMetrics sets the recorder notified after every transfer attempt.
func WithMetrics(m MetricsRecorder) TransferOption {
	return func(uc *TransferUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// WithClock overrides the time source used for ledger timestamps.
func WithClock(now func() time.Time) TransferOption {
	return func(uc *TransferUseCase) { uc.now = now }
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	transferRepo TransferRepository,
	rates RateOracle,
	fees FeePolicy,
	idGen IDGenerator,
	opts ...TransferOption,
) *TransferUseCase {
	uc := &TransferUseCase{
		txManager:    txManager,
		accountRepo:  accountRepo,
		transferRepo: transferRepo,
		rates:        rates,
		fees:         fees,
		idGen:        idGen,
		logger:       zerolog.Nop(),
		metrics:      nopMetrics{},
		now:          func() time.Time { return time.Now().UTC() },
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// Transfer debits the source account by the requested amount plus the fee and
// credits the destination with the converted amount.
//
// Business rejections (insufficient funds, unknown FX pair) come back as a
// FAILED outcome with a nil error and leave every balance untouched. Errors are
// reserved for faults: unknown account, same account, invalid amount, or a
// storage failure. In both cases nothing is committed.
func (uc *TransferUseCase) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
	start := time.Now()

	outcome, err := uc.transfer(ctx, req)
	if err != nil {
		uc.metrics.TransferFailed(err)
		uc.logger.Error().
			Err(err).
			Str("from_account_id", req.FromAccountID).
			Str("to_account_id", req.ToAccountID).
			Str("amount", req.Amount.String()).
			Msg("transfer aborted")

		return nil, err
	}

	if outcome.Succeeded() {
		uc.metrics.TransferCompleted(outcome.AmountDebited, time.Since(start))
		uc.logger.Info().
			Str("transaction_id", outcome.TransactionID).
			Str("from_account_id", req.FromAccountID).
			Str("to_account_id", req.ToAccountID).
			Str("amount_debited", domain.FormatMoney(outcome.AmountDebited)).
			Str("amount_credited", domain.FormatMoney(outcome.AmountCredited)).
			Str("fee", domain.FormatMoney(outcome.Fee)).
			Msg("transfer committed")
	}

	return outcome, nil
}

func (uc *TransferUseCase) transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
	// 0. Validate inputs before starting transaction
	if err := req.Validate(); err != nil {
		return nil, err
	}

	amount := domain.RoundMoney(req.Amount)
	if !amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}

	// 1. Begin transaction; every exit path before Commit rolls back and releases locks
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// 2. Lock accounts in sorted order (DEADLOCK PREVENTION)
	accounts, err := uc.lockAccounts(ctx, tx, req.FromAccountID, req.ToAccountID)
	if err != nil {
		return nil, err
	}

	if req.FromAccountID == req.ToAccountID {
		return nil, domain.ErrSameAccount
	}

	fromAccount := accounts[req.FromAccountID]
	toAccount := accounts[req.ToAccountID]

	// 3. Price the transfer
	rate, err := uc.rates.Resolve(ctx, fromAccount.Currency, toAccount.Currency)
	if errors.Is(err, domain.ErrFxRateNotFound) {
		uc.reject(req, RejectReasonFxRateNotFound, err)
		return uc.rejected(domain.MessageFxRateNotFound, fromAccount, toAccount), nil
	}
	if err != nil {
		return nil, fmt.Errorf("resolve fx rate: %w", err)
	}

	feePercentage, err := uc.fees.GlobalFeePercentage(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve fee percentage: %w", err)
	}

	credited := domain.ConvertAmount(amount, rate)
	fee := domain.CalculateFee(amount, feePercentage)
	totalDebit := amount.Add(fee)

	// 4. Check funds
	if err := fromAccount.ValidateDebit(totalDebit); err != nil {
		uc.reject(req, RejectReasonInsufficientFunds, err)
		return uc.rejected(domain.MessageInsufficientFunds, fromAccount, toAccount), nil
	}

	// 5. Mutate balances and append the ledger record in the same transaction
	now := uc.now()

	if err := uc.accountRepo.UpdateBalance(ctx, tx, fromAccount.ID, fromAccount.ApplyDebit(totalDebit), now); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateBalance(ctx, tx, toAccount.ID, toAccount.ApplyCredit(credited), now); err != nil {
		return nil, err
	}

	record := &domain.TransferRecord{
		ID:             uc.idGen.Generate(),
		FromAccountID:  fromAccount.ID,
		ToAccountID:    toAccount.ID,
		AmountDebited:  amount,
		AmountCredited: credited,
		Fee:            fee,
		FromCurrency:   fromAccount.Currency,
		ToCurrency:     toAccount.Currency,
		Status:         domain.TransferStatusSuccess,
		CreatedAt:      now,
	}

	if err := uc.transferRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}

	// 6. Commit transaction
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transfer: %w", err)
	}

	return domain.OutcomeFromRecord(record), nil
}

// lockAccounts locks the distinct ids in ascending order so that transfers in
// opposite directions between the same pair always contend on the same lock first.
func (uc *TransferUseCase) lockAccounts(ctx context.Context, tx Transaction, fromID, toID string) (map[string]*domain.Account, error) {
	accountIDs := LockOrder(fromID, toID)

	accounts := make(map[string]*domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return nil, err
		}

		accounts[id] = account
	}

	return accounts, nil
}

// LockOrder returns the distinct account ids in the order their locks must be taken.
func LockOrder(ids ...string) []string {
	seen := make(map[string]bool, len(ids))

	ordered := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			ordered = append(ordered, id)
		}
	}

	sort.Strings(ordered)

	return ordered
}

func (uc *TransferUseCase) rejected(message string, from, to *domain.Account) *domain.TransferOutcome {
	outcome := domain.RejectedOutcome(message, uc.now())
	outcome.FromCurrency = from.Currency
	outcome.ToCurrency = to.Currency

	return outcome
}

func (uc *TransferUseCase) reject(req domain.TransferRequest, reason string, err error) {
	uc.metrics.TransferRejected(reason)
	uc.logger.Warn().
		Err(err).
		Str("reason", reason).
		Str("from_account_id", req.FromAccountID).
		Str("to_account_id", req.ToAccountID).
		Str("amount", req.Amount.String()).
		Msg("transfer rejected")
}

// GetTransfer retrieves a ledger record by ID.
func (uc *TransferUseCase) GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error) {
	return uc.transferRepo.GetByID(ctx, id)
}

// ListTransfersByAccountInput represents input for listing transfers.
type ListTransfersByAccountInput struct {
	AccountID string
	Limit     int
	Offset    int
}

// ListTransfersByAccount lists ledger records where the account is source or destination.
func (uc *TransferUseCase) ListTransfersByAccount(ctx context.Context, input ListTransfersByAccountInput) ([]*domain.TransferRecord, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.transferRepo.ListByAccount(ctx, input.AccountID, limit, offset)
}
