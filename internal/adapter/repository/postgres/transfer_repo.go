package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/infrastructure/postgres/generated"
	"github.com/iho/fxtransfer/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	queries *generated.Queries
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(pool *pgxpool.Pool) *TransferRepository {
	return newTransferRepositoryWithDB(pool)
}

func newTransferRepositoryWithDB(db generated.DBTX) *TransferRepository {
	return &TransferRepository{queries: generated.New(db)}
}

// Create appends a ledger record inside tx.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransferRecord) error {
	t, err := pgxTx(tx)
	if err != nil {
		return err
	}

	return t.queries().CreateTransfer(ctx, generated.CreateTransferParams{
		ID:             record.ID,
		FromAccountID:  record.FromAccountID,
		ToAccountID:    record.ToAccountID,
		FromCurrency:   record.FromCurrency,
		ToCurrency:     record.ToCurrency,
		Status:         string(record.Status),
		AmountDebited:  decimalToNumeric(record.AmountDebited),
		AmountCredited: decimalToNumeric(record.AmountCredited),
		Fee:            decimalToNumeric(record.Fee),
		CreatedAt:      timeToPgTimestamptz(record.CreatedAt),
	})
}

// GetByID retrieves a transfer by ID.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.TransferRecord, error) {
	row, err := r.queries.GetTransferByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransferNotFound
		}

		return nil, err
	}

	return rowToTransfer(row), nil
}

// ListByAccount lists transfers for an account, newest first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferRecord, error) {
	rows, err := r.queries.ListTransfersByAccount(ctx, generated.ListTransfersByAccountParams{
		AccountID:  accountID,
		PageLimit:  int32(limit),
		PageOffset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	transfers := make([]*domain.TransferRecord, 0, len(rows))
	for _, row := range rows {
		transfers = append(transfers, rowToTransfer(row))
	}

	return transfers, nil
}

func rowToTransfer(row generated.Transfer) *domain.TransferRecord {
	return &domain.TransferRecord{
		ID:             row.ID,
		FromAccountID:  row.FromAccountID,
		ToAccountID:    row.ToAccountID,
		FromCurrency:   row.FromCurrency,
		ToCurrency:     row.ToCurrency,
		Status:         domain.TransferStatus(row.Status),
		AmountDebited:  numericToDecimal(row.AmountDebited),
		AmountCredited: numericToDecimal(row.AmountCredited),
		Fee:            numericToDecimal(row.Fee),
		CreatedAt:      row.CreatedAt.Time,
	}
}
