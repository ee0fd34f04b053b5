package memory

import (
	"context"

	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

// TransferRepository implements usecase.TransferRepository.
type TransferRepository struct {
	store *Store
}

// NewTransferRepository creates a new TransferRepository.
func NewTransferRepository(store *Store) *TransferRepository {
	return &TransferRepository{store: store}
}

// Create stages a ledger record in tx.
func (r *TransferRepository) Create(ctx context.Context, tx usecase.Transaction, record *domain.TransferRecord) error {
	t, err := asTx(tx)
	if err != nil {
		return err
	}
	return t.stageRecord(record)
}

// GetByID retrieves a committed ledger record.
func (r *TransferRepository) GetByID(ctx context.Context, id string) (*domain.TransferRecord, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.transfers[id]
	if !ok {
		return nil, domain.ErrTransferNotFound
	}
	cp := *record
	return &cp, nil
}

// ListByAccount returns records touching the account, newest first.
func (r *TransferRepository) ListByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.TransferRecord, error) {
	s := r.store
	s.mu.RLock()
	var matched []*domain.TransferRecord
	for i := len(s.ledger) - 1; i >= 0; i-- {
		rec := s.ledger[i]
		if rec.FromAccountID == accountID || rec.ToAccountID == accountID {
			cp := *rec
			matched = append(matched, &cp)
		}
	}
	s.mu.RUnlock()

	return paginate(matched, limit, offset), nil
}
