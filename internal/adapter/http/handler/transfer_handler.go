package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/fxtransfer/internal/adapter/http/dto"
	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

// TransferService defines the behavior needed by TransferHandler.
type TransferService interface {
	Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error)
	GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error)
	ListTransfersByAccount(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.TransferRecord, error)
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC TransferService
	retrier    usecase.Retrier
	timeout    time.Duration
}

// TransferHandlerOption configures a TransferHandler.
type TransferHandlerOption func(*TransferHandler)

// WithRetrier re-runs transfers that fail with a transient storage conflict.
func WithRetrier(r usecase.Retrier) TransferHandlerOption {
	return func(h *TransferHandler) { h.retrier = r }
}

// WithTimeout bounds each transfer, including the wait for account locks.
func WithTimeout(d time.Duration) TransferHandlerOption {
	return func(h *TransferHandler) { h.timeout = d }
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC TransferService, opts ...TransferHandlerOption) *TransferHandler {
	h := &TransferHandler{transferUC: transferUC}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Create executes a transfer. Committed and rejected transfers both return 200
// with the outcome; only faults produce an error status.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	transferReq, err := req.ToDomain()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid amount", err.Error())
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	var outcome *domain.TransferOutcome
	run := func() error {
		o, err := h.transferUC.Transfer(ctx, transferReq)
		if err != nil {
			return err
		}
		outcome = o
		return nil
	}

	if h.retrier != nil {
		err = h.retrier.Retry(ctx, run)
	} else {
		err = run()
	}

	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "transfer failed", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.OutcomeFromDomain(outcome))
}

// Get retrieves a ledger record by ID.
func (h *TransferHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing transfer ID", "")
		return
	}

	transfer, err := h.transferUC.GetTransfer(r.Context(), id)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transfer", err.Error())

		return
	}

	writeJSON(w, http.StatusOK, dto.TransferFromDomain(transfer))
}

// ListByAccount lists ledger records touching an account.
func (h *TransferHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	transfers, err := h.transferUC.ListTransfersByAccount(r.Context(), usecase.ListTransfersByAccountInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list transfers", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransfersFromDomain(transfers))
}
