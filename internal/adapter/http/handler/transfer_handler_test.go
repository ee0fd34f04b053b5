package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/adapter/http/dto"
	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

type transferServiceStub struct {
	transferFn func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error)
	getFn      func(ctx context.Context, id string) (*domain.TransferRecord, error)
	listFn     func(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.TransferRecord, error)
}

func (s *transferServiceStub) Transfer(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
	return s.transferFn(ctx, req)
}

func (s *transferServiceStub) GetTransfer(ctx context.Context, id string) (*domain.TransferRecord, error) {
	return s.getFn(ctx, id)
}

func (s *transferServiceStub) ListTransfersByAccount(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.TransferRecord, error) {
	return s.listFn(ctx, input)
}

// retryOnce re-runs the operation a single time when it fails with errConflict.
type retryOnce struct {
	calls int
}

var errConflict = errors.New("conflict")

func (r *retryOnce) Retry(ctx context.Context, operation func() error) error {
	r.calls++
	err := operation()
	if errors.Is(err, errConflict) {
		return operation()
	}
	return err
}

func postTransfer(t *testing.T, h *TransferHandler, req dto.CreateTransferRequest) *httptest.ResponseRecorder {
	t.Helper()

	body, _ := json.Marshal(req)
	httpReq := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, httpReq)

	return rec
}

func TestTransferHandler_Create_Success(t *testing.T) {
	var captured domain.TransferRequest

	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
			captured = req
			return domain.OutcomeFromRecord(&domain.TransferRecord{
				ID:             "tx-1",
				AmountDebited:  decimal.NewFromInt(100),
				AmountCredited: decimal.RequireFromString("50"),
				Fee:            decimal.NewFromInt(1),
				FromCurrency:   "USD",
				ToCurrency:     "GBP",
			}), nil
		},
	})

	rec := postTransfer(t, handler, dto.CreateTransferRequest{FromAccountID: "acc-1", ToAccountID: "acc-2", Amount: "100"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.FromAccountID != "acc-1" || captured.ToAccountID != "acc-2" || !captured.Amount.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	var resp dto.TransferOutcomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "SUCCESS" || resp.TransactionID != "tx-1" || resp.AmountCredited != "50.00" {
		t.Fatalf("unexpected outcome %+v", resp)
	}
}

func TestTransferHandler_Create_RejectionIsNotAnError(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
			return domain.RejectedOutcome(domain.MessageFxRateNotFound, time.Now()), nil
		},
	})

	rec := postTransfer(t, handler, dto.CreateTransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: "10"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransferOutcomeResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != "FAILED" || resp.Message != domain.MessageFxRateNotFound {
		t.Fatalf("unexpected outcome %+v", resp)
	}
}

func TestTransferHandler_Create_InvalidBody(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
			t.Fatal("Transfer should not be called")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewBufferString("{bad json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTransferHandler_Create_InvalidAmount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
			t.Fatal("Transfer should not be called on invalid amount")
			return nil, nil
		},
	})

	for _, amount := range []string{"abc", "0", "-5", ""} {
		rec := postTransfer(t, handler, dto.CreateTransferRequest{FromAccountID: "acc", ToAccountID: "acc2", Amount: amount})
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("amount %q: expected 400, got %d", amount, rec.Code)
		}
	}
}

func TestTransferHandler_Create_Faults(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"same account", domain.ErrSameAccount, http.StatusBadRequest},
		{"deadline", context.DeadlineExceeded, http.StatusGatewayTimeout},
		{"storage", errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewTransferHandler(&transferServiceStub{
				transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
					return nil, tt.err
				},
			})

			rec := postTransfer(t, handler, dto.CreateTransferRequest{FromAccountID: "acc", ToAccountID: "acc2", Amount: "10"})

			if rec.Code != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, rec.Code)
			}
		})
	}
}

func TestTransferHandler_Create_RetriesConflicts(t *testing.T) {
	attempts := 0
	retrier := &retryOnce{}

	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
			attempts++
			if attempts == 1 {
				return nil, errConflict
			}
			return domain.OutcomeFromRecord(&domain.TransferRecord{ID: "tx-2"}), nil
		},
	}, WithRetrier(retrier))

	rec := postTransfer(t, handler, dto.CreateTransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: "1"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 after retry, got %d: %s", rec.Code, rec.Body.String())
	}
	if attempts != 2 || retrier.calls != 1 {
		t.Fatalf("expected 2 attempts through 1 retrier call, got %d/%d", attempts, retrier.calls)
	}
}

func TestTransferHandler_Create_AppliesTimeout(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		transferFn: func(ctx context.Context, req domain.TransferRequest) (*domain.TransferOutcome, error) {
			deadline, ok := ctx.Deadline()
			if !ok {
				t.Fatal("expected transfer context to carry a deadline")
			}
			if time.Until(deadline) > time.Second {
				t.Fatalf("deadline too far away: %v", time.Until(deadline))
			}
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}, WithTimeout(20*time.Millisecond))

	rec := postTransfer(t, handler, dto.CreateTransferRequest{FromAccountID: "a", ToAccountID: "b", Amount: "1"})

	if rec.Code != http.StatusGatewayTimeout {
		t.Fatalf("expected 504, got %d", rec.Code)
	}
}

func TestTransferHandler_Get(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.TransferRecord, error) {
			return &domain.TransferRecord{ID: id, Status: domain.TransferStatusSuccess}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/transfers/tx-1", nil)
	req = setChiURLParam(req, "id", "tx-1")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "tx-1" {
		t.Fatalf("expected transfer ID tx-1, got %s", resp.ID)
	}
}

func TestTransferHandler_Get_NotFound(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.TransferRecord, error) {
			return nil, domain.ErrTransferNotFound
		},
	})

	req := setChiURLParam(httptest.NewRequest(http.MethodGet, "/transfers/nope", nil), "id", "nope")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTransferHandler_ListByAccount(t *testing.T) {
	handler := NewTransferHandler(&transferServiceStub{
		listFn: func(ctx context.Context, input usecase.ListTransfersByAccountInput) ([]*domain.TransferRecord, error) {
			if input.AccountID != "acc-1" || input.Limit != 5 || input.Offset != 1 {
				t.Fatalf("unexpected input %+v", input)
			}
			return []*domain.TransferRecord{{ID: "tx-1"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/transfers?limit=5&offset=1", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []dto.TransferResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(resp))
	}
}
