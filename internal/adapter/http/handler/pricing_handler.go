package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/adapter/http/dto"
	"github.com/iho/fxtransfer/internal/domain"
	"github.com/iho/fxtransfer/internal/usecase"
)

// FxRateService defines the behavior needed by FxRateHandler.
type FxRateService interface {
	SetRate(ctx context.Context, input usecase.SetRateInput) (*domain.FxRate, error)
	ListRates(ctx context.Context) ([]*domain.FxRate, error)
}

// FxRateHandler manages the FX rate table.
type FxRateHandler struct {
	rates FxRateService
}

// NewFxRateHandler creates a new FxRateHandler.
func NewFxRateHandler(rates FxRateService) *FxRateHandler {
	return &FxRateHandler{rates: rates}
}

// Set upserts the rate for a currency pair.
func (h *FxRateHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetFxRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid rate", err.Error())
		return
	}

	rate, err := h.rates.SetRate(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set fx rate", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FxRateFromDomain(rate))
}

// List returns every configured pair.
func (h *FxRateHandler) List(w http.ResponseWriter, r *http.Request) {
	rates, err := h.rates.ListRates(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list fx rates", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FxRatesFromDomain(rates))
}

// FeeService defines the behavior needed by FeeHandler.
type FeeService interface {
	GlobalFeePercentage(ctx context.Context) (decimal.Decimal, error)
	SetGlobalFeePercentage(ctx context.Context, pct decimal.Decimal) (*domain.FeeConfig, error)
}

// FeeHandler manages the global fee percentage.
type FeeHandler struct {
	fees FeeService
}

// NewFeeHandler creates a new FeeHandler.
func NewFeeHandler(fees FeeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// Get returns the fee fraction currently applied to transfers.
func (h *FeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	pct, err := h.fees.GlobalFeePercentage(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get fee", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FeeResponse{Percentage: pct.String()})
}

// Set replaces the global fee fraction.
func (h *FeeHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req dto.SetFeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	pct, err := req.ParsePercentage()
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid percentage", err.Error())
		return
	}

	cfg, err := h.fees.SetGlobalFeePercentage(r.Context(), pct)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to set fee", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.FeeResponse{
		Percentage: cfg.Percentage.String(),
		UpdatedAt:  &cfg.UpdatedAt,
	})
}
