package metrics

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/fxtransfer/internal/domain"
)

// Error type labels for TransferErrors.
const (
	ErrorTypeAccountNotFound = "account_not_found"
	ErrorTypeSameAccount     = "same_account"
	ErrorTypeInvalidRequest  = "invalid_request"
	ErrorTypeTimeout         = "timeout"
	ErrorTypeCanceled        = "canceled"
	ErrorTypeInternal        = "internal"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Transfer metrics
	TransfersCompleted prometheus.Counter
	TransfersRejected  *prometheus.CounterVec
	TransferErrors     *prometheus.CounterVec
	TransferDuration   prometheus.Histogram
	TransferAmount     prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec
	HTTPInFlight prometheus.Gauge

	// Rate limiting metrics
	RateLimitHits prometheus.Counter
}

// New creates all metrics and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		TransfersCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxtransfer_transfers_completed_total",
			Help: "Total number of committed transfers",
		}),
		TransfersRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtransfer_transfers_rejected_total",
				Help: "Total number of transfers rejected by business rules",
			},
			[]string{"reason"},
		),
		TransferErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtransfer_transfer_errors_total",
				Help: "Total number of transfers aborted by an error",
			},
			[]string{"error_type"},
		),
		TransferDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxtransfer_transfer_duration_seconds",
			Help:    "Duration of committed transfers",
			Buckets: prometheus.DefBuckets,
		}),
		TransferAmount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fxtransfer_transfer_amount",
			Help:    "Principal debited by committed transfers",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fxtransfer_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fxtransfer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		HTTPInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fxtransfer_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		}),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fxtransfer_rate_limit_hits_total",
			Help: "Total number of requests refused by the rate limiter",
		}),
	}
}

// TransferCompleted records a committed transfer.
func (m *Metrics) TransferCompleted(amount decimal.Decimal, duration time.Duration) {
	m.TransfersCompleted.Inc()
	m.TransferDuration.Observe(duration.Seconds())
	m.TransferAmount.Observe(amount.InexactFloat64())
}

// TransferRejected records a business rejection.
func (m *Metrics) TransferRejected(reason string) {
	m.TransfersRejected.WithLabelValues(reason).Inc()
}

// TransferFailed records an aborted transfer.
func (m *Metrics) TransferFailed(err error) {
	m.TransferErrors.WithLabelValues(ErrorType(err)).Inc()
}

// ErrorType maps a transfer error to a low-cardinality label.
func ErrorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return ErrorTypeAccountNotFound
	case errors.Is(err, domain.ErrSameAccount):
		return ErrorTypeSameAccount
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountTooSmall),
		errors.Is(err, domain.ErrAmountTooLarge):
		return ErrorTypeInvalidRequest
	case errors.Is(err, context.DeadlineExceeded):
		return ErrorTypeTimeout
	case errors.Is(err, context.Canceled):
		return ErrorTypeCanceled
	default:
		return ErrorTypeInternal
	}
}
