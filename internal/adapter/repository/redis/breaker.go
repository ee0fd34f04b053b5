package redis

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/iho/fxtransfer/internal/usecase"
)

// BreakerSettings tunes the circuit breaker around the cache.
type BreakerSettings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
}

// BreakerCache guards a usecase.Cache with a circuit breaker so that an
// unreachable Redis fails fast instead of stalling every pricing lookup.
// Cache misses do not count as failures.
type BreakerCache struct {
	next    usecase.Cache
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerCache wraps next with a circuit breaker.
func NewBreakerCache(next usecase.Cache, settings BreakerSettings, logger zerolog.Logger) *BreakerCache {
	failures := settings.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}

	return &BreakerCache{
		next: next,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "redis-cache",
			MaxRequests: 1,
			Timeout:     settings.OpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= failures
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				logger.Warn().
					Str("breaker", name).
					Str("from", from.String()).
					Str("to", to.String()).
					Msg("cache circuit breaker state changed")
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, usecase.ErrCacheMiss)
			},
		}),
	}
}

// Get retrieves a value by key through the breaker.
func (c *BreakerCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.breaker.Execute(func() (interface{}, error) {
		return c.next.Get(ctx, key)
	})
	if err != nil {
		return "", err
	}

	return val.(string), nil
}

// Set stores a value through the breaker.
func (c *BreakerCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.next.Set(ctx, key, value, ttl)
	})
	return err
}

// Delete removes a key through the breaker.
func (c *BreakerCache) Delete(ctx context.Context, key string) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.next.Delete(ctx, key)
	})
	return err
}

// State reports the breaker state: "closed", "half-open" or "open".
func (c *BreakerCache) State() string {
	return c.breaker.State().String()
}
