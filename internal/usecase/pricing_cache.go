package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ErrCacheRefresh is returned when a pricing write reached storage but the
// cached copy could be neither replaced nor removed.
var ErrCacheRefresh = errors.New("cache refresh failed")

// decimalCache stores decimals as strings in an optional Cache.
// Read failures are logged and treated as misses.
//
// Each key carries a generation bumped by every write. A read-through fill
// only lands if no write happened since the read began, so a slow reader
// cannot put a superseded value back. Keys whose refresh failed are marked
// stale and bypass the cache until a fill succeeds.
type decimalCache struct {
	cache  Cache
	ttl    time.Duration
	logger zerolog.Logger

	mu    *sync.Mutex
	gens  map[string]uint64
	stale map[string]bool
}

func newDecimalCache(cache Cache, ttl time.Duration, logger zerolog.Logger) decimalCache {
	if ttl <= 0 {
		ttl = DefaultRateCacheTTL
	}

	return decimalCache{
		cache:  cache,
		ttl:    ttl,
		logger: logger,
		mu:     &sync.Mutex{},
		gens:   make(map[string]uint64),
		stale:  make(map[string]bool),
	}
}

// get returns the cached value and the generation to pass to fill on a miss.
func (c decimalCache) get(ctx context.Context, key string) (decimal.Decimal, uint64, bool) {
	if c.cache == nil {
		return decimal.Zero, 0, false
	}

	c.mu.Lock()
	gen, stale := c.gens[key], c.stale[key]
	c.mu.Unlock()

	if stale {
		return decimal.Zero, gen, false
	}

	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			c.logger.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		return decimal.Zero, gen, false
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("discarding malformed cache entry")
		return decimal.Zero, gen, false
	}

	return value, gen, true
}

// fill stores a value read from storage unless a write superseded it.
func (c decimalCache) fill(ctx context.Context, key string, gen uint64, value decimal.Decimal) {
	if c.cache == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gens[key] != gen {
		return
	}

	if err := c.cache.Set(ctx, key, value.String(), c.ttl); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		return
	}

	delete(c.stale, key)
}

// refresh replaces the cached value after a write to storage, falling back
// to removing it. If both fail the key is marked stale and an error returned.
func (c decimalCache) refresh(ctx context.Context, key string, value decimal.Decimal) error {
	if c.cache == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.gens[key]++

	setErr := c.cache.Set(ctx, key, value.String(), c.ttl)
	if setErr == nil {
		delete(c.stale, key)
		return nil
	}

	delErr := c.cache.Delete(ctx, key)
	if delErr == nil {
		delete(c.stale, key)
		return nil
	}

	c.stale[key] = true
	c.logger.Error().
		AnErr("set_error", setErr).
		AnErr("delete_error", delErr).
		Str("key", key).
		Msg("cache refresh failed")

	return fmt.Errorf("%w: %s: %w", ErrCacheRefresh, key, errors.Join(setErr, delErr))
}
