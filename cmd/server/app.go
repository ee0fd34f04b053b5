package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	httpAdapter "github.com/iho/fxtransfer/internal/adapter/http"
	"github.com/iho/fxtransfer/internal/adapter/http/handler"
	"github.com/iho/fxtransfer/internal/adapter/http/middleware"
	"github.com/iho/fxtransfer/internal/adapter/repository/memory"
	postgresRepo "github.com/iho/fxtransfer/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/fxtransfer/internal/adapter/repository/redis"
	"github.com/iho/fxtransfer/internal/infrastructure/config"
	"github.com/iho/fxtransfer/internal/infrastructure/metrics"
	"github.com/iho/fxtransfer/internal/infrastructure/postgres"
	"github.com/iho/fxtransfer/internal/infrastructure/redis"
	"github.com/iho/fxtransfer/internal/usecase"
)

const rateLimiterCleanupInterval = time.Hour

// app is the fully wired HTTP service.
type app struct {
	Handler http.Handler
	closers []func()
}

// Close releases every connection opened by newApp, newest first.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// storage groups the repositories backing one storage driver.
type storage struct {
	txManager usecase.TransactionManager
	accounts  usecase.AccountRepository
	transfers usecase.TransferRepository
	rates     usecase.FxRateRepository
	fees      usecase.FeeConfigRepository
	pinger    handler.Pinger
	retrier   usecase.Retrier
}

func newApp(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*app, error) {
	a := &app{}

	store, err := openStorage(ctx, cfg, logger, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	deps := []handler.Dependency{{Name: cfg.StorageDriver, Pinger: store.pinger}}

	// Pricing cache is optional
	var cache usecase.Cache
	if cfg.RedisURL != "" {
		redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		a.closers = append(a.closers, func() { redisClient.Close() })
		logger.Info().Msg("connected to redis")

		cache = redisRepo.NewBreakerCache(redisRepo.NewCache(redisClient), redisRepo.BreakerSettings{
			ConsecutiveFailures: cfg.CacheBreakerFailures,
			OpenTimeout:         cfg.CacheBreakerOpenDuration,
		}, logger)
		deps = append(deps, handler.Dependency{
			Name:   "redis",
			Pinger: handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		})
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	// Initialize use cases
	rates := usecase.NewFxRateService(store.rates, cache, cfg.RateCacheTTL, logger)
	fees := usecase.NewFeePolicyService(store.fees, cache, cfg.RateCacheTTL, logger)
	accountUC := usecase.NewAccountUseCase(store.accounts, postgresRepo.NewULIDGenerator())
	transferUC := usecase.NewTransferUseCase(
		store.txManager,
		store.accounts,
		store.transfers,
		rates,
		fees,
		postgresRepo.NewUUIDGenerator(),
		usecase.WithLogger(logger),
		usecase.WithMetrics(m),
	)

	transferOpts := []handler.TransferHandlerOption{handler.WithTimeout(cfg.TransferTimeout)}
	if store.retrier != nil {
		transferOpts = append(transferOpts, handler.WithRetrier(store.retrier))
	}

	routerCfg := httpAdapter.RouterConfig{
		AccountHandler:  handler.NewAccountHandler(accountUC),
		TransferHandler: handler.NewTransferHandler(transferUC, transferOpts...),
		FxRateHandler:   handler.NewFxRateHandler(rates),
		FeeHandler:      handler.NewFeeHandler(fees),
		HealthHandler:   handler.NewHealthHandler(deps...),
		Logger:          logger,
		Metrics:         m,
		MetricsHandler:  promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
	}

	if cfg.RateLimitRPS > 0 {
		rl := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, middleware.WithHitCounter(m.RateLimitHits))
		go rl.RunCleanup(ctx, rateLimiterCleanupInterval)
		routerCfg.RateLimiter = rl
	}

	a.Handler = httpAdapter.NewRouter(routerCfg)

	return a, nil
}

func openStorage(ctx context.Context, cfg *config.Config, logger zerolog.Logger, a *app) (*storage, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn().Msg("using in-memory storage; balances are lost on restart")

		store := memory.NewStore()
		return &storage{
			txManager: memory.NewTxManager(store),
			accounts:  memory.NewAccountRepository(store),
			transfers: memory.NewTransferRepository(store),
			rates:     memory.NewFxRateRepository(store),
			fees:      memory.NewFeeConfigRepository(store),
			pinger:    store,
		}, nil

	case config.StorageDriverPostgres:
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}

		connectCtx, cancel := context.WithTimeout(ctx, cfg.DatabaseTimeout)
		defer cancel()

		pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		a.closers = append(a.closers, pool.Close)
		logger.Info().Msg("connected to postgres")

		return &storage{
			txManager: postgresRepo.NewTxManager(pool),
			accounts:  postgresRepo.NewAccountRepository(pool),
			transfers: postgresRepo.NewTransferRepository(pool),
			rates:     postgresRepo.NewFxRateRepository(pool),
			fees:      postgresRepo.NewFeeConfigRepository(pool),
			pinger:    pool,
			retrier:   postgresRepo.NewRetrier(logger),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}
