package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iho/tripledger/internal/adapter/exchangerate"
	httpAdapter "github.com/iho/tripledger/internal/adapter/http"
	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/http/middleware"
	postgresRepo "github.com/iho/tripledger/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/tripledger/internal/adapter/repository/redis"
	"github.com/iho/tripledger/internal/infrastructure/config"
	"github.com/iho/tripledger/internal/infrastructure/eventbus"
	"github.com/iho/tripledger/internal/infrastructure/logger"
	"github.com/iho/tripledger/internal/infrastructure/metrics"
	"github.com/iho/tripledger/internal/infrastructure/postgres"
	"github.com/iho/tripledger/internal/infrastructure/redis"
	"github.com/iho/tripledger/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPoolWithConfig(ctx, postgres.PoolConfig{
		DatabaseURL:    cfg.DatabaseURL,
		MaxConns:       cfg.DatabaseMaxConns,
		MinConns:       cfg.DatabaseMinConns,
		ConnectTimeout: cfg.DatabaseTimeout,
	})
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	appLogger.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	appLogger.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(appLogger)
	userRepo := postgresRepo.NewUserRepository(pool)
	tripRepo := postgresRepo.NewTripRepository(pool)
	memberRepo := postgresRepo.NewMemberRepository(pool)
	expenseRepo := postgresRepo.NewExpenseRepository(pool)
	settlementRepo := postgresRepo.NewSettlementRepository(pool, retrier)
	activityRepo := postgresRepo.NewActivityRepository(pool)
	voteRepo := postgresRepo.NewVoteRepository(pool)
	documentRepo := postgresRepo.NewDocumentRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()

	// Event bus and metrics
	bus := eventbus.NewRedisBus(redisClient, appLogger)
	appMetrics := metrics.New()

	// Exchange rate provider
	rateClient := exchangerate.NewClient(cfg.RateAPIURL, nil)

	// Initialize use cases
	userUC := usecase.NewUserUseCase(userRepo, idGen)
	tripUC := usecase.NewTripUseCase(txManager, tripRepo, memberRepo, userRepo, idGen, bus, appLogger)
	expenseUC := usecase.NewExpenseUseCase(txManager, tripRepo, expenseRepo, idGen, bus, appMetrics, appLogger)
	balanceUC := usecase.NewBalanceUseCase(tripRepo, expenseRepo, settlementRepo, userRepo)
	settlementUC := usecase.NewSettlementUseCase(balanceUC, settlementRepo, idGen, bus, appMetrics, appLogger)
	activityUC := usecase.NewActivityUseCase(tripRepo, activityRepo, idGen, bus, appLogger)
	voteUC := usecase.NewVoteUseCase(tripRepo, voteRepo, idGen, bus, appLogger)
	documentUC := usecase.NewDocumentUseCase(tripRepo, documentRepo, idGen, bus, appLogger)
	currencyUC := usecase.NewCurrencyUseCase(rateClient, cache)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userUC)
	tripHandler := handler.NewTripHandler(tripUC)
	expenseHandler := handler.NewExpenseHandler(expenseUC)
	balanceHandler := handler.NewBalanceHandler(balanceUC)
	settlementHandler := handler.NewSettlementHandler(settlementUC)
	activityHandler := handler.NewActivityHandler(activityUC)
	voteHandler := handler.NewVoteHandler(voteUC)
	documentHandler := handler.NewDocumentHandler(documentUC)
	currencyHandler := handler.NewCurrencyHandler(currencyUC)
	eventsHandler := handler.NewEventsHandler(bus, appLogger)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go func() {
			ticker := time.NewTicker(10 * time.Minute)
			defer ticker.Stop()
			for range ticker.C {
				rateLimiter.Cleanup()
			}
		}()
	}

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		UserHandler:       userHandler,
		TripHandler:       tripHandler,
		ExpenseHandler:    expenseHandler,
		BalanceHandler:    balanceHandler,
		SettlementHandler: settlementHandler,
		ActivityHandler:   activityHandler,
		VoteHandler:       voteHandler,
		DocumentHandler:   documentHandler,
		CurrencyHandler:   currencyHandler,
		EventsHandler:     eventsHandler,
		HealthHandler:     healthHandler,
		IdempotencyStore:  idempotencyStore,
		IdempotencyTTL:    cfg.IdempotencyTTL,
		RateLimiter:       rateLimiter,
		Logger:            appLogger,
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}
