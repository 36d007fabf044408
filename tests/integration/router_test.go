package integration

import (
	"context"
	"net/http"
	"os"
	"testing"

	"github.com/rs/zerolog"

	adaptershttp "github.com/iho/tripledger/internal/adapter/http"
	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/repository/postgres"
	redisrepo "github.com/iho/tripledger/internal/adapter/repository/redis"
	"github.com/iho/tripledger/internal/infrastructure/eventbus"
	infraredis "github.com/iho/tripledger/internal/infrastructure/redis"
	"github.com/iho/tripledger/internal/usecase"
	"github.com/iho/tripledger/tests/testutil"
)

// newTestRouter wires the full HTTP stack against the test database
// and a live Redis, mirroring production wiring.
func newTestRouter(t *testing.T, testDB *testutil.TestDB) http.Handler {
	t.Helper()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	ctx := context.Background()

	redisClient, err := infraredis.NewClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("failed to connect to redis: %v", err)
	}
	t.Cleanup(func() { redisClient.Close() })

	pool := testDB.Pool
	logger := zerolog.Nop()

	txManager := postgres.NewTxManager(pool)
	retrier := postgres.NewRetrier(logger)
	userRepo := postgres.NewUserRepository(pool)
	tripRepo := postgres.NewTripRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	expenseRepo := postgres.NewExpenseRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool, retrier)
	activityRepo := postgres.NewActivityRepository(pool)
	voteRepo := postgres.NewVoteRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	idGen := postgres.NewULIDGenerator()

	bus := eventbus.NewRedisBus(redisClient, logger)

	userUC := usecase.NewUserUseCase(userRepo, idGen)
	tripUC := usecase.NewTripUseCase(txManager, tripRepo, memberRepo, userRepo, idGen, bus, logger)
	expenseUC := usecase.NewExpenseUseCase(txManager, tripRepo, expenseRepo, idGen, bus, nil, logger)
	balanceUC := usecase.NewBalanceUseCase(tripRepo, expenseRepo, settlementRepo, userRepo)
	settlementUC := usecase.NewSettlementUseCase(balanceUC, settlementRepo, idGen, bus, nil, logger)
	activityUC := usecase.NewActivityUseCase(tripRepo, activityRepo, idGen, bus, logger)
	voteUC := usecase.NewVoteUseCase(tripRepo, voteRepo, idGen, bus, logger)
	documentUC := usecase.NewDocumentUseCase(tripRepo, documentRepo, idGen, bus, logger)

	return adaptershttp.NewRouter(adaptershttp.RouterConfig{
		UserHandler:       handler.NewUserHandler(userUC),
		TripHandler:       handler.NewTripHandler(tripUC),
		ExpenseHandler:    handler.NewExpenseHandler(expenseUC),
		BalanceHandler:    handler.NewBalanceHandler(balanceUC),
		SettlementHandler: handler.NewSettlementHandler(settlementUC),
		ActivityHandler:   handler.NewActivityHandler(activityUC),
		VoteHandler:       handler.NewVoteHandler(voteUC),
		DocumentHandler:   handler.NewDocumentHandler(documentUC),
		CurrencyHandler:   handler.NewCurrencyHandler(nil),
		EventsHandler:     handler.NewEventsHandler(bus, logger),
		HealthHandler:     handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:  redisrepo.NewIdempotencyStore(redisClient),
		Logger:            logger,
	})
}
