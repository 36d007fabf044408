package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/iho/tripledger/internal/adapter/http/handler"
	"github.com/iho/tripledger/internal/adapter/http/middleware"
	"github.com/iho/tripledger/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	UserHandler       *handler.UserHandler
	TripHandler       *handler.TripHandler
	ExpenseHandler    *handler.ExpenseHandler
	BalanceHandler    *handler.BalanceHandler
	SettlementHandler *handler.SettlementHandler
	ActivityHandler   *handler.ActivityHandler
	VoteHandler       *handler.VoteHandler
	DocumentHandler   *handler.DocumentHandler
	CurrencyHandler   *handler.CurrencyHandler
	EventsHandler     *handler.EventsHandler
	HealthHandler     *handler.HealthHandler
	IdempotencyStore  usecase.IdempotencyStore
	IdempotencyTTL    time.Duration
	RateLimiter       *middleware.RateLimiter
	Logger            zerolog.Logger
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggingMiddleware(cfg.Logger).Wrap)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore, cfg.IdempotencyTTL)
			r.Use(idempotencyMiddleware.Wrap)
		}

		// Users
		r.Route("/users", func(r chi.Router) {
			r.Post("/", cfg.UserHandler.Create)
			r.Get("/{id}", cfg.UserHandler.Get)
		})

		// Trips and their nested resources
		r.Route("/trips", func(r chi.Router) {
			r.Post("/", cfg.TripHandler.Create)
			r.Get("/", cfg.TripHandler.List)
			r.Get("/{id}", cfg.TripHandler.Get)

			r.Post("/{id}/members", cfg.TripHandler.AddMember)
			r.Get("/{id}/members", cfg.TripHandler.ListMembers)

			r.Post("/{id}/expenses", cfg.ExpenseHandler.Create)
			r.Get("/{id}/expenses", cfg.ExpenseHandler.List)

			r.Get("/{id}/balances", cfg.BalanceHandler.Get)

			r.Get("/{id}/settlements/plan", cfg.SettlementHandler.GetPlan)
			r.Post("/{id}/settlements", cfg.SettlementHandler.Create)
			r.Get("/{id}/settlements", cfg.SettlementHandler.List)

			r.Post("/{id}/activities", cfg.ActivityHandler.Create)
			r.Get("/{id}/activities", cfg.ActivityHandler.List)

			r.Post("/{id}/votes", cfg.VoteHandler.Create)
			r.Get("/{id}/votes", cfg.VoteHandler.List)

			r.Post("/{id}/documents", cfg.DocumentHandler.Create)
			r.Get("/{id}/documents", cfg.DocumentHandler.List)

			r.Get("/{id}/events", cfg.EventsHandler.Stream)
		})

		// Activities addressed directly
		r.Route("/activities", func(r chi.Router) {
			r.Put("/{activityID}", cfg.ActivityHandler.Update)
			r.Delete("/{activityID}", cfg.ActivityHandler.Delete)
		})

		// Votes addressed directly
		r.Route("/votes", func(r chi.Router) {
			r.Post("/{voteID}/responses", cfg.VoteHandler.Respond)
		})

		// Currency conversion
		r.Get("/currency/convert", cfg.CurrencyHandler.Convert)
	})

	return r
}
