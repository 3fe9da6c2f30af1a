package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/banklink/banklink/internal/adapter/http/handler"
	"github.com/banklink/banklink/internal/adapter/http/middleware"
	"github.com/banklink/banklink/internal/domain"
	"github.com/banklink/banklink/internal/infrastructure/auth"
	"github.com/banklink/banklink/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	AccountHandler        *handler.AccountHandler
	CustomerHandler       *handler.CustomerHandler
	TransferHandler       *handler.TransferHandler
	MovementHandler       *handler.MovementHandler
	BankHandler           *handler.BankHandler
	ReconciliationHandler *handler.ReconciliationHandler
	AuthHandler           *handler.AuthHandler
	HealthHandler         *handler.HealthHandler
	IdempotencyStore      usecase.IdempotencyStore
	JWTManager            *auth.JWTManager
	AuthEnabled           bool
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Metrics)
	r.Use(middleware.Recovery)

	// Operational endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		if cfg.AuthEnabled && cfg.AuthHandler != nil {
			r.Post("/auth/login", cfg.AuthHandler.Login)
		}

		r.Group(func(r chi.Router) {
			// Idempotency middleware for mutating requests
			if cfg.IdempotencyStore != nil {
				idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
				r.Use(idempotencyMiddleware.Wrap)
			}

			if cfg.AuthEnabled && cfg.JWTManager != nil {
				r.Use(middleware.AuthMiddleware(cfg.JWTManager))

				r.Get("/auth/me", cfg.AuthHandler.GetCurrentUser)
				r.With(middleware.RequireRole(domain.RoleAdmin)).Post("/users", cfg.AuthHandler.CreateUser)
			}

			// Customers
			r.Route("/customers", func(r chi.Router) {
				r.Post("/", cfg.CustomerHandler.Create)
				r.Get("/", cfg.CustomerHandler.List)
				r.Get("/{id}", cfg.CustomerHandler.Get)
				r.Get("/{id}/accounts", cfg.CustomerHandler.ListAccounts)
				r.Delete("/{id}", cfg.CustomerHandler.Delete)
			})

			// Accounts
			r.Route("/accounts", func(r chi.Router) {
				r.Post("/", cfg.AccountHandler.Create)
				r.Get("/", cfg.AccountHandler.List)
				r.Get("/number/{number}", cfg.AccountHandler.GetByNumber)
				r.Get("/{id}", cfg.AccountHandler.Get)
				r.Put("/{id}/status", cfg.AccountHandler.UpdateStatus)
				r.Delete("/{id}", cfg.AccountHandler.Delete)

				r.Post("/{id}/deposits", cfg.TransferHandler.Deposit)
				r.Post("/{id}/withdrawals", cfg.TransferHandler.Withdraw)

				r.Get("/{id}/movements", cfg.MovementHandler.ListByAccount)
				r.Get("/{id}/balance", cfg.MovementHandler.ComputeBalance)
				r.Get("/{id}/transfers", cfg.TransferHandler.ListByAccount)
				r.Get("/{id}/reconciliation", cfg.ReconciliationHandler.CheckAccount)
			})

			// Transfers
			r.Route("/transfers", func(r chi.Router) {
				r.Post("/", cfg.TransferHandler.Create)
				r.Post("/external", cfg.TransferHandler.CreateExternal)
				r.Post("/receive", cfg.TransferHandler.Receive)
				r.Get("/{id}", cfg.TransferHandler.Get)
			})

			// Movements
			r.Route("/movements", func(r chi.Router) {
				r.Get("/{id}", cfg.MovementHandler.Get)
				r.Put("/{id}/description", cfg.MovementHandler.UpdateDescription)
			})

			// External banks
			r.Route("/banks", func(r chi.Router) {
				r.Post("/", cfg.BankHandler.Create)
				r.Get("/", cfg.BankHandler.List)
				r.Get("/{id}", cfg.BankHandler.Get)
				r.Put("/{id}", cfg.BankHandler.Update)
				r.Delete("/{id}", cfg.BankHandler.Delete)
			})

			// Reconciliation
			r.Get("/reconciliation", cfg.ReconciliationHandler.CheckAll)
		})
	})

	return r
}
