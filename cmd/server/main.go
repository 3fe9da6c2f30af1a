package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/banklink/banklink/internal/adapter/gateway"
	httpAdapter "github.com/banklink/banklink/internal/adapter/http"
	"github.com/banklink/banklink/internal/adapter/http/handler"
	postgresRepo "github.com/banklink/banklink/internal/adapter/repository/postgres"
	redisRepo "github.com/banklink/banklink/internal/adapter/repository/redis"
	"github.com/banklink/banklink/internal/infrastructure/auth"
	"github.com/banklink/banklink/internal/infrastructure/config"
	"github.com/banklink/banklink/internal/infrastructure/logger"
	"github.com/banklink/banklink/internal/infrastructure/postgres"
	"github.com/banklink/banklink/internal/infrastructure/redis"
	"github.com/banklink/banklink/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	log.Logger = logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Repositories and stores
	txManager := postgresRepo.NewTxManager(pool)
	retrier := postgresRepo.NewRetrier(log.Logger)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	movementRepo := postgresRepo.NewMovementRepository(pool)
	transferRepo := postgresRepo.NewTransferRepository(pool)
	bankRepo := postgresRepo.NewBankRepository(pool)
	customerRepo := postgresRepo.NewCustomerRepository(pool)
	userRepo := postgresRepo.NewUserRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	numberGen := postgresRepo.NewAccountNumberGenerator()

	// External bank gateway
	bankGateway := gateway.NewHTTPGateway(cfg.GatewayTimeout, log.Logger)

	// Use cases
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, movementRepo, customerRepo, idGen, numberGen)
	transferUC := usecase.NewTransferUseCase(txManager, retrier, accountRepo, transferRepo, movementRepo, bankRepo, bankGateway, idGen, usecase.TransferConfig{
		OriginBankName: cfg.OriginBankName,
		GatewayTimeout: cfg.GatewayTimeout,
	})
	movementUC := usecase.NewMovementUseCase(movementRepo, accountRepo)
	reconciliationUC := usecase.NewReconciliationUseCase(accountRepo, movementRepo)
	bankUC := usecase.NewBankUseCase(bankRepo, transferRepo, cache, idGen)
	customerUC := usecase.NewCustomerUseCase(customerRepo, accountRepo, idGen)
	userUC := usecase.NewUserUseCase(userRepo, idGen)

	// Authentication
	var jwtManager *auth.JWTManager
	if cfg.AuthEnabled {
		if cfg.JWTSecret == "" {
			log.Fatal().Msg("AUTH_ENABLED requires JWT_SECRET")
		}
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	}

	// Handlers
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:        handler.NewAccountHandler(accountUC),
		CustomerHandler:       handler.NewCustomerHandler(customerUC, accountUC),
		TransferHandler:       handler.NewTransferHandler(transferUC),
		MovementHandler:       handler.NewMovementHandler(movementUC),
		BankHandler:           handler.NewBankHandler(bankUC),
		ReconciliationHandler: handler.NewReconciliationHandler(reconciliationUC),
		AuthHandler:           handler.NewAuthHandler(userUC, jwtManager),
		HealthHandler:         handler.NewHealthHandler(pool, redisClient),
		IdempotencyStore:      idempotencyStore,
		JWTManager:            jwtManager,
		AuthEnabled:           cfg.AuthEnabled,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
