package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/giftcard"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/reconcile"
	"github.com/damilare-oj/vtu-processor/internal/domain/usecase/transfer"

	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/handler"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/routes"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/auth"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/database"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/gateway"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/logger"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/metrics"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/repository"
	timeProvider "github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/timeprovider"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode based on environment
	if cfg.Environment == config.Production {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create logger
	appLogger := logger.NewZapLogger(cfg.Environment == config.Production)
	defer func() { _ = appLogger.Flush() }()

	// Initialize time provider
	tp := timeProvider.NewRealTimeProvider()

	// Connect to the database
	conn, err := database.NewConnection(&database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		LogLevel:        cfg.Logger.Level,
	})
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() { _ = conn.Close() }()

	// Run migrations
	if err := conn.Migrate(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	// Redis for the idempotency response cache
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = rdb.Close() }()

	// Initialize repositories
	ledgerRepo := repository.NewLedgerRepository(conn.DB, tp, appLogger)
	transactionRepo := repository.NewTransactionRepository(conn.DB, appLogger)
	planRepo := repository.NewPlanRepository(conn.DB)
	giftCardRepo := repository.NewGiftCardRepository(conn.DB, tp, appLogger)
	callbackRepo := repository.NewCallbackEventRepository(conn.DB, tp)

	// Provider gateway clients share one HTTP client
	httpClient := gateway.NewHTTPClient(cfg.Providers.RequestTimeout)
	vtuGateway := gateway.NewVTUGateway(
		gateway.NewEasyAccessClient(gateway.EasyAccessConfig{
			BaseURL: cfg.Providers.EasyAccess.BaseURL,
			APIKey:  cfg.Providers.EasyAccess.APIKey,
		}, httpClient, appLogger),
		gateway.NewNelloBytesClient(gateway.NelloBytesConfig{
			BaseURL: cfg.Providers.NelloBytes.BaseURL,
			UserID:  cfg.Providers.NelloBytes.UserID,
			APIKey:  cfg.Providers.NelloBytes.APIKey,
		}, httpClient, appLogger),
		gateway.NewSMSCloneClient(gateway.SMSCloneConfig{
			BaseURL:  cfg.Providers.SMSClone.BaseURL,
			Username: cfg.Providers.SMSClone.Username,
			Password: cfg.Providers.SMSClone.Password,
			Sender:   cfg.Providers.SMSClone.Sender,
		}, httpClient, appLogger),
	)
	paystack := gateway.NewPaystackClient(gateway.PaystackConfig{
		BaseURL:     cfg.Providers.Paystack.BaseURL,
		SecretKey:   cfg.Providers.Paystack.SecretKey,
		CallbackURL: cfg.Providers.Paystack.CallbackURL,
	}, httpClient, appLogger)

	// Initialize use cases
	spendEngine := reconcile.NewEngine(ledgerRepo, transactionRepo, planRepo, vtuGateway, tp, appLogger)
	fundingEngine := reconcile.NewFundingEngine(ledgerRepo, transactionRepo, paystack, tp, appLogger)
	webhookFinalizer := reconcile.NewWebhookFinalizer(ledgerRepo, transactionRepo, callbackRepo, tp, appLogger)
	adminFinalizer := reconcile.NewAdminFinalizer(ledgerRepo, transactionRepo, tp, appLogger)
	transferEngine := transfer.NewEngine(ledgerRepo, tp, appLogger)
	redeemer := giftcard.NewRedeemer(giftCardRepo, ledgerRepo, tp, appLogger)

	// Token manager for the authenticated surface
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Register prometheus collectors
	metrics.Init()

	// Initialize Gin router
	router := gin.New()

	// Setup middlewares
	routes.SetupMiddlewares(router, appLogger)

	// Setup routes
	routes.SetupRoutes(router, routes.Handlers{
		Spend:    handler.NewSpendHandler(spendEngine, appLogger),
		Fund:     handler.NewFundHandler(fundingEngine, appLogger),
		Webhook:  handler.NewWebhookHandler(webhookFinalizer, appLogger),
		Transfer: handler.NewTransferHandler(transferEngine, redeemer, appLogger),
		User:     handler.NewUserHandler(ledgerRepo, transactionRepo, appLogger),
		Admin:    handler.NewAdminHandler(adminFinalizer, appLogger),
	}, tokens, rdb, cfg.Redis.CacheTTL, appLogger)

	// Create HTTP server with configurable timeout values
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		appLogger.Info("Starting server", map[string]any{
			"port": cfg.Server.Port,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}
