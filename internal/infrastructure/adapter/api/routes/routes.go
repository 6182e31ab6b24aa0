package routes

import (
	"net/http"
	"time"

	"github.com/damilare-oj/vtu-processor/internal/domain/entity"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/handler"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/middleware"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/auth"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/metrics"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// Handlers groups everything SetupRoutes wires into the router
type Handlers struct {
	Spend    *handler.SpendHandler
	Fund     *handler.FundHandler
	Webhook  *handler.WebhookHandler
	Transfer *handler.TransferHandler
	User     *handler.UserHandler
	Admin    *handler.AdminHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	tokens *auth.TokenManager,
	rdb *redis.Client,
	cacheTTL time.Duration,
	logger coreport.Logger,
) {
	// Public surface
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.POST("/webhook/:provider", handlers.Webhook.Receive)
	router.GET("/fund/callback", handlers.Fund.Callback)

	authed := router.Group("/", middleware.RequireAuth(tokens))
	{
		authed.GET("/user/balance", handlers.User.GetBalance)
		authed.GET("/transactions", handlers.User.ListTransactions)

		spend := authed.Group("/spend", middleware.Idempotency(rdb, cacheTTL, logger))
		{
			spend.POST("/airtime", handlers.Spend.Spend(entity.TypeAirtime))
			spend.POST("/data", handlers.Spend.Spend(entity.TypeData))
			spend.POST("/cabletv", handlers.Spend.Spend(entity.TypeCableTV))
			spend.POST("/electricity", handlers.Spend.Spend(entity.TypeElectricity))
			spend.POST("/betting", handlers.Spend.Spend(entity.TypeBetting))
			spend.POST("/sms", handlers.Spend.Spend(entity.TypeSMS))
		}

		authed.POST("/fund", handlers.Fund.Initialize)
		authed.POST("/withdraw", handlers.Fund.Withdraw)

		authed.POST("/transfer/reward-to-wallet", handlers.Transfer.RewardToWallet)
		authed.POST("/transfer/wallet-to-wallet", handlers.Transfer.WalletToWallet)
		authed.POST("/giftcard/redeem", handlers.Transfer.RedeemGiftCard)

		admin := authed.Group("/admin", middleware.RequireAdmin())
		{
			admin.PATCH("/transactions/:reference/status", handlers.Admin.PatchStatus)
		}
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
