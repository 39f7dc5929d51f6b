package handlers

import (
	"net/http"

	"github.com/SscSPs/teller_ledger_app/cmd/docs"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	portssvc "github.com/SscSPs/teller_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/teller_ledger_app/internal/middleware"
	"github.com/SscSPs/teller_ledger_app/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/", getHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))
	RegisterTellerRoutes(v1, services.Teller)

	setupSwaggerRoutes(r, cfg)
}

// RegisterTellerRoutes registers the teller API on an authenticated group.
func RegisterTellerRoutes(rg *gin.RouterGroup, tellerService portssvc.TellerSvcFacade) {
	ch := newClientHandler(tellerService)
	ah := newAccountHandler(tellerService)
	th := newTransferHandler(tellerService)

	read := middleware.RequireCapability(domain.CapReadLedger)

	clients := rg.Group("/clients")
	{
		clients.POST("", middleware.RequireCapability(domain.CapOnboardClient), ch.onboardClient)
		clients.POST("/:clientID/accounts", middleware.RequireCapability(domain.CapOpenAccount), ch.openAccount)
		clients.GET("/:clientID/accounts", read, ch.listAccounts)
	}

	moveMoney := middleware.RequireCapability(domain.CapMoveMoney)
	accounts := rg.Group("/accounts/:accountID")
	{
		accounts.GET("", read, ah.getAccount)
		accounts.GET("/transactions", read, ah.listTransactions)
		accounts.POST("/deposits", moveMoney, ah.deposit)
		accounts.POST("/withdrawals", moveMoney, ah.withdraw)
		accounts.POST("/credit-requests", middleware.RequireCapability(domain.CapRequestCredit), ah.requestCredit)
		accounts.GET("/credit-requests", read, ah.listCreditRequests)
	}

	rg.POST("/transfers", moveMoney, th.createTransfer)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
