// Package routes assembles the HTTP API.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Kola-Kola/personal-finance/internal/config"
	_ "github.com/Kola-Kola/personal-finance/internal/docs" // swagger docs
	"github.com/Kola-Kola/personal-finance/internal/handlers"
	"github.com/Kola-Kola/personal-finance/internal/middleware"
	"github.com/Kola-Kola/personal-finance/internal/services"
)

// Deps are the services the routes dispatch to.
type Deps struct {
	Config       *config.Config
	Auth         services.AuthServicer
	Categories   services.CategoryServicer
	Transactions services.TransactionServicer
	Reports      services.ReportServicer
	Imports      services.ImportServicer
	Audit        services.AuditServicer
	State        handlers.StateReader
}

// Register builds the router.
func Register(d Deps) *gin.Engine {
	cfg := d.Config

	authHandler := handlers.NewAuthHandler(d.Auth, cfg.JWTSecret, cfg.JWTExpirationDur)
	categoryHandler := handlers.NewCategoryHandler(d.Categories)
	transactionHandler := handlers.NewTransactionHandler(d.Transactions, d.Audit)
	reportHandler := handlers.NewReportHandler(d.Reports)
	importHandler := handlers.NewImportHandler(d.Imports, d.Audit)
	stateHandler := handlers.NewStateHandler(d.State)

	r := gin.New()
	r.Use(middleware.RequestLogging())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.NoRoute(middleware.NotFound)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// Public routes
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/import", middleware.APIKeyMiddleware(cfg.ImportAPIKey), importHandler.ImportLegacy)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware(cfg.JWTSecret, cfg.AuthEnabled()))

	protected.GET("/state", stateHandler.GetState)

	transactions := protected.Group("/transactions")
	transactions.POST("", transactionHandler.CreateTransaction)
	transactions.GET("", transactionHandler.ListTransactions)
	transactions.GET("/:id", transactionHandler.GetTransactionByID)
	transactions.PUT("/:id", transactionHandler.UpdateTransaction)
	transactions.DELETE("/:id", transactionHandler.DeleteTransaction)

	categories := protected.Group("/categories")
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategory)

	reports := protected.Group("/reports")
	reports.GET("/monthly", reportHandler.MonthlyReport)
	reports.GET("/breakdown", reportHandler.CategoryBreakdown)
	reports.GET("/recurring", reportHandler.RecurringProjection)
	reports.GET("/months", reportHandler.MonthOptions)

	return r
}
