package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/factory/internal/server/handlers"
)

// Handlers groups the HTTP adapters. Webhook may be nil when WhatsApp is not
// configured.
type Handlers struct {
	Factory *handlers.FactoryHandler
	Reports *handlers.ReportsHandler
	Webhook *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")

	stocks := api.Group("/stocks")
	stocks.GET("", h.Factory.Stocks)
	stocks.POST("/receipts", h.Factory.ReceiveStock)
	stocks.PUT("/count", h.Factory.SetStockCount)
	stocks.GET("/logs", h.Factory.WarehouseLogs)
	stocks.DELETE("/logs/:id", h.Factory.DeleteWarehouseLog)

	fabricModels := api.Group("/models")
	fabricModels.GET("", h.Factory.Models)
	fabricModels.POST("", h.Factory.CreateModel)
	fabricModels.GET("/:id", h.Factory.Model)
	fabricModels.PUT("/:id", h.Factory.UpdateModel)
	fabricModels.DELETE("/:id", h.Factory.DeleteModel)
	fabricModels.GET("/:id/history", h.Factory.ModelHistory)

	machines := api.Group("/machine-works")
	machines.GET("", h.Factory.MachineWorks)
	machines.POST("", h.Factory.CreateMachineWork)
	machines.DELETE("", h.Factory.DeleteMachineWorks)
	machines.GET("/:id", h.Factory.MachineWork)
	machines.PUT("/:id", h.Factory.UpdateMachineWork)
	machines.DELETE("/:id", h.Factory.DeleteMachineWork)

	processing := api.Group("/processing-works")
	processing.GET("", h.Factory.ProcessingWorks)
	processing.POST("", h.Factory.CreateProcessingWork)
	processing.GET("/:id", h.Factory.ProcessingWork)
	processing.PUT("/:id", h.Factory.UpdateProcessingWork)
	processing.DELETE("/:id", h.Factory.DeleteProcessingWork)

	accounts := api.Group("/accounts/:role")
	accounts.GET("", h.Factory.Accounts)
	accounts.POST("", h.Factory.CreateAccount)
	accounts.DELETE("", h.Factory.DeleteAccounts)
	accounts.GET("/:id", h.Factory.Account)
	accounts.PUT("/:id", h.Factory.UpdateAccount)
	accounts.DELETE("/:id", h.Factory.DeleteAccount)
	accounts.POST("/:id/payments", h.Factory.AddPayment)
	accounts.DELETE("/:id/payments/:paymentId", h.Factory.RemovePayment)

	invoices := api.Group("/customers/:id/invoices")
	invoices.POST("", h.Factory.CreateInvoice)
	invoices.PUT("/:invoiceId", h.Factory.UpdateInvoice)
	invoices.DELETE("/:invoiceId", h.Factory.DeleteInvoice)

	api.GET("/sales/availability", h.Factory.SalesAvailability)

	expenses := api.Group("/expenses")
	expenses.GET("", h.Factory.Expenses)
	expenses.POST("", h.Factory.AddExpense)
	expenses.GET("/summary", h.Factory.ExpenseSummary)
	expenses.GET("/categories", h.Factory.ExpenseCategories)
	expenses.DELETE("/:id", h.Factory.DeleteExpense)

	reports := api.Group("/reports")
	reports.GET("/summary", h.Reports.Summary)
	reports.GET("/audit", h.Reports.Audit)
	reports.POST("/export", h.Reports.Export)

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		reports.POST("/summary/send", h.Webhook.SendSummary)
	}

	if logger != nil {
		logger.Info("router initialized", zap.Int("routes", len(r.Routes())))
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("route", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
