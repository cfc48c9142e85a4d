package router

import (
	"github.com/gin-gonic/gin"

	"invoicegen/internal/handler"
	"invoicegen/internal/middleware"
	"invoicegen/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	corsOrigins []string,
	authH *handler.AuthHandler,
	invoiceH *handler.InvoiceHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	api := r.Group("/api")

	// Public: combined register/login
	api.POST("/auth", authH.Auth)

	// Protected routes - require a valid bearer token
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.GET("/invoices", invoiceH.List)
	protected.POST("/invoices", invoiceH.Create)
	protected.POST("/update-invoice", invoiceH.Update)

	protected.GET("/invoices/summary", invoiceH.Summary)
	protected.GET("/invoices/export/csv", invoiceH.ExportCSV)
	protected.GET("/invoices/export/xlsx", invoiceH.ExportXLSX)
	protected.GET("/invoices/:index/pdf", invoiceH.DownloadPDF)
	protected.POST("/invoices/:index/send", invoiceH.Send)

	return r
}
