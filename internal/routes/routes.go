package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	handler "dispute-reconciliation-backend/internal/handlers"
	"dispute-reconciliation-backend/internal/repository"
	"dispute-reconciliation-backend/internal/services/importer"
	"dispute-reconciliation-backend/internal/services/reconciliation"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB) {
	paymentRepo := repository.NewPaymentRecordRepository(db)
	suggestionRepo := repository.NewSuggestionRepository(db)
	caseRepo := repository.NewCaseRepository(db)
	transactionRepo := repository.NewBankTransactionRepository(db)

	engine := reconciliation.NewEngine(paymentRepo, suggestionRepo, caseRepo)
	importService := importer.NewService(transactionRepo)

	reconHandler := handler.NewReconciliationHandler(engine, importService, caseRepo)

	api := r.Group("/api")

	// Health check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Bank feed ingestion
	tx := api.Group("/transactions")
	tx.POST("/import", reconHandler.ImportTransactions)
	tx.GET("", reconHandler.ListTransactions)

	// Payment record lifecycle
	payments := api.Group("/payments")
	payments.POST("", reconHandler.CreatePaymentRecord)
	payments.GET("", reconHandler.ListPaymentRecords)
	payments.GET("/:id/matches", reconHandler.FindMatches)
	payments.POST("/:id/confirm", reconHandler.ConfirmMatch)

	// Suggestions
	suggestions := api.Group("/suggestions")
	suggestions.POST("/:id/reject", reconHandler.RejectSuggestion)

	// Reconciliation operations
	recon := api.Group("/reconciliation")
	recon.POST("/sweep", reconHandler.RunSweep)
	recon.GET("/stats", reconHandler.GetStats)

	// Case seeding (dev/demo)
	api.POST("/cases", reconHandler.CreateCase)
}
