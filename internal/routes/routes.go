// Package routes defines the API routing configuration.
// It wires repositories, services and handlers and applies the
// authentication middleware where required.
package routes

import (
	"dilspay/internal/config"
	"dilspay/internal/handlers"
	"dilspay/internal/middleware"
	"dilspay/internal/repositories"
	"dilspay/internal/services/auth"
	"dilspay/internal/services/invoice"
	"dilspay/internal/services/ledger"
	"dilspay/internal/services/settlement"
	"dilspay/internal/services/statement"
	"dilspay/internal/services/user"
	"dilspay/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	walletRepo := repositories.NewWalletRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	cacheService := repositories.CacheService

	// Services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, walletRepo)
	walletService := wallet.NewService(walletRepo, cacheService)
	ledgerService := ledger.NewService(walletRepo, cacheService)
	statementService := statement.NewService(transactionRepo, walletRepo)
	invoiceService := invoice.NewService(invoiceRepo, cacheService)
	settlementService := settlement.NewService(
		invoiceRepo,
		walletRepo,
		cacheService,
		config.WebhookSecret(),
	)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	walletHandler := handlers.NewWalletHandler(walletService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService, statementService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	webhookHandler := handlers.NewWebhookHandler(settlementService)

	app.Get("/health", handlers.HealthCheck)

	api := app.Group("/api")

	// Public endpoints
	api.Post("/register", userHandler.Register)
	api.Post("/login", authHandler.Login)
	api.Post("/refresh", authHandler.RefreshToken)

	// The PSP authenticates with the body signature, not a bearer token.
	api.Post("/webhooks/settlement", webhookHandler.Settlement)

	// Authenticated endpoints
	authed := api.Group("", middleware.Auth())

	authed.Post("/password", authHandler.ChangePassword)

	authed.Post("/invoices", invoiceHandler.Create)
	authed.Get("/invoices/:txid", invoiceHandler.Get)
	authed.Post("/invoices/:txid/cancel", invoiceHandler.Cancel)

	authed.Get("/wallets", walletHandler.List)
	authed.Get("/wallets/me", walletHandler.Me)
	authed.Get("/wallets/:wallet_id/ledger", ledgerHandler.Statement)
	authed.Get("/wallets/:wallet_id/ledger/:id", ledgerHandler.Entry)
	authed.Post("/wallets/:wallet_id/ledger", ledgerHandler.Append)
	authed.Get("/wallets/:wallet_id/verify", ledgerHandler.Verify)
}
