// Package v1 wires the HTTP API: middleware chain, route groups and handlers.
package v1

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/domain/auth"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/domain/documents/payment"
	"steeldesk/internal/domain/documents/purchase"
	"steeldesk/internal/domain/documents/sale"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/domain/registers/stock"
	"steeldesk/internal/domain/reports"
	"steeldesk/internal/infrastructure/http/v1/handlers"
	"steeldesk/internal/infrastructure/http/v1/middleware"
	"steeldesk/internal/infrastructure/storage/postgres"
	"steeldesk/pkg/logger"
)

// RouterConfig carries everything the API needs.
type RouterConfig struct {
	Logger  *logger.Logger
	Pool    *postgres.Pool
	Version string

	JWTService       *auth.JWTService
	IdempotencyStore *postgres.IdempotencyStore

	AuthService     *auth.Service
	ItemService     *item.Service
	PartyService    *party.Service
	PurchaseService *purchase.Service
	SaleService     *sale.Service
	PaymentService  *payment.Service
	StockService    *stock.Service
	LedgerService   *ledger.Service
	ReportsService  *reports.Service
}

// NewRouter builds the Gin engine with the full middleware chain
// and all route groups.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		middleware.Recovery(),
		middleware.Trace(),
		middleware.Logger(cfg.Logger),
		middleware.ErrorHandler(),
	)

	base := handlers.NewBaseHandler()

	health := handlers.NewHealthHandler(cfg.Pool, cfg.Version)
	health.RegisterRoutes(router.Group("/health"))

	api := router.Group("/api/v1")

	authHandler := handlers.NewAuthHandler(base, cfg.AuthService)
	authHandler.RegisterPublicRoutes(api.Group("/auth"))

	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.JWTService))
	if cfg.IdempotencyStore != nil {
		protected.Use(middleware.Idempotency(cfg.IdempotencyStore))
	}

	authHandler.RegisterProtectedRoutes(protected.Group("/auth"), middleware.RequireAdmin())

	itemHandler := handlers.NewItemHandler(base, cfg.ItemService)
	itemHandler.RegisterRoutes(protected.Group("/catalog/items"))

	partyHandler := handlers.NewPartyHandler(base, cfg.PartyService)
	partyHandler.RegisterRoutes(protected.Group("/catalog/parties"))

	purchaseHandler := handlers.NewPurchaseHandler(base, cfg.PurchaseService)
	purchaseHandler.RegisterRoutes(protected.Group("/documents/purchase-orders"))

	saleHandler := handlers.NewSaleHandler(base, cfg.SaleService)
	saleHandler.RegisterRoutes(protected.Group("/documents/sale-orders"))

	paymentHandler := handlers.NewPaymentHandler(base, cfg.PaymentService)
	paymentHandler.RegisterRoutes(protected.Group("/documents/payments"))

	uploadHandler := handlers.NewUploadHandler(base, cfg.ItemService)
	uploadHandler.RegisterRoutes(protected.Group("/uploads"))

	stockHandler := handlers.NewStockHandler(base, cfg.StockService)
	stockHandler.RegisterRoutes(protected.Group("/registers/stock"))

	ledgerHandler := handlers.NewLedgerHandler(base, cfg.LedgerService)
	ledgerHandler.RegisterRoutes(protected.Group("/registers/ledger"))

	reportsHandler := handlers.NewReportsHandler(base, cfg.ReportsService)
	reportsHandler.RegisterRoutes(protected.Group("/reports"))

	return router
}
