// Command server runs the steeldesk HTTP API.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/auth"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/domain/documents/payment"
	"steeldesk/internal/domain/documents/purchase"
	"steeldesk/internal/domain/documents/sale"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/domain/posting"
	"steeldesk/internal/domain/registers/stock"
	"steeldesk/internal/domain/reports"
	v1 "steeldesk/internal/infrastructure/http/v1"
	"steeldesk/internal/infrastructure/storage/postgres"
	"steeldesk/internal/infrastructure/storage/postgres/auth_repo"
	"steeldesk/internal/infrastructure/storage/postgres/catalog_repo"
	"steeldesk/internal/infrastructure/storage/postgres/document_repo"
	"steeldesk/internal/infrastructure/storage/postgres/register_repo"
	"steeldesk/internal/infrastructure/storage/postgres/report_repo"
	"steeldesk/pkg/logger"
	"steeldesk/pkg/numerator"
)

var version = "dev"

func main() {
	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "production") == "development",
	})
	if err != nil {
		panic(err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	if err := run(ctx, log); err != nil {
		log.WithContext(ctx).Fatalw("server failed", "error", err)
	}
}

func run(ctx context.Context, log *logger.Logger) error {
	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv("DATABASE_URL")))
	if err != nil {
		return err
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(pool)

	itemRepo := catalog_repo.NewItemRepo(txManager)
	partyRepo := catalog_repo.NewPartyRepo(txManager)
	purchaseRepo := document_repo.NewPurchaseRepo(txManager)
	saleRepo := document_repo.NewSaleRepo(txManager)
	paymentRepo := document_repo.NewPaymentRepo(txManager)
	stockRepo := register_repo.NewStockRepo(txManager)
	ledgerRepo := register_repo.NewLedgerRepo(txManager)
	userRepo := auth_repo.NewUserRepo(txManager)
	tokenRepo := auth_repo.NewTokenRepo(txManager)
	reportRepo := report_repo.NewReportRepo(txManager)

	stockSvc := stock.NewService(stockRepo)
	ledgerSvc := ledger.NewService(ledgerRepo, partyRepo)
	postingEngine := posting.NewEngine(txManager, stockSvc, ledgerSvc)

	itemSvc := item.NewService(itemRepo, txManager, num)
	partySvc := party.NewService(partyRepo, txManager, num)
	purchaseSvc := purchase.NewService(purchaseRepo, itemSvc, postingEngine, num, txManager)
	saleSvc := sale.NewService(saleRepo, itemSvc, postingEngine, num, txManager)
	paymentSvc := payment.NewService(paymentRepo, ledgerSvc, postingEngine, num, txManager)
	reportsSvc := reports.NewService(reportRepo, ledgerSvc)

	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig(mustEnv("JWT_SECRET")))
	authSvc := auth.NewService(userRepo, tokenRepo, txManager, jwtSvc, auth.DefaultServiceConfig())

	auditSvc, err := postgres.NewAuditService(txManager)
	if err != nil {
		return err
	}
	registerAuditHooks(auditSvc, itemSvc, partySvc, purchaseSvc, saleSvc)

	idemStore := postgres.NewIdempotencyStore(txManager, 24*time.Hour)

	router := v1.NewRouter(v1.RouterConfig{
		Logger:           log,
		Pool:             pool,
		Version:          version,
		JWTService:       jwtSvc,
		IdempotencyStore: idemStore,
		AuthService:      authSvc,
		ItemService:      itemSvc,
		PartyService:     partySvc,
		PurchaseService:  purchaseSvc,
		SaleService:      saleSvc,
		PaymentService:   paymentSvc,
		StockService:     stockSvc,
		LedgerService:    ledgerSvc,
		ReportsService:   reportsSvc,
	})

	srv := &http.Server{
		Addr:              ":" + getEnv("PORT", "8080"),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithContext(ctx).Infow("server starting", "addr", srv.Addr, "version", version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.WithContext(ctx).Infow("server shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// registerAuditHooks records catalog and document lifecycle events in the
// audit log. Audit failures are logged but never fail the business operation.
func registerAuditHooks(
	audit *postgres.AuditService,
	itemSvc *item.Service,
	partySvc *party.Service,
	purchaseSvc *purchase.Service,
	saleSvc *sale.Service,
) {
	itemSvc.Hooks().OnAfterCreate(func(ctx context.Context, it *item.Item) error {
		logAudit(ctx, audit, "item", postgres.AuditActionCreate, it.ID, map[string]any{"name": it.Name})
		return nil
	})
	itemSvc.Hooks().OnAfterUpdate(func(ctx context.Context, it *item.Item) error {
		logAudit(ctx, audit, "item", postgres.AuditActionUpdate, it.ID, map[string]any{"name": it.Name})
		return nil
	})
	partySvc.Hooks().OnAfterCreate(func(ctx context.Context, p *party.Party) error {
		logAudit(ctx, audit, "party", postgres.AuditActionCreate, p.ID, map[string]any{"name": p.Name})
		return nil
	})
	partySvc.Hooks().OnAfterUpdate(func(ctx context.Context, p *party.Party) error {
		logAudit(ctx, audit, "party", postgres.AuditActionUpdate, p.ID, map[string]any{"name": p.Name})
		return nil
	})
	purchaseSvc.Hooks().OnAfterCreate(func(ctx context.Context, doc *purchase.PurchaseOrder) error {
		logAudit(ctx, audit, "purchase_order", postgres.AuditActionCreate, doc.ID, map[string]any{"number": doc.Number})
		return nil
	})
	purchaseSvc.Hooks().OnAfterUpdate(func(ctx context.Context, doc *purchase.PurchaseOrder) error {
		logAudit(ctx, audit, "purchase_order", postgres.AuditActionUpdate, doc.ID, map[string]any{"number": doc.Number})
		return nil
	})
	saleSvc.Hooks().OnAfterCreate(func(ctx context.Context, doc *sale.SaleOrder) error {
		logAudit(ctx, audit, "sale_order", postgres.AuditActionCreate, doc.ID, map[string]any{"number": doc.Number})
		return nil
	})
	saleSvc.Hooks().OnAfterUpdate(func(ctx context.Context, doc *sale.SaleOrder) error {
		logAudit(ctx, audit, "sale_order", postgres.AuditActionUpdate, doc.ID, map[string]any{"number": doc.Number})
		return nil
	})
}

func logAudit(ctx context.Context, audit *postgres.AuditService, entityType string, action postgres.AuditAction, entityID id.ID, changes map[string]any) {
	if err := audit.LogChange(ctx, entityType, entityID, action, changes); err != nil {
		logger.Warn(ctx, "audit log failed", "entity_type", entityType, "error", err)
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func mustEnv(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("missing required environment variable: " + key)
	}
	return val
}
