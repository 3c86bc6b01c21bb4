// Command seed bootstraps the database with an admin user and,
// optionally, demo catalog data.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"steeldesk/internal/domain/auth"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/infrastructure/storage/postgres"
	"steeldesk/internal/infrastructure/storage/postgres/auth_repo"
	"steeldesk/internal/infrastructure/storage/postgres/catalog_repo"
	"steeldesk/pkg/logger"
	"steeldesk/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	log.Info("connected to database")

	txManager := postgres.NewTxManager(pool)

	if err := seedAdminUser(ctx, txManager, log); err != nil {
		log.Fatalw("failed to seed admin user", "error", err)
	}

	if os.Getenv("SEED_DEMO_DATA") == "true" {
		if err := seedDemoData(ctx, pool, txManager, log); err != nil {
			log.Fatalw("failed to seed demo data", "error", err)
		}
	}

	log.Info("seeding completed successfully")
}

func seedAdminUser(ctx context.Context, txManager *postgres.TxManager, log *logger.Logger) error {
	adminEmail := os.Getenv("ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@steeldesk.local"
	}
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = "Admin123!"
	}

	userRepo := auth_repo.NewUserRepo(txManager)

	exists, err := userRepo.Exists(ctx, adminEmail)
	if err != nil {
		return fmt.Errorf("check admin exists: %w", err)
	}
	if exists {
		log.Infow("admin user already exists", "email", adminEmail)
		return nil
	}

	tokenRepo := auth_repo.NewTokenRepo(txManager)
	jwtSvc := auth.NewJWTService(auth.DefaultJWTConfig("seed-only"))
	authSvc := auth.NewService(userRepo, tokenRepo, txManager, jwtSvc, auth.DefaultServiceConfig())

	user, err := authSvc.Register(ctx, auth.RegisterRequest{
		Email:    adminEmail,
		Password: adminPassword,
		FullName: "System Admin",
	})
	if err != nil {
		return fmt.Errorf("register admin: %w", err)
	}

	user.IsAdmin = true
	if err := userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("promote admin: %w", err)
	}
	if err := userRepo.AssignRole(ctx, user.ID, auth.RoleAdmin, user.ID); err != nil {
		return fmt.Errorf("assign admin role: %w", err)
	}

	log.Infow("admin user created", "email", adminEmail, "user_id", user.ID)
	return nil
}

func seedDemoData(ctx context.Context, pool *postgres.Pool, txManager *postgres.TxManager, log *logger.Logger) error {
	log.Info("seeding demo data...")

	num := numerator.New(pool)
	itemSvc := item.NewService(catalog_repo.NewItemRepo(txManager), txManager, num)
	partySvc := party.NewService(catalog_repo.NewPartyRepo(txManager), txManager, num)

	parties := []struct {
		name  string
		kind  party.Kind
		city  string
		gstin string
	}{
		{"Shree Steel Suppliers", party.KindVendor, "Mumbai", "27AAACS1234A1Z5"},
		{"National Tube Traders", party.KindVendor, "Ahmedabad", "24AABCN5678B1Z3"},
		{"Modern Hardware Mart", party.KindCustomer, "Pune", "27AADCM9012C1Z8"},
		{"Patel Pipe Center", party.KindCustomer, "Surat", ""},
	}
	for _, p := range parties {
		pt := party.New("", p.name, p.kind)
		pt.City = p.city
		pt.GSTIN = p.gstin
		if err := partySvc.Create(ctx, pt); err != nil {
			log.Warnw("failed to seed party", "name", p.name, "error", err)
		}
	}

	items := []struct {
		category item.Category
		grade    string
		size     string
		gauge    string
		subCat   string
		fitting  string
		spec     string
		rate     string
		margin   string
		gst      string
	}{
		{category: item.CategoryPipe, grade: "304", size: "2 inch", gauge: "16g", rate: "210", margin: "12", gst: "18"},
		{category: item.CategoryPipe, grade: "202", size: "1.5 inch", gauge: "14g", rate: "145", margin: "9", gst: "18"},
		{category: item.CategorySheet, grade: "304", size: "8x4", gauge: "18g", rate: "225", margin: "14", gst: "18"},
		{category: item.CategoryFitting, subCat: "bush", grade: "304", size: "1 inch", rate: "260", margin: "20", gst: "18"},
		{category: item.CategoryFitting, subCat: "elbow", fitting: "welded", grade: "202", size: "2 inch", rate: "35", margin: "5", gst: "18"},
		{category: item.CategoryPolish, subCat: "buffing wheel", spec: "14 inch", rate: "90", margin: "10", gst: "12"},
	}
	for _, seed := range items {
		it := item.New("", seed.category)
		it.Grade = seed.grade
		it.Size = seed.size
		it.Gauge = seed.gauge
		it.SubCategory = seed.subCat
		it.FittingType = seed.fitting
		it.Specification = seed.spec
		it.PurchaseRate = mustDecimal(seed.rate)
		it.Margin = mustDecimal(seed.margin)
		it.GST = mustDecimal(seed.gst)
		it.Refresh()
		if err := itemSvc.Create(ctx, it); err != nil {
			log.Warnw("failed to seed item", "name", it.Name, "error", err)
		}
	}

	log.Info("demo data seeded")
	return nil
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
