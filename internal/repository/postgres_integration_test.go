//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jewelbridge/internal/constants"
	"github.com/jewelbridge/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.VisitRequestItem{},
		&models.VisitRequest{},
		&models.Review{},
		&models.Product{},
		&models.Shop{},
		&models.Account{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}
	if _, err := models.SeedCatalog(db); err != nil {
		t.Fatalf("seed postgres catalog failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresCatalogSearchIsCaseInsensitive(t *testing.T) {
	repo := NewCatalogRepository(setupPostgresIntegrationDB(t))

	products, total, err := repo.ListProducts(ProductListFilter{Search: "SILVER", OnlyActive: true})
	if err != nil {
		t.Fatalf("postgres search failed: %v", err)
	}
	if total != 1 || products[0].ID != "prod-5" {
		t.Fatalf("silver search want prod-5 got total=%d rows=%+v", total, products)
	}
}

func TestPostgresVisitRequestLifecycle(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewVisitRequestRepository(db)
	dashboard := NewDashboardRepository(db)
	now := time.Now().UTC().Truncate(time.Second)

	request := newTestVisitRequest("vr-pg", "shop-2", now,
		models.VisitRequestItem{ProductID: "prod-3", ShopID: "shop-2", Name: "Royal Gold Chain Necklace", UnitPrice: 158000, Quantity: 1, WeightGrams: models.NewGrams(35)},
	)
	if err := repo.Create(request); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	affected, err := repo.UpdateStatus("vr-pg", []string{constants.VisitRequestStatusCreated}, constants.VisitRequestStatusConfirmed, now)
	if err != nil || affected != 1 {
		t.Fatalf("confirm want 1 row got %d err=%v", affected, err)
	}

	value, err := dashboard.GetOpenHoldValue("shop-2")
	if err != nil || value != 158000 {
		t.Fatalf("open hold value want 158000 got %d err=%v", value, err)
	}

	got, err := repo.GetByID("vr-pg")
	if err != nil || got == nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Items[0].WeightGrams.String() != "35" {
		t.Fatalf("weight want 35 got %s", got.Items[0].WeightGrams.String())
	}
}
