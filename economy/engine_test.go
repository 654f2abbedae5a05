package economy

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

// testDB opens an isolated in-memory database with the full schema and a
// seeded house vault.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(
		&models.Account{},
		&models.AssetCatalogEntry{},
		&models.Position{},
		&models.LedgerEntry{},
		&models.Promotion{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if err := EnsureHouseAccount(db); err != nil {
		t.Fatalf("seed house account: %v", err)
	}
	return db
}

// setClock pins the engine clock and restores it when the test ends.
func setClock(t *testing.T, at time.Time) {
	t.Helper()
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = time.Now })
}

func advanceClock(t *testing.T, by time.Duration) time.Time {
	t.Helper()
	at := timeNow().Add(by)
	timeNow = func() time.Time { return at }
	return at
}

func newAccount(t *testing.T, db *gorm.DB, balance float64) *models.Account {
	t.Helper()
	acc := models.Account{
		Username: fmt.Sprintf("user-%s-%d", t.Name(), time.Now().UnixNano()),
		Email:    fmt.Sprintf("%d-%s@test.local", time.Now().UnixNano(), t.Name()),
		Password: "x",
		Role:     "user",
	}
	if err := db.Create(&acc).Error; err != nil {
		t.Fatalf("create account: %v", err)
	}
	// Fund through the engine so the ledger matches the balance.
	if balance > 0 {
		if _, err := Adjust(db, acc.ID, balance, "Test funding"); err != nil {
			t.Fatalf("fund account: %v", err)
		}
		acc.Balance = balance
	}
	return &acc
}

func newCatalogEntry(t *testing.T, db *gorm.DB, price, yieldPct, maintPct, investorPct float64) *models.AssetCatalogEntry {
	t.Helper()
	entry := models.AssetCatalogEntry{
		Name:                  "Stall",
		BasePriceCoins:        price,
		WorkerGrossYieldPct:   yieldPct,
		MaintenanceFeePct:     maintPct,
		InvestorFixedYieldPct: investorPct,
		Active:                true,
	}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("create catalog entry: %v", err)
	}
	return &entry
}

func balanceOf(t *testing.T, db *gorm.DB, accountID uint) float64 {
	t.Helper()
	var acc models.Account
	if err := db.First(&acc, accountID).Error; err != nil {
		t.Fatalf("load account: %v", err)
	}
	return acc.Balance
}

func houseBalance(t *testing.T, db *gorm.DB) float64 {
	t.Helper()
	var acc models.Account
	if err := db.Where("role = ?", "house").First(&acc).Error; err != nil {
		t.Fatalf("load house account: %v", err)
	}
	return acc.Balance
}

func mustReconcile(t *testing.T, db *gorm.DB, accountID uint) {
	t.Helper()
	rec, err := Reconcile(db, accountID)
	if err != nil {
		t.Fatalf("reconcile account %d: %v", accountID, err)
	}
	if !rec.Balanced {
		t.Fatalf("account %d out of balance: balance=%v ledger=%v", accountID, rec.Balance, rec.LedgerSum)
	}
}
