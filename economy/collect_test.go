package economy

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

// Buys a 1000-coin worker (6% monthly, 2 coins/day) and returns the position.
func buyWorker(t *testing.T, db *gorm.DB, accID uint) *models.Position {
	t.Helper()
	entry := newCatalogEntry(t, db, 1000, 6, 3, 5)
	receipt, err := Buy(db, accID, entry.ID, models.ModeWorker)
	if err != nil {
		t.Fatalf("buy worker: %v", err)
	}
	return receipt.Position
}

func TestCollectPaysAccruedYield(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)

	advanceClock(t, 12*time.Hour)
	receipt, err := Collect(db, pos.ID, acc.ID)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if receipt.Payable != 1.0 {
		t.Fatalf("payable = %v, want 1.0", receipt.Payable)
	}
	if receipt.Gap != 0 {
		t.Fatalf("gap = %v, want 0", receipt.Gap)
	}
	if receipt.NewBalance != 1.0 {
		t.Fatalf("balance = %v, want 1.0", receipt.NewBalance)
	}
	mustReconcile(t, db, acc.ID)
}

func TestCollectTooSoon(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)

	advanceClock(t, MinCollectInterval-time.Second)
	if _, err := Collect(db, pos.ID, acc.ID); !errors.Is(err, ErrTooSoon) {
		t.Fatalf("err = %v, want ErrTooSoon", err)
	}
	// Nothing may land on the ledger from a refused collection.
	var count int64
	db.Model(&models.LedgerEntry{}).Where("kind = ?", models.KindCollection).Count(&count)
	if count != 0 {
		t.Fatalf("found %d collection entries after ErrTooSoon", count)
	}
}

func TestCollectAdvancesWindow(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)

	advanceClock(t, 12*time.Hour)
	if _, err := Collect(db, pos.ID, acc.ID); err != nil {
		t.Fatalf("first collect: %v", err)
	}
	// Immediately after a collection the window restarts at zero.
	if _, err := Collect(db, pos.ID, acc.ID); !errors.Is(err, ErrTooSoon) {
		t.Fatalf("err = %v, want ErrTooSoon right after collecting", err)
	}
	advanceClock(t, 6*time.Hour)
	receipt, err := Collect(db, pos.ID, acc.ID)
	if err != nil {
		t.Fatalf("second collect: %v", err)
	}
	if receipt.Payable != 0.5 {
		t.Fatalf("payable = %v, want 0.5 for 6h", receipt.Payable)
	}
	if got := balanceOf(t, db, acc.ID); got != 1.5 {
		t.Fatalf("balance = %v, want 1.5", got)
	}
}

func TestCollectRoutesGapToHouse(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)
	houseBefore := houseBalance(t, db)

	advanceClock(t, 48*time.Hour)
	receipt, err := Collect(db, pos.ID, acc.ID)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if receipt.Payable != 2.0 {
		t.Fatalf("payable = %v, want 2.0", receipt.Payable)
	}
	if receipt.Gap != 2.0 {
		t.Fatalf("gap = %v, want 2.0", receipt.Gap)
	}
	if got := houseBalance(t, db); got != houseBefore+2.0 {
		t.Fatalf("house balance = %v, want %v", got, houseBefore+2.0)
	}

	var gapEntry models.LedgerEntry
	if err := db.Where("kind = ? AND position_id = ?", models.KindGap, pos.ID).First(&gapEntry).Error; err != nil {
		t.Fatalf("gap ledger entry missing: %v", err)
	}
	mustReconcile(t, db, acc.ID)
}

func TestCollectConcurrentFailsFast(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)
	advanceClock(t, 12*time.Hour)

	// Simulate an in-flight collection holding the position lock.
	release, err := acquirePosition(pos.ID)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if _, err := Collect(db, pos.ID, acc.ID); !errors.Is(err, ErrAlreadyInProgress) {
		t.Fatalf("err = %v, want ErrAlreadyInProgress", err)
	}
	release()

	// Exactly one payout once the lock is free.
	if _, err := Collect(db, pos.ID, acc.ID); err != nil {
		t.Fatalf("collect after release: %v", err)
	}
	var count int64
	db.Model(&models.LedgerEntry{}).Where("kind = ? AND position_id = ?", models.KindCollection, pos.ID).Count(&count)
	if count != 1 {
		t.Fatalf("found %d collection entries, want 1", count)
	}
}

func TestCollectOwnershipAndState(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	other := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)
	advanceClock(t, 12*time.Hour)

	if _, err := Collect(db, pos.ID, other.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, err := Collect(db, 404, acc.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	if err := db.Model(&models.Position{}).Where("id = ?", pos.ID).Update("status", models.StatusPaused).Error; err != nil {
		t.Fatalf("pause position: %v", err)
	}
	if _, err := Collect(db, pos.ID, acc.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState for paused position", err)
	}
}
