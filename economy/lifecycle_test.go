package economy

import (
	"errors"
	"testing"
	"time"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

func TestReleasePaysPrincipalPlusFixedYield(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	entry := newCatalogEntry(t, db, 1000, 6, 3, 5)

	receipt, err := Buy(db, acc.ID, entry.ID, models.ModeInvestor)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	pos := receipt.Position

	// A day short of maturity nothing pays out.
	advanceClock(t, InvestorTerm-24*time.Hour)
	if _, err := Release(db, pos.ID, acc.ID); !errors.Is(err, ErrNotMatured) {
		t.Fatalf("err = %v, want ErrNotMatured", err)
	}

	advanceClock(t, 24*time.Hour)

	// Past the lock period the stored row still says active, but it must
	// already read as matured.
	var stored models.Position
	if err := db.First(&stored, pos.ID).Error; err != nil {
		t.Fatalf("reload position: %v", err)
	}
	if stored.Status != models.StatusActive {
		t.Fatalf("stored status = %s, want active before release", stored.Status)
	}
	if got := stored.EffectiveStatus(timeNow()); got != models.StatusMatured {
		t.Fatalf("effective status = %s, want matured", got)
	}

	mr, err := Release(db, pos.ID, acc.ID)
	if err != nil {
		t.Fatalf("release: %v", err)
	}
	if mr.Payout != 1050 {
		t.Fatalf("payout = %v, want 1050", mr.Payout)
	}
	if got := balanceOf(t, db, acc.ID); got != 1050 {
		t.Fatalf("balance = %v, want 1050", got)
	}

	// The position is closed; a second release must not pay again.
	if _, err := Release(db, pos.ID, acc.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState on re-release", err)
	}
	if got := balanceOf(t, db, acc.ID); got != 1050 {
		t.Fatalf("balance after re-release = %v, want unchanged 1050", got)
	}
	mustReconcile(t, db, acc.ID)
}

func TestMaturitySweepCreditsOnceAcrossReruns(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 2500)
	entry := newCatalogEntry(t, db, 1000, 6, 3, 5)

	if _, err := Buy(db, acc.ID, entry.ID, models.ModeInvestor); err != nil {
		t.Fatalf("buy first: %v", err)
	}
	if _, err := Buy(db, acc.ID, entry.ID, models.ModeInvestor); err != nil {
		t.Fatalf("buy second: %v", err)
	}

	if n, err := MaturitySweep(db); err != nil || n != 0 {
		t.Fatalf("premature sweep credited %d (err %v), want 0", n, err)
	}

	advanceClock(t, InvestorTerm)
	if n, err := MaturitySweep(db); err != nil || n != 2 {
		t.Fatalf("sweep credited %d (err %v), want 2", n, err)
	}
	if n, err := MaturitySweep(db); err != nil || n != 0 {
		t.Fatalf("rerun sweep credited %d (err %v), want 0", n, err)
	}
	// 500 + 2 * 1050
	if got := balanceOf(t, db, acc.ID); got != 2600 {
		t.Fatalf("balance = %v, want 2600", got)
	}
	mustReconcile(t, db, acc.ID)
}

func TestRepairRestoresHealthAndCharges(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1500)
	pos := buyWorker(t, db, acc.ID)

	// Full health rejects the repair instead of taking the money.
	if _, err := Repair(db, pos.ID, acc.ID); !errors.Is(err, ErrNotDamaged) {
		t.Fatalf("err = %v, want ErrNotDamaged", err)
	}

	if err := db.Model(&models.Position{}).Where("id = ?", pos.ID).Update("health_pct", 40).Error; err != nil {
		t.Fatalf("damage position: %v", err)
	}
	receipt, err := Repair(db, pos.ID, acc.ID)
	if err != nil {
		t.Fatalf("repair: %v", err)
	}
	if receipt.Cost != 100 {
		t.Fatalf("cost = %v, want 100 (10%% of price)", receipt.Cost)
	}
	var got models.Position
	if err := db.First(&got, pos.ID).Error; err != nil {
		t.Fatalf("reload position: %v", err)
	}
	if got.HealthPct != 100 || got.Status != models.StatusActive {
		t.Fatalf("position = %v%%/%s, want 100/active", got.HealthPct, got.Status)
	}
	if bal := balanceOf(t, db, acc.ID); bal != 400 {
		t.Fatalf("balance = %v, want 400", bal)
	}
	mustReconcile(t, db, acc.ID)
}

func TestRepairPausedRestartsAccrualWindow(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1500)
	pos := buyWorker(t, db, acc.ID)

	if err := db.Model(&models.Position{}).Where("id = ?", pos.ID).
		Updates(map[string]interface{}{"status": models.StatusPaused, "health_pct": 0}).Error; err != nil {
		t.Fatalf("break position: %v", err)
	}

	// Ten days broken must not become ten days of yield after the fix.
	repairedAt := advanceClock(t, 10*24*time.Hour)
	if _, err := Repair(db, pos.ID, acc.ID); err != nil {
		t.Fatalf("repair: %v", err)
	}
	var got models.Position
	if err := db.First(&got, pos.ID).Error; err != nil {
		t.Fatalf("reload position: %v", err)
	}
	if !got.LastServicedAt.Equal(repairedAt) {
		t.Fatalf("last serviced = %v, want reset to %v", got.LastServicedAt, repairedAt)
	}

	advanceClock(t, 12*time.Hour)
	receipt, err := Collect(db, pos.ID, acc.ID)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if receipt.Payable != 1.0 {
		t.Fatalf("payable = %v, want 1.0 for the 12h since repair", receipt.Payable)
	}
}

func TestCloseForfeitsWithoutRefund(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000)
	pos := buyWorker(t, db, acc.ID)
	advanceClock(t, 12*time.Hour)

	if err := Close(db, pos.ID, acc.ID); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := balanceOf(t, db, acc.ID); got != 0 {
		t.Fatalf("balance = %v, want 0 (no refund)", got)
	}
	if err := Close(db, pos.ID, acc.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState on double close", err)
	}
	if _, err := Collect(db, pos.ID, acc.ID); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("err = %v, want ErrInvalidState collecting closed position", err)
	}
}

func TestMaintenanceDecayChargesAndWears(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1100)
	pos := buyWorker(t, db, acc.ID) // price 1000, maintenance 3%/month = 1 coin/day
	houseBefore := houseBalance(t, db)

	advanceClock(t, 25*time.Hour)
	processed, paused, err := MaintenanceDecay(db)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if processed != 1 || paused != 0 {
		t.Fatalf("processed=%d paused=%d, want 1/0", processed, paused)
	}
	var got models.Position
	if err := db.First(&got, pos.ID).Error; err != nil {
		t.Fatalf("reload position: %v", err)
	}
	if got.HealthPct != 97 {
		t.Fatalf("health = %v, want 97", got.HealthPct)
	}
	if got.LastMaintainedAt == nil {
		t.Fatal("last_maintained_at not set")
	}
	if bal := balanceOf(t, db, acc.ID); bal != 99 {
		t.Fatalf("balance = %v, want 99", bal)
	}
	if hb := houseBalance(t, db); hb != houseBefore+1 {
		t.Fatalf("house balance = %v, want %v", hb, houseBefore+1)
	}

	// Re-running inside the same 24h window is a no-op.
	processed, _, err = MaintenanceDecay(db)
	if err != nil {
		t.Fatalf("rerun decay: %v", err)
	}
	if processed != 0 {
		t.Fatalf("rerun processed %d, want 0", processed)
	}
	mustReconcile(t, db, acc.ID)
}

func TestMaintenanceDecayPausesBrokePositions(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 1000.5)
	pos := buyWorker(t, db, acc.ID) // leaves 0.5, below the 1 coin daily fee

	advanceClock(t, 25*time.Hour)
	processed, paused, err := MaintenanceDecay(db)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if processed != 1 || paused != 1 {
		t.Fatalf("processed=%d paused=%d, want 1/1", processed, paused)
	}
	var got models.Position
	if err := db.First(&got, pos.ID).Error; err != nil {
		t.Fatalf("reload position: %v", err)
	}
	if got.Status != models.StatusPaused {
		t.Fatalf("status = %s, want paused", got.Status)
	}
	// Pausing never charges a fee the account cannot cover.
	if bal := balanceOf(t, db, acc.ID); bal != 0.5 {
		t.Fatalf("balance = %v, want untouched 0.5", bal)
	}
	mustReconcile(t, db, acc.ID)
}

func TestMaintenanceDecayPausesAtZeroHealth(t *testing.T) {
	db := testDB(t)
	setClock(t, time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC))
	acc := newAccount(t, db, 2000)
	pos := buyWorker(t, db, acc.ID)

	if err := db.Model(&models.Position{}).Where("id = ?", pos.ID).Update("health_pct", 2).Error; err != nil {
		t.Fatalf("wear position: %v", err)
	}
	advanceClock(t, 25*time.Hour)
	_, paused, err := MaintenanceDecay(db)
	if err != nil {
		t.Fatalf("decay: %v", err)
	}
	if paused != 1 {
		t.Fatalf("paused = %d, want 1", paused)
	}
	var got models.Position
	if err := db.First(&got, pos.ID).Error; err != nil {
		t.Fatalf("reload position: %v", err)
	}
	if got.HealthPct != 0 || got.Status != models.StatusPaused {
		t.Fatalf("position = %v%%/%s, want 0/paused", got.HealthPct, got.Status)
	}
}

func TestAdjustDustKeepsLedgerBalanced(t *testing.T) {
	db := testDB(t)
	acc := newAccount(t, db, 0)

	// Below coin precision the adjustment is refused outright instead of
	// leaving a ledger entry the balance never saw.
	if _, err := Adjust(db, acc.ID, 0.00004, "dust"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount", err)
	}
	if _, err := Adjust(db, acc.ID, -0.00004, "dust"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("err = %v, want ErrInvalidAmount for negative dust", err)
	}
	var count int64
	db.Model(&models.LedgerEntry{}).Where("account_id = ?", acc.ID).Count(&count)
	if count != 0 {
		t.Fatalf("found %d ledger entries after refused dust", count)
	}

	// Sub-precision tails are rounded identically into the balance and the
	// ledger entry, so repeated odd amounts cannot drift the two apart.
	receipt, err := Adjust(db, acc.ID, 10.00004, "credit")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if receipt.Amount != 10.0 {
		t.Fatalf("recorded amount = %v, want rounded 10.0", receipt.Amount)
	}
	if _, err := Adjust(db, acc.ID, 0.00006, "tail"); err != nil {
		t.Fatalf("adjust tail: %v", err)
	}
	if got := balanceOf(t, db, acc.ID); got != 10.0001 {
		t.Fatalf("balance = %v, want 10.0001", got)
	}
	mustReconcile(t, db, acc.ID)
}

func TestAdjustWritesLedger(t *testing.T) {
	db := testDB(t)
	acc := newAccount(t, db, 100)

	receipt, err := Adjust(db, acc.ID, 250, "Promo credit")
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if receipt.NewBalance != 350 {
		t.Fatalf("balance = %v, want 350", receipt.NewBalance)
	}
	if _, err := Adjust(db, acc.ID, -1000, "Clawback"); !errors.Is(err, ErrInsufficientBalance) {
		t.Fatalf("err = %v, want ErrInsufficientBalance", err)
	}
	mustReconcile(t, db, acc.ID)
}
