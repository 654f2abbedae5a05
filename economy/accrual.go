package economy

import (
	"time"

	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

const (
	// CollectWindow caps the payable portion of an accrual at 24 hours.
	CollectWindow = 86400 * time.Second
	// MaxGapWindow bounds how much abandoned yield the house vault records
	// for a single collection (30 days including the payable 24h).
	MaxGapWindow = 30 * 24 * time.Hour
	// InvestorTerm is the lock period for investor positions.
	InvestorTerm = 30 * 24 * time.Hour
	// RepairCostPct of the catalog base price, charged by Repair.
	RepairCostPct = 10.0
)

// timeNow is the engine's clock. Handlers never pass a caller-supplied
// timestamp into the engine; tests substitute a fixed clock here.
var timeNow = time.Now

// Accrual is the result of the pure accrual computation. Payable is what the
// owner can collect, Gap is the portion beyond the 24h window that the house
// vault keeps.
type Accrual struct {
	Payable    float64 `json:"payable"`
	Gap        float64 `json:"gap"`
	RatePerSec float64 `json:"rate_per_sec"`
	ElapsedSec float64 `json:"elapsed_sec"`
}

// RatePerSec returns the per-second yield of a worker position:
// price * (grossYield% + frozen bonus%) / 30 days. Unrounded so callers can
// multiply by long windows without compounding rounding error.
func RatePerSec(entry *models.AssetCatalogEntry, bonusYieldPct float64) float64 {
	effective := entry.WorkerGrossYieldPct + bonusYieldPct
	return entry.BasePriceCoins * (effective / 100) / 30 / 86400
}

// Accrued computes, without side effects, what a worker position has earned
// since it was last serviced. Identical inputs always produce identical
// output; the collect handler and the read-only position preview both go
// through here.
func Accrued(pos *models.Position, entry *models.AssetCatalogEntry, now time.Time) (Accrual, error) {
	if pos.Mode != models.ModeWorker {
		return Accrual{}, ErrInvalidMode
	}

	elapsed := now.Sub(pos.LastServicedAt).Seconds()
	if elapsed < 0 {
		// Stored timestamp ahead of the clock. Clamp rather than pay out
		// for negative time.
		elapsed = 0
	}

	rate := RatePerSec(entry, pos.BonusYieldPct)

	payableSecs := elapsed
	if max := CollectWindow.Seconds(); payableSecs > max {
		payableSecs = max
	}

	gapSecs := elapsed
	if max := MaxGapWindow.Seconds(); gapSecs > max {
		gapSecs = max
	}
	gapSecs -= CollectWindow.Seconds()
	if gapSecs < 0 {
		gapSecs = 0
	}

	return Accrual{
		Payable:    utils.RoundFloat(rate*payableSecs, 4),
		Gap:        utils.RoundFloat(rate*gapSecs, 4),
		RatePerSec: rate,
		ElapsedSec: elapsed,
	}, nil
}

// EffectivePrice applies the promotion discount to a catalog entry, when the
// promotion is effective at the given instant.
func EffectivePrice(entry *models.AssetCatalogEntry, promo *models.Promotion, now time.Time) float64 {
	price := entry.BasePriceCoins
	if promo.Effective(now) {
		price = price * (1 - promo.DiscountPct/100)
	}
	return utils.RoundFloat(price, 4)
}

// InvestorPayout is principal plus the fixed term yield.
func InvestorPayout(entry *models.AssetCatalogEntry) float64 {
	return utils.RoundFloat(entry.BasePriceCoins*(1+entry.InvestorFixedYieldPct/100), 4)
}

// RepairCost is the flat repair charge for a position of this catalog entry.
func RepairCost(entry *models.AssetCatalogEntry) float64 {
	return utils.RoundFloat(entry.BasePriceCoins*RepairCostPct/100, 4)
}

// DailyMaintenanceFee is the per-day upkeep debit for a worker position.
func DailyMaintenanceFee(entry *models.AssetCatalogEntry) float64 {
	return utils.RoundFloat(entry.BasePriceCoins*(entry.MaintenanceFeePct/100)/30, 4)
}
