package economy

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

// PurchaseReceipt reports the outcome of a buy.
type PurchaseReceipt struct {
	Position    *models.Position `json:"position"`
	PricePaid   float64          `json:"price_paid"`
	DiscountPct float64          `json:"discount_pct"`
	NewBalance  float64          `json:"new_balance"`
}

// Buy debits the discounted price and creates the position, all in one
// transaction. The promotion's discount applies only while it is effective;
// the yield bonus effective at this instant is frozen onto the position for
// its whole life.
func Buy(db *gorm.DB, accountID, catalogID uint, mode string) (*PurchaseReceipt, error) {
	if mode != models.ModeWorker && mode != models.ModeInvestor {
		return nil, ErrInvalidMode
	}

	var entry models.AssetCatalogEntry
	if err := db.First(&entry, catalogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !entry.Active {
		return nil, ErrCatalogInactive
	}

	var receipt *PurchaseReceipt
	err := db.Transaction(func(tx *gorm.DB) error {
		acc, err := lockAccount(tx, accountID)
		if err != nil {
			return err
		}

		promo, err := GetPromotion(tx)
		if err != nil {
			return err
		}

		now := timeNow()
		price := EffectivePrice(&entry, promo, now)
		discountPct := 0.0
		bonusPct := 0.0
		if promo.Effective(now) {
			discountPct = promo.DiscountPct
			bonusPct = promo.BonusYieldPct
		}

		pos := models.Position{
			AccountID:          accountID,
			CatalogID:          entry.ID,
			Mode:               mode,
			Status:             models.StatusActive,
			PurchasedAt:        now,
			LastServicedAt:     now,
			HealthPct:          100,
			BonusYieldPct:      bonusPct,
			AppliedDiscountPct: discountPct,
		}
		if mode == models.ModeInvestor {
			maturity := now.Add(InvestorTerm)
			pos.MaturityAt = &maturity
			// Investor positions never accrue per-second and never decay.
			pos.BonusYieldPct = 0
		}
		if err := tx.Create(&pos).Error; err != nil {
			return err
		}

		note := fmt.Sprintf("Purchase %s (%s)", entry.Name, mode)
		if err := apply(tx, acc, -price, models.KindPurchase, &pos.ID, note); err != nil {
			return err
		}

		receipt = &PurchaseReceipt{
			Position:    &pos,
			PricePaid:   price,
			DiscountPct: discountPct,
			NewBalance:  acc.Balance,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}
