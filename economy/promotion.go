package economy

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/models"
)

// GetPromotion loads the singleton promotion row, creating an inactive one on
// first use. Every computation that needs promotion state reads it explicitly
// through here and evaluates Effective(now) itself; nothing trusts the raw
// Active flag.
func GetPromotion(db *gorm.DB) (*models.Promotion, error) {
	var promo models.Promotion
	err := db.First(&promo, 1).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		promo = models.Promotion{ID: 1}
		if err := db.Create(&promo).Error; err != nil {
			return nil, err
		}
		return &promo, nil
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// ActivatePromotion starts a flash sale running for the given duration.
// Last-writer-wins; no history of past promotions is kept.
func ActivatePromotion(db *gorm.DB, discountPct, bonusYieldPct float64, duration time.Duration) (*models.Promotion, error) {
	promo, err := GetPromotion(db)
	if err != nil {
		return nil, err
	}
	endsAt := timeNow().Add(duration)
	promo.Active = true
	promo.DiscountPct = discountPct
	promo.BonusYieldPct = bonusYieldPct
	promo.EndsAt = &endsAt
	if err := db.Save(promo).Error; err != nil {
		return nil, err
	}
	return promo, nil
}

// DeactivatePromotion clears the active flag. Positions bought during the
// sale keep their snapshotted bonus.
func DeactivatePromotion(db *gorm.DB) (*models.Promotion, error) {
	promo, err := GetPromotion(db)
	if err != nil {
		return nil, err
	}
	promo.Active = false
	if err := db.Save(promo).Error; err != nil {
		return nil, err
	}
	return promo, nil
}
