package controllers

import (
	"net/http"
	"time"

	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// GET /v3/shop
// Active catalog entries with current effective prices. Display only; the
// purchase path recomputes everything server-side.
func ShopListHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var entries []models.AssetCatalogEntry
	if err := db.Where("active = ?", true).Order("sort_order, id").Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load shop"})
		return
	}

	promo, err := economy.GetPromotion(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load shop"})
		return
	}

	now := time.Now()
	items := make([]map[string]interface{}, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		items = append(items, map[string]interface{}{
			"id":                       e.ID,
			"name":                     e.Name,
			"description":              e.Description,
			"icon":                     e.Icon,
			"base_price_coins":         e.BasePriceCoins,
			"effective_price_coins":    economy.EffectivePrice(e, promo, now),
			"worker_gross_yield_pct":   e.WorkerGrossYieldPct,
			"maintenance_fee_pct":      e.MaintenanceFeePct,
			"investor_fixed_yield_pct": e.InvestorFixedYieldPct,
			"investor_payout_coins":    economy.InvestorPayout(e),
		})
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"items":            items,
		"promotion_active": promo.Effective(now),
	}})
}

// GET /v3/promotion
func PromotionHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	promo, err := economy.GetPromotion(db)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load promotion"})
		return
	}
	now := time.Now()
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"active":          promo.Active,
		"effective":       promo.Effective(now),
		"discount_pct":    promo.DiscountPct,
		"bonus_yield_pct": promo.BonusYieldPct,
		"ends_at":         promo.EndsAt,
	}})
}
