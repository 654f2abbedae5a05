package admins

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

type ActivatePromotionRequest struct {
	DiscountPct     float64 `json:"discount_pct"`
	BonusYieldPct   float64 `json:"bonus_yield_pct"`
	DurationSeconds int64   `json:"duration_seconds"`
}

// POST /v3/admin/promotion/activate
func ActivatePromotionHandler(w http.ResponseWriter, r *http.Request) {
	var req ActivatePromotionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}
	if req.DiscountPct < 0 || req.DiscountPct >= 100 || req.BonusYieldPct < 0 || req.DurationSeconds <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid promotion parameters"})
		return
	}

	promo, err := economy.ActivatePromotion(database.DB, req.DiscountPct, req.BonusYieldPct,
		time.Duration(req.DurationSeconds)*time.Second)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Promotion activated", Data: promo})
}

// POST /v3/admin/promotion/deactivate
func DeactivatePromotionHandler(w http.ResponseWriter, r *http.Request) {
	promo, err := economy.DeactivatePromotion(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Promotion deactivated", Data: promo})
}
