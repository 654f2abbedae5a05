package users

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/Marjangazi/DigiWorko-V1/controllers"
	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

type BuyRequest struct {
	CatalogID uint   `json:"catalog_id"`
	Mode      string `json:"mode"`
}

// GET /v3/users/positions
// Owned positions plus a live accrual preview. The preview runs the same
// pure function the collect path uses, so the number on screen is the number
// that gets paid.
func ListPositionsHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	db := database.DB

	var positions []models.Position
	if err := db.Preload("Catalog").
		Where("account_id = ? AND status IN ?", uid, []string{models.StatusActive, models.StatusPaused, models.StatusMatured}).
		Order("purchased_at").Find(&positions).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load positions"})
		return
	}

	now := time.Now()
	rows := make([]map[string]interface{}, 0, len(positions))
	for i := range positions {
		pos := &positions[i]
		row := map[string]interface{}{
			"id":                   pos.ID,
			"catalog_id":           pos.CatalogID,
			"mode":                 pos.Mode,
			"status":               pos.EffectiveStatus(now),
			"purchased_at":         pos.PurchasedAt,
			"last_serviced_at":     pos.LastServicedAt,
			"health_pct":           pos.HealthPct,
			"bonus_yield_pct":      pos.BonusYieldPct,
			"applied_discount_pct": pos.AppliedDiscountPct,
		}
		if pos.Catalog != nil {
			row["name"] = pos.Catalog.Name
			row["icon"] = pos.Catalog.Icon
			if pos.Mode == models.ModeWorker {
				row["repair_cost"] = economy.RepairCost(pos.Catalog)
			}
		}
		switch pos.Mode {
		case models.ModeWorker:
			if pos.Status == models.StatusActive && pos.Catalog != nil {
				if acc, err := economy.Accrued(pos, pos.Catalog, now); err == nil {
					row["accrued"] = acc
				}
			}
		case models.ModeInvestor:
			row["maturity_at"] = pos.MaturityAt
			if pos.Catalog != nil {
				row["payout_coins"] = economy.InvestorPayout(pos.Catalog)
			}
		}
		rows = append(rows, row)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rows})
}

// POST /v3/users/positions
func BuyHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req BuyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}
	mode := strings.ToLower(strings.TrimSpace(req.Mode))
	if mode == "" {
		mode = models.ModeWorker
	}

	receipt, err := economy.Buy(database.DB, uid, req.CatalogID, mode)
	if err != nil {
		controllers.WriteEngineError(w, err)
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Purchase completed", Data: receipt})
}

// positionID pulls the {id} route variable.
func positionID(r *http.Request) (uint, bool) {
	idStr := mux.Vars(r)["id"]
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id64 == 0 {
		return 0, false
	}
	return uint(id64), true
}

// POST /v3/users/positions/{id}/collect
func CollectHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, ok := positionID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid position id"})
		return
	}

	receipt, err := economy.Collect(database.DB, id, uid)
	if err != nil {
		controllers.WriteEngineError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Yield collected", Data: receipt})
}

// POST /v3/users/positions/{id}/repair
func RepairHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, ok := positionID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid position id"})
		return
	}

	receipt, err := economy.Repair(database.DB, id, uid)
	if err != nil {
		controllers.WriteEngineError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Asset repaired", Data: receipt})
}

// POST /v3/users/positions/{id}/release
func ReleaseHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, ok := positionID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid position id"})
		return
	}

	receipt, err := economy.Release(database.DB, id, uid)
	if err != nil {
		controllers.WriteEngineError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Investment released", Data: receipt})
}

// POST /v3/users/positions/{id}/close
func CloseHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := utils.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}
	id, ok := positionID(r)
	if !ok {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid position id"})
		return
	}

	if err := economy.Close(database.DB, id, uid); err != nil {
		controllers.WriteEngineError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Position closed"})
}
