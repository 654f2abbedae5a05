package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/controllers"
	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

type AdjustRequest struct {
	AccountID uint    `json:"account_id"`
	Amount    float64 `json:"amount"`
	Note      string  `json:"note"`
}

// POST /v3/admin/adjust
// Arbitrary authorized credit/debit with a note. The referral subsystem's
// commission payouts also land here.
func AdjustBalanceHandler(w http.ResponseWriter, r *http.Request) {
	var req AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}
	if req.AccountID == 0 || req.Amount == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Account and non-zero amount required"})
		return
	}
	note := strings.TrimSpace(req.Note)
	if note == "" {
		note = "Admin adjustment"
	}

	receipt, err := economy.Adjust(database.DB, req.AccountID, req.Amount, note)
	if err != nil {
		controllers.WriteEngineError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Balance adjusted", Data: receipt})
}

// POST /v3/admin/accounts/{id}/verify
func ToggleVerifiedHandler(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}

	db := database.DB
	var acc models.Account
	if err := db.First(&acc, uint(id64)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Account not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	if err := db.Model(&acc).Update("verified", !acc.Verified).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Verification updated", Data: map[string]interface{}{
		"id":       acc.ID,
		"verified": !acc.Verified,
	}})
}

// GET /v3/admin/reconcile/{id}
// Ledger-vs-balance check for one account.
func ReconcileHandler(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}

	rec, err := economy.Reconcile(database.DB, uint(id64))
	if err != nil {
		controllers.WriteEngineError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: rec})
}
