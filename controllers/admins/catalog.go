package admins

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

type CatalogRequest struct {
	Name                  string  `json:"name"`
	Description           string  `json:"description"`
	Icon                  string  `json:"icon"`
	BasePriceCoins        float64 `json:"base_price_coins"`
	WorkerGrossYieldPct   float64 `json:"worker_gross_yield_pct"`
	MaintenanceFeePct     float64 `json:"maintenance_fee_pct"`
	InvestorFixedYieldPct float64 `json:"investor_fixed_yield_pct"`
	Active                *bool   `json:"active"`
	SortOrder             int     `json:"sort_order"`
}

func (req *CatalogRequest) validate() string {
	if req.Name == "" {
		return "Name is required"
	}
	if req.BasePriceCoins <= 0 {
		return "Price must be positive"
	}
	if req.WorkerGrossYieldPct < 0 || req.MaintenanceFeePct < 0 || req.InvestorFixedYieldPct < 0 {
		return "Percentages cannot be negative"
	}
	return ""
}

// GET /v3/admin/catalog
func ListCatalogHandler(w http.ResponseWriter, r *http.Request) {
	var entries []models.AssetCatalogEntry
	if err := database.DB.Order("sort_order, id").Find(&entries).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: entries})
}

// POST /v3/admin/catalog
func CreateCatalogHandler(w http.ResponseWriter, r *http.Request) {
	var req CatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	entry := models.AssetCatalogEntry{
		Name:                  req.Name,
		Description:           req.Description,
		Icon:                  req.Icon,
		BasePriceCoins:        req.BasePriceCoins,
		WorkerGrossYieldPct:   req.WorkerGrossYieldPct,
		MaintenanceFeePct:     req.MaintenanceFeePct,
		InvestorFixedYieldPct: req.InvestorFixedYieldPct,
		Active:                true,
		SortOrder:             req.SortOrder,
	}
	if req.Active != nil {
		entry.Active = *req.Active
	}
	if err := database.DB.Create(&entry).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{Success: true, Message: "Catalog entry created", Data: entry})
}

// PUT /v3/admin/catalog/{id}
// Updates write a new config the engine reads on the next operation; running
// positions keep accruing against whatever the catalog says now.
func UpdateCatalogHandler(w http.ResponseWriter, r *http.Request) {
	id64, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil || id64 == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid id"})
		return
	}

	var req CatalogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}
	if msg := req.validate(); msg != "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: msg})
		return
	}

	db := database.DB
	var entry models.AssetCatalogEntry
	if err := db.First(&entry, uint(id64)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Catalog entry not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	entry.Name = req.Name
	entry.Description = req.Description
	entry.Icon = req.Icon
	entry.BasePriceCoins = req.BasePriceCoins
	entry.WorkerGrossYieldPct = req.WorkerGrossYieldPct
	entry.MaintenanceFeePct = req.MaintenanceFeePct
	entry.InvestorFixedYieldPct = req.InvestorFixedYieldPct
	entry.SortOrder = req.SortOrder
	if req.Active != nil {
		entry.Active = *req.Active
	}
	if err := db.Save(&entry).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Catalog entry updated", Data: entry})
}
