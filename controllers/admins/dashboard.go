package admins

import (
	"net/http"

	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// GET /v3/admin/dashboard
// Read-only aggregates over ledger and position state; never feeds back into
// engine invariants.
func DashboardHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var totalCoins float64
	row := db.Model(&models.Account{}).Where("role = ?", "user").
		Select("COALESCE(SUM(balance), 0)").Row()
	if err := row.Scan(&totalCoins); err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	var house models.Account
	vault := map[string]float64{"gap": 0, "maintenance": 0}
	if err := db.Where("role = ?", "house").First(&house).Error; err == nil {
		type kindSum struct {
			Kind string
			Sum  float64
		}
		var sums []kindSum
		db.Model(&models.LedgerEntry{}).
			Where("account_id = ?", house.ID).
			Select("kind, COALESCE(SUM(amount), 0) AS sum").
			Group("kind").Scan(&sums)
		for _, s := range sums {
			vault[s.Kind] = utils.RoundFloat(s.Sum, 4)
		}
	}

	var positions []models.Position
	if err := db.Preload("Catalog").
		Where("status IN ?", []string{models.StatusActive, models.StatusPaused, models.StatusMatured}).
		Find(&positions).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}

	var investorCapital, workerDailyYield, dailyRent float64
	workerCount, investorCount := 0, 0
	for i := range positions {
		pos := &positions[i]
		if pos.Catalog == nil {
			continue
		}
		switch pos.Mode {
		case models.ModeInvestor:
			investorCapital += pos.Catalog.BasePriceCoins
			investorCount++
		case models.ModeWorker:
			workerCount++
			if pos.Status == models.StatusActive {
				workerDailyYield += economy.RatePerSec(pos.Catalog, pos.BonusYieldPct) * 86400
				dailyRent += economy.DailyMaintenanceFee(pos.Catalog)
			}
		}
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"total_coins":        utils.RoundFloat(totalCoins, 4),
		"investor_capital":   utils.RoundFloat(investorCapital, 4),
		"worker_daily_yield": utils.RoundFloat(workerDailyYield, 4),
		"daily_maintenance":  utils.RoundFloat(dailyRent, 4),
		"vault": map[string]interface{}{
			"gap_coins":         vault["gap"],
			"maintenance_coins": vault["maintenance"],
			"total":             utils.RoundFloat(vault["gap"]+vault["maintenance"], 4),
		},
		"positions": map[string]interface{}{
			"total":     len(positions),
			"workers":   workerCount,
			"investors": investorCount,
		},
	}})
}
