package users

import (
	"net/http"

	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// POST /v3/cron/maintenance-decay
// Daily upkeep pass. Idempotent within a 24h window; the job runner may
// retry freely.
func CronMaintenanceDecayHandler(w http.ResponseWriter, r *http.Request) {
	processed, paused, err := economy.MaintenanceDecay(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cron executed", Data: map[string]interface{}{
		"processed": processed,
		"paused":    paused,
	}})
}

// POST /v3/cron/maturity-sweep
// Pays out every matured investor position exactly once.
func CronMaturitySweepHandler(w http.ResponseWriter, r *http.Request) {
	credited, err := economy.MaturitySweep(database.DB)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Cron executed", Data: map[string]interface{}{
		"credited": credited,
	}})
}
