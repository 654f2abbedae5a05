package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/Marjangazi/DigiWorko-V1/economy"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// WriteEngineError maps the engine's typed errors onto HTTP responses. The
// engine never retries on its own; validation errors come back verbatim and
// anything unexpected is a 500 the caller may retry (state changes only on
// commit).
func WriteEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, economy.ErrNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Position not found"})
	case errors.Is(err, economy.ErrNotOwner):
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Not your position"})
	case errors.Is(err, economy.ErrInvalidMode):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not available for this asset mode"})
	case errors.Is(err, economy.ErrInvalidState):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Not available in the asset's current state"})
	case errors.Is(err, economy.ErrInvalidAmount):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Amount is too small"})
	case errors.Is(err, economy.ErrTooSoon):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Too soon to collect, come back later"})
	case errors.Is(err, economy.ErrInsufficientBalance):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Insufficient balance"})
	case errors.Is(err, economy.ErrAlreadyInProgress):
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "Operation already in progress, retry shortly"})
	case errors.Is(err, economy.ErrCatalogInactive):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "This asset is not for sale"})
	case errors.Is(err, economy.ErrNotDamaged):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Asset does not need repair"})
	case errors.Is(err, economy.ErrNotMatured):
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Asset has not matured yet"})
	default:
		log.Printf("[engine] internal error: %v", err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
	}
}
