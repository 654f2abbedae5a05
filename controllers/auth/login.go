package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Marjangazi/DigiWorko-V1/database"
	"github.com/Marjangazi/DigiWorko-V1/models"
	"github.com/Marjangazi/DigiWorko-V1/utils"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /v3/login
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Not valid JSON"})
		return
	}

	db := database.DB
	var acc models.Account
	err := db.Where("username = ? OR email = ?", strings.TrimSpace(req.Username), strings.ToLower(strings.TrimSpace(req.Username))).
		First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Wrong username or password"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	if acc.Role == "house" {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Wrong username or password"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(acc.Password), []byte(req.Password)) != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Wrong username or password"})
		return
	}

	expiry := 24 * time.Hour
	if acc.Role == "admin" {
		expiry = 6 * time.Hour
	}
	token, err := utils.GenerateAccessToken(acc.ID, acc.Role, expiry)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Something went wrong, please try again"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Successfully", Data: map[string]interface{}{
		"id":       acc.ID,
		"username": acc.Username,
		"role":     acc.Role,
		"verified": acc.Verified,
		"token":    token,
	}})
}
