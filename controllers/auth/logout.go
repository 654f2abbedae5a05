package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// POST /v3/logout
// Blacklists the current token's jti until its natural expiry. Best-effort:
// without Redis the short-lived token just ages out.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	authz := r.Header.Get("Authorization")
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))

	claims, err := utils.ValidateAccessToken(tokenStr)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	if jti, ok := claims["jti"].(string); ok && jti != "" {
		ttl := time.Hour
		if expRaw, ok := claims["exp"].(float64); ok {
			if remain := time.Until(time.Unix(int64(expRaw), 0)); remain > 0 {
				ttl = remain
			}
		}
		_ = utils.RevokeJTI(jti, ttl)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Logged out"})
}
