package middleware

import (
	"net/http"
	"os"

	"github.com/Marjangazi/DigiWorko-V1/utils"
)

// CronKeyMiddleware guards the scheduled-job endpoints with a shared secret.
// The job runner retries freely; the handlers behind this are idempotent.
func CronKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get("X-CRON-KEY")
		if key == "" || key != os.Getenv("CRON_KEY") {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
