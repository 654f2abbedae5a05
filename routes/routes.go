package routes

import (
	"encoding/json"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/Marjangazi/DigiWorko-V1/controllers"
	"github.com/Marjangazi/DigiWorko-V1/controllers/users"
	"github.com/Marjangazi/DigiWorko-V1/middleware"
)

// trustedProxies reads the comma-separated CIDR list of proxies whose
// forwarding headers the rate limiter may trust.
func trustedProxies() []string {
	env := os.Getenv("TRUSTED_PROXY_CIDRS")
	if env == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(env, ",") {
		if c := strings.TrimSpace(p); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
		"service":   "digiworko-api",
	})
}

func InitRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	origins := []string{"http://localhost:3000", "http://localhost:5173"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		for _, p := range strings.Split(env, ",") {
			if o := strings.TrimSpace(p); o != "" {
				origins = append(origins, o)
			}
		}
	}
	r.Use(func(next http.Handler) http.Handler {
		return handlers.CORS(
			handlers.AllowedOrigins(origins),
			handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			handlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-CRON-KEY"}),
			handlers.AllowCredentials(),
		)(next)
	})

	api := r.PathPrefix("/v3").Subrouter()
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	// Public read-only previews
	api.Handle("/shop", http.HandlerFunc(controllers.ShopListHandler)).Methods(http.MethodGet)
	api.Handle("/promotion", http.HandlerFunc(controllers.PromotionHandler)).Methods(http.MethodGet)

	// Scheduled jobs, guarded by the cron key. 1000/hour is plenty for a
	// runner that fires twice a day plus retries.
	cronLimiter := middleware.NewIPRateLimiter(1000, time.Hour, nil)
	cron := func(h http.HandlerFunc) http.Handler {
		return cronLimiter.Middleware(middleware.CronKeyMiddleware(h))
	}
	api.Handle("/cron/maintenance-decay", cron(users.CronMaintenanceDecayHandler)).Methods(http.MethodPost)
	api.Handle("/cron/maturity-sweep", cron(users.CronMaturitySweepHandler)).Methods(http.MethodPost)

	UsersRoutes(api)
	AdminRoutes(api)

	return r
}
