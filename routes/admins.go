package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Marjangazi/DigiWorko-V1/controllers/admins"
	"github.com/Marjangazi/DigiWorko-V1/middleware"
)

func AdminRoutes(api *mux.Router) {
	adminLimiter := middleware.NewIPRateLimiter(60, time.Minute, trustedProxies())

	admin := func(h http.HandlerFunc) http.Handler {
		return adminLimiter.Middleware(middleware.AuthMiddleware(middleware.AdminMiddleware(h)))
	}

	api.Handle("/admin/dashboard", admin(admins.DashboardHandler)).Methods(http.MethodGet)

	api.Handle("/admin/catalog", admin(admins.ListCatalogHandler)).Methods(http.MethodGet)
	api.Handle("/admin/catalog", admin(admins.CreateCatalogHandler)).Methods(http.MethodPost)
	api.Handle("/admin/catalog/{id:[0-9]+}", admin(admins.UpdateCatalogHandler)).Methods(http.MethodPut)

	api.Handle("/admin/promotion/activate", admin(admins.ActivatePromotionHandler)).Methods(http.MethodPost)
	api.Handle("/admin/promotion/deactivate", admin(admins.DeactivatePromotionHandler)).Methods(http.MethodPost)

	api.Handle("/admin/adjust", admin(admins.AdjustBalanceHandler)).Methods(http.MethodPost)
	api.Handle("/admin/accounts/{id:[0-9]+}/verify", admin(admins.ToggleVerifiedHandler)).Methods(http.MethodPost)
	api.Handle("/admin/reconcile/{id:[0-9]+}", admin(admins.ReconcileHandler)).Methods(http.MethodGet)
}
