package routes

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/Marjangazi/DigiWorko-V1/controllers/auth"
	"github.com/Marjangazi/DigiWorko-V1/controllers/users"
	"github.com/Marjangazi/DigiWorko-V1/middleware"
)

func UsersRoutes(api *mux.Router) {
	authLimiter := middleware.NewIPRateLimiter(10, time.Minute, trustedProxies())
	userLimiter := middleware.NewIPRateLimiter(120, time.Minute, trustedProxies())

	public := func(h http.HandlerFunc) http.Handler {
		return authLimiter.Middleware(h)
	}
	protected := func(h http.HandlerFunc) http.Handler {
		return userLimiter.Middleware(middleware.AuthMiddleware(h))
	}

	api.Handle("/register", public(auth.RegisterHandler)).Methods(http.MethodPost)
	api.Handle("/login", public(auth.LoginHandler)).Methods(http.MethodPost)
	api.Handle("/logout", protected(auth.LogoutHandler)).Methods(http.MethodPost)

	api.Handle("/users/info", protected(users.InfoHandler)).Methods(http.MethodGet)
	api.Handle("/users/ledger", protected(users.LedgerHistoryHandler)).Methods(http.MethodGet)

	api.Handle("/users/positions", protected(users.ListPositionsHandler)).Methods(http.MethodGet)
	api.Handle("/users/positions", protected(users.BuyHandler)).Methods(http.MethodPost)
	api.Handle("/users/positions/{id:[0-9]+}/collect", protected(users.CollectHandler)).Methods(http.MethodPost)
	api.Handle("/users/positions/{id:[0-9]+}/repair", protected(users.RepairHandler)).Methods(http.MethodPost)
	api.Handle("/users/positions/{id:[0-9]+}/release", protected(users.ReleaseHandler)).Methods(http.MethodPost)
	api.Handle("/users/positions/{id:[0-9]+}/close", protected(users.CloseHandler)).Methods(http.MethodPost)
}
