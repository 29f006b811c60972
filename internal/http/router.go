package http

import (
	"net/http"

	"github.com/arcbound/accountd/internal/service"
	"github.com/arcbound/accountd/internal/store"
	"github.com/arcbound/accountd/pkg/httpx"
)

// Router binds the account and token services to the HTTP surface.
type Router struct {
	Mux *http.ServeMux

	Accounts *service.AccountService
	Tokens   *service.TokenService
	Identity *service.IdentityService
	Store    store.Store

	Service string
	Version string

	middlewares []httpx.Middleware
}

// NewRouter builds the router and registers every route.
func NewRouter(
	accounts *service.AccountService,
	tokens *service.TokenService,
	identity *service.IdentityService,
	st store.Store,
	middlewares ...httpx.Middleware,
) *Router {
	router := &Router{
		Mux:         http.NewServeMux(),
		Accounts:    accounts,
		Tokens:      tokens,
		Identity:    identity,
		Store:       st,
		Service:     "accountd",
		Version:     "dev",
		middlewares: middlewares,
	}
	router.applyRoutes()
	return router
}

func (router *Router) applyRoutes() {
	mux := router.Mux

	mux.HandleFunc("GET /", router.handleRoot)
	mux.HandleFunc("GET /livez", router.handleLivez)
	mux.HandleFunc("GET /readyz", router.handleReadyz)

	mux.HandleFunc("POST /v1/auth/register", router.handleRegister)
	mux.HandleFunc("POST /v1/auth/login", router.handleLogin)
	mux.HandleFunc("POST /v1/auth/refresh", router.handleRefresh)
	mux.HandleFunc("POST /v1/auth/logout", router.handleLogout)
	mux.HandleFunc("GET /v1/auth/me", router.requireActiveAccount(router.handleMe))

	mux.HandleFunc("GET /v1/accounts", router.requireSuperuser(router.handleListAccounts))
	mux.HandleFunc("POST /v1/accounts", router.requireSuperuser(router.handleCreateAccount))
	mux.HandleFunc("GET /v1/accounts/{id}", router.requireActiveAccount(router.handleGetAccount))
	mux.HandleFunc("PUT /v1/accounts/{id}", router.requireActiveAccount(router.handleUpdateAccount))
	mux.HandleFunc("DELETE /v1/accounts/{id}", router.requireSuperuser(router.handleDeleteAccount))
	mux.HandleFunc("POST /v1/accounts/{id}/activate", router.requireSuperuser(router.handleActivateAccount))
	mux.HandleFunc("POST /v1/accounts/{id}/deactivate", router.requireSuperuser(router.handleDeactivateAccount))
}

// ServeHTTP runs the request through the middleware chain into the mux.
func (router *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.Chain(router.Mux, router.middlewares...).ServeHTTP(w, r)
}
