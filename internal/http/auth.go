package http

import (
	"net/http"

	"github.com/arcbound/accountd/pkg/httpx"
)

// handleRegister creates a new account from an open registration request.
//
//	POST /v1/auth/register
func (router *Router) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := router.Accounts.Register(r.Context(), req.Email, req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, newAccountResponse(account))
}

// handleLogin exchanges credentials for an access/refresh token pair.
//
//	POST /v1/auth/login
func (router *Router) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := router.Tokens.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(pair))
}

// handleRefresh mints a new access token against a stored refresh token.
// The refresh token is not rotated and remains valid.
//
//	POST /v1/auth/refresh
func (router *Router) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	pair, err := router.Tokens.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, newTokenResponse(pair))
}

// handleLogout revokes the presented refresh token. Tokens that are unknown
// or already revoked fail with 401 rather than succeeding silently.
//
//	POST /v1/auth/logout
func (router *Router) handleLogout(w http.ResponseWriter, r *http.Request) {
	var req refreshTokenRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := router.Tokens.RevokeRefreshToken(r.Context(), req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "logged out"})
}

// handleMe returns the authenticated caller's own account.
//
//	GET /v1/auth/me
func (router *Router) handleMe(w http.ResponseWriter, r *http.Request) {
	account, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "server_error", "missing account context")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAccountResponse(account))
}
