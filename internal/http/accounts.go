package http

import (
	"net/http"
	"strconv"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/service"
	"github.com/arcbound/accountd/pkg/httpx"
)

const (
	defaultListLimit = 100
	maxListLimit     = 1000
)

// handleListAccounts pages through all accounts. Superuser only.
//
//	GET /v1/accounts?skip=0&limit=100
func (router *Router) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	skip, err := queryInt(r, "skip", 0)
	if err != nil || skip < 0 {
		writeBadRequest(w, "skip must be a non-negative integer")
		return
	}

	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil || limit < 0 {
		writeBadRequest(w, "limit must be a non-negative integer")
		return
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	accounts, err := router.Accounts.List(r.Context(), skip, limit)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAccountListResponse(accounts))
}

// handleCreateAccount is the administrative account-creation endpoint. It
// shares semantics with registration but sits behind the superuser gate.
//
//	POST /v1/accounts
func (router *Router) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
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

// handleGetAccount reads one account. Callers may read themselves; reading
// anyone else requires superuser.
//
//	GET /v1/accounts/{id}
func (router *Router) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "server_error", "missing account context")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "account id must be an integer")
		return
	}

	if !service.CanAccess(actor, id) {
		writeServiceError(w, r, service.ErrForbidden)
		return
	}

	account, err := router.Accounts.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAccountResponse(account))
}

// handleUpdateAccount partially updates an account. Same self-or-superuser
// rule as reads; omitted fields keep their stored values.
//
//	PUT /v1/accounts/{id}
func (router *Router) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	actor, ok := accountFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusInternalServerError, "server_error", "missing account context")
		return
	}

	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "account id must be an integer")
		return
	}

	if !service.CanAccess(actor, id) {
		writeServiceError(w, r, service.ErrForbidden)
		return
	}

	var req updateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := router.Accounts.Update(r.Context(), id, domain.AccountUpdate{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAccountResponse(account))
}

// handleDeleteAccount hard-deletes an account and its refresh tokens.
// Superuser only.
//
//	DELETE /v1/accounts/{id}
func (router *Router) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "account id must be an integer")
		return
	}

	if err := router.Accounts.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "account deleted"})
}

// handleActivateAccount re-enables a deactivated account. Superuser only.
//
//	POST /v1/accounts/{id}/activate
func (router *Router) handleActivateAccount(w http.ResponseWriter, r *http.Request) {
	router.setAccountActive(w, r, true)
}

// handleDeactivateAccount disables an account without deleting it. Superuser
// only. Existing access tokens keep verifying until expiry, but the account
// can no longer pass the active gate, log in, or refresh.
//
//	POST /v1/accounts/{id}/deactivate
func (router *Router) handleDeactivateAccount(w http.ResponseWriter, r *http.Request) {
	router.setAccountActive(w, r, false)
}

func (router *Router) setAccountActive(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := pathID(r)
	if err != nil {
		writeBadRequest(w, "account id must be an integer")
		return
	}

	account, err := router.Accounts.SetActive(r.Context(), id, active)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, newAccountResponse(account))
}

func pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(r.PathValue("id"), 10, 64)
}

func queryInt(r *http.Request, key string, def int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	return strconv.ParseInt(raw, 10, 64)
}
