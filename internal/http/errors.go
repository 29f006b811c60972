package http

import (
	"errors"
	"net/http"

	"github.com/arcbound/accountd/internal/service"
	"github.com/arcbound/accountd/pkg/httpx"
	"github.com/arcbound/accountd/pkg/slogx"
)

// ErrorResponse is the uniform error body for every failed request.
type ErrorResponse struct {
	Error       string `json:"error"`
	Description string `json:"error_description,omitempty"`
}

func writeError(w http.ResponseWriter, code int, name, desc string) {
	httpx.WriteJSON(w, code, ErrorResponse{Error: name, Description: desc})
}

// writeServiceError maps the service error taxonomy onto status codes:
// duplicates 400, authentication failures 401, privilege failures 403,
// missing rows 404, everything else an unclassified 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrDuplicateEmail):
		writeError(w, http.StatusBadRequest, "duplicate_email", "email already registered")
	case errors.Is(err, service.ErrDuplicateUsername):
		writeError(w, http.StatusBadRequest, "duplicate_username", "username already taken")
	case errors.Is(err, service.ErrInvalidCredentials):
		w.Header().Set("WWW-Authenticate", "Bearer")
		writeError(w, http.StatusUnauthorized, "invalid_credentials", "incorrect username or password")
	case errors.Is(err, service.ErrInvalidRefresh):
		writeError(w, http.StatusUnauthorized, "invalid_refresh_token", "refresh token is invalid, expired, or revoked")
	case errors.Is(err, service.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
		writeError(w, http.StatusUnauthorized, "unauthenticated", "missing or invalid access token")
	case errors.Is(err, service.ErrAccountInactive):
		writeError(w, http.StatusForbidden, "inactive_account", "account is inactive")
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden", "not enough permissions")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "account not found")
	default:
		slogx.FromContext(r.Context()).Error("unhandled service error", "err", err)
		writeError(w, http.StatusInternalServerError, "server_error", "internal server error")
	}
}

func writeBadRequest(w http.ResponseWriter, desc string) {
	writeError(w, http.StatusBadRequest, "invalid_request", desc)
}
