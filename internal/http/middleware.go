package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/arcbound/accountd/internal/domain"
	"github.com/arcbound/accountd/internal/service"
)

type contextKey struct{ name string }

var accountKey = contextKey{"account"}

// accountFromContext returns the account the auth middleware resolved for
// this request. The bool is false on routes that skipped authentication.
func accountFromContext(ctx context.Context) (domain.Account, bool) {
	account, ok := ctx.Value(accountKey).(domain.Account)
	return account, ok
}

// bearerToken extracts the token from an "Authorization: Bearer ..." header.
func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}
	return token, true
}

// requireActiveAccount authenticates the bearer token, requires an active
// account, and stores it in the request context for the wrapped handler.
func (router *Router) requireActiveAccount(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeServiceError(w, r, service.ErrUnauthenticated)
			return
		}

		account, err := router.Identity.CurrentActiveAccount(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		next(w, r.WithContext(ctx))
	}
}

// requireSuperuser is requireActiveAccount plus the superuser flag.
func (router *Router) requireSuperuser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeServiceError(w, r, service.ErrUnauthenticated)
			return
		}

		account, err := router.Identity.CurrentSuperuser(r.Context(), token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		next(w, r.WithContext(ctx))
	}
}
