package http

import (
	"net/http"

	"github.com/arcbound/accountd/pkg/httpx"
)

type serviceInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
}

// handleRoot identifies the service.
//
//	GET /
func (router *Router) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeError(w, http.StatusNotFound, "not_found", "no such route")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, serviceInfo{Service: router.Service, Version: router.Version})
}

// handleLivez reports process liveness without touching dependencies.
//
//	GET /livez
func (router *Router) handleLivez(w http.ResponseWriter, _ *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}

// handleReadyz reports readiness, which requires a reachable database.
//
//	GET /readyz
func (router *Router) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := router.Store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", "database unreachable")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, messageResponse{Message: "ok"})
}
