// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/codealong/server/internal/api"
	"github.com/codealong/server/internal/api/middleware"
	"github.com/codealong/server/internal/dirops"
	"github.com/codealong/server/internal/session"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ServerConfig holds the listen address and optional TLS material.
type ServerConfig struct {
	Host    string
	Port    int
	TLSCert string
	TLSKey  string
}

// NewRouter builds the mux.Router exposing the four session endpoints plus
// /metrics, with the same global middleware chain the rest of the project
// applies to its HTTP surface.
func NewRouter(store *session.Store, limits dirops.Limits) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging)
	r.Use(middleware.Recovery)
	r.Use(middleware.CORS)

	h := NewHandler(store, limits)

	r.HandleFunc("/session/capacity", h.Capacity).Methods("GET")
	r.HandleFunc("/session/available_active", h.AvailableActive).Methods("GET")
	r.HandleFunc("/session/new/{userName}", h.NewSession).Methods("GET")
	r.HandleFunc("/users/join/{sessionId}/{userName}", h.JoinSession).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return r
}

// Server wraps an http.Server around the router, grounded on the same
// ListenAndServe/Shutdown shape used elsewhere in the project.
type Server struct {
	router *mux.Router
	cfg    ServerConfig
	server *http.Server
}

// NewServer creates a Server ready to listen.
func NewServer(cfg ServerConfig, store *session.Store, limits dirops.Limits) *Server {
	return &Server{router: NewRouter(store, limits), cfg: cfg}
}

// Router returns the underlying router, mainly for tests.
func (s *Server) Router() *mux.Router {
	return s.router
}

// ListenAndServe starts the server, using TLS if cfg.TLSCert/TLSKey are set.
func (s *Server) ListenAndServe() error {
	addr := s.cfg.Host + ":" + strconv.Itoa(s.cfg.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.router,
	}

	tlsEnabled, err := api.CheckTLSConfig(s.cfg.TLSCert, s.cfg.TLSKey)
	if err != nil {
		return fmt.Errorf("TLS configuration error: %w", err)
	}
	if tlsEnabled {
		log.Printf("codealong server listening on https://%s", addr)
		return s.server.ListenAndServeTLS(s.cfg.TLSCert, s.cfg.TLSKey)
	}

	log.Printf("codealong server listening on http://%s", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts the server down within ctx's deadline, or a
// 30-second default if ctx has none.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	log.Println("shutting down codealong server...")

	shutdownCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}
	return s.server.Shutdown(shutdownCtx)
}
