// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package httpapi

import (
	"context"
	"log"
	"net/http"

	"github.com/codealong/server/internal/dirops"
	"github.com/codealong/server/internal/metrics"
	"github.com/codealong/server/internal/session"
	"github.com/codealong/server/internal/wsconn"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// Handler holds the dependencies shared by every endpoint.
type Handler struct {
	store    *session.Store
	limits   dirops.Limits
	validate *validator.Validate
	upgrader websocket.Upgrader
}

// NewHandler builds a Handler backed by store.
func NewHandler(store *session.Store, limits dirops.Limits) *Handler {
	return &Handler{
		store:    store,
		limits:   limits,
		validate: validator.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type nameParam struct {
	Name string `validate:"required,min=1,max=64"`
}

type idParam struct {
	ID string `validate:"required,uuid4"`
}

// Capacity handles GET /session/capacity. remaining counts down from
// max_sessions by the number of active sessions — a session with fewer
// users than max_users_per_session — not by total registered sessions.
func (h *Handler) Capacity(w http.ResponseWriter, r *http.Request) {
	remaining := h.store.Capacity() - len(h.store.AvailableActive())
	if remaining < 0 {
		remaining = 0
	}
	writeData(w, http.StatusOK, map[string]int{"value": remaining})
}

// AvailableActive handles GET /session/available_active.
func (h *Handler) AvailableActive(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, h.store.AvailableActive())
}

// NewSession handles GET /session/new/{userName} (upgrade).
func (h *Handler) NewSession(w http.ResponseWriter, r *http.Request) {
	userName := mux.Vars(r)["userName"]
	if err := h.validate.Struct(nameParam{Name: userName}); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "invalid user name")
		return
	}

	sess, err := h.store.New()
	if err != nil {
		writeError(w, http.StatusTooManyRequests, ErrMaxCapacity, err.Error())
		return
	}

	user, err := sess.Join(userName)
	if err != nil {
		h.store.Remove(sess.ID)
		writeError(w, http.StatusTooManyRequests, ErrMaxCapacity, err.Error())
		return
	}

	h.serveUpgrade(w, r, sess, user)
}

// JoinSession handles GET /users/join/{sessionId}/{userName} (upgrade).
func (h *Handler) JoinSession(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID, userName := vars["sessionId"], vars["userName"]
	if err := h.validate.Struct(nameParam{Name: userName}); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "invalid user name")
		return
	}
	if err := h.validate.Struct(idParam{ID: sessionID}); err != nil {
		writeError(w, http.StatusBadRequest, ErrBadRequest, "invalid session id")
		return
	}

	sess, err := h.store.Get(sessionID)
	if err != nil {
		writeError(w, http.StatusNotFound, ErrNotFound, err.Error())
		return
	}

	user, err := sess.Join(userName)
	if err != nil {
		writeError(w, http.StatusTooManyRequests, ErrMaxCapacity, err.Error())
		return
	}

	h.serveUpgrade(w, r, sess, user)
}

func (h *Handler) serveUpgrade(w http.ResponseWriter, r *http.Request, sess *session.Session, user *session.User) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		sess.Leave(user.ID)
		return
	}

	metrics.ActiveSessions.Set(float64(h.store.Count()))
	metrics.ActiveUsers.Inc()

	go func() {
		defer metrics.ActiveUsers.Dec()
		// net/http cancels r.Context() once this handler returns, which would
		// stop the outbound drain immediately; keep its values but not its
		// cancellation.
		wsconn.Serve(context.WithoutCancel(r.Context()), conn, sess, user, h.limits, func() {
			h.store.Remove(sess.ID)
			metrics.ActiveSessions.Set(float64(h.store.Count()))
		})
	}()
}
