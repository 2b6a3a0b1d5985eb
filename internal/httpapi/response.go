// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package httpapi wires the HTTP/WebSocket surface: the capacity,
// available-sessions, new-session, and join-session endpoints, plus
// /metrics.
package httpapi

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope every non-upgrade endpoint replies with.
type Response struct {
	Data  interface{} `json:"data,omitempty"`
	Error *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo describes a failed request.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

const (
	ErrNotFound     = "NOT_FOUND"
	ErrMaxCapacity  = "MAX_CAPACITY"
	ErrBadRequest   = "BAD_REQUEST"
	ErrInternal     = "INTERNAL_ERROR"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, data interface{}) {
	writeJSON(w, status, Response{Data: data})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Response{Error: &ErrorInfo{Code: code, Message: message}})
}
