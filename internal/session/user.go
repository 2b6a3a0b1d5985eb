// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package session

import "github.com/google/uuid"

// User is a single connected participant in a session.
type User struct {
	ID       string
	Name     string
	Outbound *Queue
}

// NewUserID generates a fresh random user identifier.
func NewUserID() string {
	return uuid.NewString()
}

func newUser(name string) *User {
	return &User{ID: NewUserID(), Name: name, Outbound: NewQueue()}
}
