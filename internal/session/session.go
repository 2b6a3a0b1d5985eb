// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/codealong/server/internal/directory"
	"github.com/google/uuid"
)

// ErrMaxCapacity is returned by Join when a session already holds its
// configured maximum number of users.
var ErrMaxCapacity = errors.New("session at maximum capacity")

// ErrUserNotFound is returned when a user ID does not belong to a session.
var ErrUserNotFound = errors.New("user not found")

// Session is one collaborative editing room: a file tree plus the set of
// users currently connected to it.
type Session struct {
	ID      string
	Root    *directory.Directory
	maxUsers int

	mu    sync.RWMutex
	users map[string]*User
}

// NewID generates a fresh random session identifier.
func NewID() string {
	return uuid.NewString()
}

func newSession(maxUsers int) *Session {
	root := directory.New()
	if _, err := root.CreateFile("helloworld.txt", []string{"Welcome to codealong!"}); err != nil {
		// Can't happen: root is freshly created and empty.
		panic(err)
	}
	return &Session{
		ID:       NewID(),
		Root:     root,
		maxUsers: maxUsers,
		users:    make(map[string]*User),
	}
}

// Join admits a new user under name if the session has capacity. The
// comparison is strict: a session configured for N users admits while
// fewer than N are present, so the Nth join fills the last slot.
func (s *Session) Join(name string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.users) >= s.maxUsers {
		return nil, ErrMaxCapacity
	}
	u := newUser(name)
	s.users[u.ID] = u
	return u, nil
}

// Leave removes a user from the session. Returns true if the session is
// now empty and should be torn down.
func (s *Session) Leave(userID string) (empty bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, userID)
	return len(s.users) == 0
}

// User looks up a connected user by ID.
func (s *Session) User(userID string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", userID, ErrUserNotFound)
	}
	return u, nil
}

// Users returns a snapshot of every currently connected user.
func (s *Session) Users() []*User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out
}

// UserCount returns the number of currently connected users.
func (s *Session) UserCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

// Broadcast enqueues msg on the outbound queue of every user selected by
// audience relative to fromUserID.
func (s *Session) Broadcast(audience Audience, fromUserID string, msg []byte) {
	switch audience {
	case AudienceNone:
		return
	case AudienceSameUser:
		if u, err := s.User(fromUserID); err == nil {
			u.Outbound.Push(msg)
		}
	case AudienceOtherUsers:
		for _, u := range s.Users() {
			if u.ID != fromUserID {
				u.Outbound.Push(msg)
			}
		}
	case AudienceAllUsers:
		for _, u := range s.Users() {
			u.Outbound.Push(msg)
		}
	}
}
