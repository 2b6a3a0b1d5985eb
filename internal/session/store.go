// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"errors"
	"fmt"
	"sync"
)

// ErrAtCapacity is returned by New when the store already holds its
// configured maximum number of sessions.
var ErrAtCapacity = errors.New("store at maximum session capacity")

// ErrSessionNotFound is returned when a session ID is unknown to the store.
var ErrSessionNotFound = errors.New("session not found")

// Store is the process-wide session registry. There is exactly one Store
// per running server; everything else (directories, files, lines, users)
// hangs off the sessions it holds.
type Store struct {
	maxSessions        int
	maxUsersPerSession int

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore creates an empty registry configured with the given capacity
// limits.
func NewStore(maxSessions, maxUsersPerSession int) *Store {
	return &Store{
		maxSessions:        maxSessions,
		maxUsersPerSession: maxUsersPerSession,
		sessions:           make(map[string]*Session),
	}
}

// Capacity returns the configured maximum number of concurrent sessions.
func (s *Store) Capacity() int {
	return s.maxSessions
}

// New creates and registers a fresh session, strictly below the store's
// capacity (admits while len(sessions) < maxSessions).
func (s *Store) New() (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= s.maxSessions {
		return nil, ErrAtCapacity
	}
	sess := newSession(s.maxUsersPerSession)
	s.sessions[sess.ID] = sess
	return sess, nil
}

// Get looks up a session by ID.
func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

// AvailableActive lists the IDs of sessions that are not yet at their
// per-session user capacity.
func (s *Store) AvailableActive() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.sessions))
	for id, sess := range s.sessions {
		if sess.UserCount() < s.maxUsersPerSession {
			ids = append(ids, id)
		}
	}
	return ids
}

// Remove tears down a session, e.g. once its last user has left.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Count returns the number of currently registered sessions.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
