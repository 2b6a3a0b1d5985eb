// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package model holds the leaf data types of a codealong session: the
// individual line of text and the lock state attached to it.
package model

import "sync"

// Line is a single line of a file's content, guarded by its own lock so
// that concurrent edits to different lines never contend with each other.
type Line struct {
	mu       sync.RWMutex
	text     string
	lockedBy string // empty when unlocked
}

// NewLine creates an unlocked line holding text.
func NewLine(text string) *Line {
	return &Line{text: text}
}

// Text returns the current content of the line.
func (l *Line) Text() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.text
}

// LockedBy returns the user holding the line's lock, and whether it is locked.
func (l *Line) LockedBy() (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lockedBy, l.lockedBy != ""
}

// TryLock locks the line for userID if it is currently unlocked. Returns
// false if another user already holds the lock.
func (l *Line) TryLock(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lockedBy != "" {
		return false
	}
	l.lockedBy = userID
	return true
}

// Unlock releases the lock if userID currently holds it. Returns false if
// the line was unlocked or held by someone else.
func (l *Line) Unlock(userID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lockedBy != userID {
		return false
	}
	l.lockedBy = ""
	return true
}

// ForceUnlock clears the lock unconditionally, regardless of holder. Used
// when a user disconnects while still holding locks.
func (l *Line) ForceUnlock() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lockedBy = ""
}

// SetText replaces the line's content if userID currently holds its lock.
// Returns false (no change applied) if userID does not hold the lock.
func (l *Line) SetText(userID, text string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.lockedBy != userID {
		return false
	}
	l.text = text
	return true
}

// FileLine pairs a Line with its stable add-number: an identifier assigned
// once at creation time that never changes, even as lines around it are
// inserted, removed or reordered. Handlers address lines by add-number, not
// by positional index, so that concurrent edits never target the wrong line.
type FileLine struct {
	AddNo uint64
	*Line
}
