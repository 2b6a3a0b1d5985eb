// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package directory implements the hierarchical, fine-grained-locked file
// store that backs each session: a tree of directories holding files and
// subdirectories, with a traversal primitive shared by every handler that
// needs to reach a particular path.
package directory

import "errors"

var (
	// ErrNotFound is returned when a named path component does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNameClash is returned when creating or renaming an entry to a name
	// already taken by an entry of the same kind at that level. Files and
	// directories have separate namespaces: a file and a directory of the
	// same name may coexist.
	ErrNameClash = errors.New("name already exists")

	// ErrDepthOutOfRange reports a traversal depth beyond the path's length.
	// No function in this package returns it; an empty path is reported as a
	// *NotFoundError with an empty Name.
	ErrDepthOutOfRange = errors.New("path depth out of range")

	// ErrProjectTooLarge is returned when an edit would push the session's
	// total content size over its configured limit.
	ErrProjectTooLarge = errors.New("project size limit exceeded")
)

// LockedError is returned by the non-blocking traversal variant when a
// path component's lock is currently held elsewhere.
type LockedError struct {
	Name string
}

func (e *LockedError) Error() string {
	return "locked: " + e.Name
}

// NotFoundError carries the specific path component that could not be
// resolved, so callers can report NotFound(name) rather than a bare error.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Name
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}
