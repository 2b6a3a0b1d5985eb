// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package activity

// LineRef identifies a line inside a server event: its stable add-number
// and the user id an operation is attributed to.
type LineRef struct {
	AddNo  uint64 `json:"add_no"`
	UserID string `json:"user_id"`
}

// RenamePayload is the body of RenameFile/RenameDir: the path to the
// existing entry and the new name for its final segment.
type RenamePayload struct {
	Path    []string `json:"path"`
	NewName string   `json:"newName"`
}

// LockLinePayload is the body of an inbound LockLine/UnlockLine request.
// LinePos is carried for client-side bookkeeping only; the server matches
// lines by LineNo (the stable add-number), never by position.
type LockLinePayload struct {
	FilePath []string `json:"filepath"`
	LinePos  int      `json:"line_pos"`
	LineNo   uint64   `json:"line_no"`
}

// CreateLinePayload is the body of an inbound CreateLine request.
type CreateLinePayload struct {
	FilePath []string `json:"filepath"`
	At       int      `json:"at"`
}

// FileChangedPayload is the body of an inbound/outbound FileChanged event:
// a compare-and-swap style line edit addressed by its file path and
// add-number.
type FileChangedPayload struct {
	Path []string `json:"path"`
	Line uint64   `json:"line"`
	Old  string   `json:"old"`
	New  string   `json:"new"`
}
