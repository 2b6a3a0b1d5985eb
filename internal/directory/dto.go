// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package directory

import "github.com/codealong/server/internal/model"

// DirDTO is the wire-safe, recursively-cloned snapshot of a directory
// tree: files as their plain line text (lock holders and add-numbers are
// conveyed separately via LockLine/LineLocked events, not in the sync
// snapshot), subdirs keyed by name and nested the same way.
type DirDTO struct {
	Files   map[string][]string `json:"files"`
	Subdirs map[string]*DirDTO  `json:"subdirs"`
}

func fileLines(f *model.File) []string {
	snap := f.Snapshot()
	lines := make([]string, len(snap))
	for i, l := range snap {
		lines[i] = l.Text()
	}
	return lines
}

// Snapshot produces a DirDTO of d and everything beneath it. Each files and
// subdirs map is copied under its own short read lock, so no lock is held
// for the whole traversal; the tree as a whole is not captured atomically,
// and edits made elsewhere during the walk may or may not appear.
func (d *Directory) Snapshot() *DirDTO {
	dto := &DirDTO{Files: make(map[string][]string), Subdirs: make(map[string]*DirDTO)}

	d.filesMu.mu.RLock()
	fileRefs := make(map[string]*model.File, len(d.files))
	for name, f := range d.files {
		fileRefs[name] = f
	}
	d.filesMu.mu.RUnlock()

	for name, f := range fileRefs {
		dto.Files[name] = fileLines(f)
	}

	d.subdirsMu.mu.RLock()
	subs := make(map[string]*Directory, len(d.subdirs))
	for name, sub := range d.subdirs {
		subs[name] = sub
	}
	d.subdirsMu.mu.RUnlock()

	for name, sub := range subs {
		dto.Subdirs[name] = sub.Snapshot()
	}

	return dto
}
