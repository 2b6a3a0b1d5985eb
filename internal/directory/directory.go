// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"fmt"

	"github.com/codealong/server/internal/model"
)

// Directory is one node of the session's file tree. Its two maps are
// guarded independently so that creating a file never blocks a concurrent
// subdirectory lookup, and vice versa.
type Directory struct {
	filesMu   lockable
	files     map[string]*model.File
	subdirsMu lockable
	subdirs   map[string]*Directory
}

// New creates an empty directory node.
func New() *Directory {
	return &Directory{
		files:   make(map[string]*model.File),
		subdirs: make(map[string]*Directory),
	}
}

// Walk resolves the directory at dirPath relative to root. blocking selects
// whether each level's lock is acquired with a blocking Lock/RLock (waiting
// indefinitely, cancellable via ctx) or a non-blocking TryLock/TryRLock that
// fails fast with a *LockedError naming the contended path component.
//
// Each level's read lock is held only long enough to look up the next
// segment and is released before the next level's lock is taken: at most
// one level of subdirsMu is ever held at once, which keeps a traversal from
// starving a writer higher in the tree.
func Walk(ctx context.Context, root *Directory, dirPath []string, blocking bool) (*Directory, error) {
	cur := root
	for _, name := range dirPath {
		next, err := stepInto(ctx, cur, name, blocking)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

func stepInto(ctx context.Context, cur *Directory, name string, blocking bool) (*Directory, error) {
	if blocking {
		if err := cur.subdirsMu.lock(ctx, true); err != nil {
			return nil, err
		}
	} else if !cur.subdirsMu.tryLock(true) {
		return nil, &LockedError{Name: name}
	}
	next, ok := cur.subdirs[name]
	cur.subdirsMu.unlock(true)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return next, nil
}

// CreateSubdir adds a new empty subdirectory named name. Fails with
// ErrNameClash if a subdirectory of that name already exists (a file of the
// same name is permitted to coexist, per the store's collision rule).
func (d *Directory) CreateSubdir(name string) (*Directory, error) {
	d.subdirsMu.mu.Lock()
	defer d.subdirsMu.mu.Unlock()
	if _, ok := d.subdirs[name]; ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNameClash)
	}
	sub := New()
	d.subdirs[name] = sub
	return sub, nil
}

// RemoveSubdir deletes the named subdirectory and everything beneath it.
func (d *Directory) RemoveSubdir(name string) error {
	d.subdirsMu.mu.Lock()
	defer d.subdirsMu.mu.Unlock()
	if _, ok := d.subdirs[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(d.subdirs, name)
	return nil
}

// RenameSubdir moves a subdirectory to a new name in place, leaving its
// contents and any locks within them untouched.
func (d *Directory) RenameSubdir(oldName, newName string) error {
	d.subdirsMu.mu.Lock()
	defer d.subdirsMu.mu.Unlock()
	sub, ok := d.subdirs[oldName]
	if !ok {
		return &NotFoundError{Name: oldName}
	}
	if _, clash := d.subdirs[newName]; clash {
		return fmt.Errorf("%s: %w", newName, ErrNameClash)
	}
	delete(d.subdirs, oldName)
	d.subdirs[newName] = sub
	return nil
}

// ListSubdirs returns the names of immediate child directories.
func (d *Directory) ListSubdirs() []string {
	d.subdirsMu.mu.RLock()
	defer d.subdirsMu.mu.RUnlock()
	names := make([]string, 0, len(d.subdirs))
	for name := range d.subdirs {
		names = append(names, name)
	}
	return names
}

// CreateFile adds a new file named name with the given initial line
// contents. Fails with ErrNameClash if a file of that name already exists.
func (d *Directory) CreateFile(name string, initialLines []string) (*model.File, error) {
	d.filesMu.mu.Lock()
	defer d.filesMu.mu.Unlock()
	if _, ok := d.files[name]; ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNameClash)
	}
	f := model.NewFile(initialLines)
	d.files[name] = f
	return f, nil
}

// File looks up a file by name.
func (d *Directory) File(name string) (*model.File, error) {
	d.filesMu.mu.RLock()
	defer d.filesMu.mu.RUnlock()
	f, ok := d.files[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}
	return f, nil
}

// RemoveFile deletes the named file.
func (d *Directory) RemoveFile(name string) error {
	d.filesMu.mu.Lock()
	defer d.filesMu.mu.Unlock()
	if _, ok := d.files[name]; !ok {
		return &NotFoundError{Name: name}
	}
	delete(d.files, name)
	return nil
}

// RenameFile moves a file to a new name in place.
func (d *Directory) RenameFile(oldName, newName string) error {
	d.filesMu.mu.Lock()
	defer d.filesMu.mu.Unlock()
	f, ok := d.files[oldName]
	if !ok {
		return &NotFoundError{Name: oldName}
	}
	if _, clash := d.files[newName]; clash {
		return fmt.Errorf("%s: %w", newName, ErrNameClash)
	}
	delete(d.files, oldName)
	d.files[newName] = f
	return nil
}

// ListFiles returns the names of immediate files.
func (d *Directory) ListFiles() []string {
	d.filesMu.mu.RLock()
	defer d.filesMu.mu.RUnlock()
	names := make([]string, 0, len(d.files))
	for name := range d.files {
		names = append(names, name)
	}
	return names
}

// TotalByteSize sums the content size of every file reachable from d,
// recursing into subdirectories. Used to enforce the per-session project
// size limit.
func (d *Directory) TotalByteSize() int {
	total := 0
	d.filesMu.mu.RLock()
	for _, f := range d.files {
		total += f.ByteSize()
	}
	d.filesMu.mu.RUnlock()

	d.subdirsMu.mu.RLock()
	subs := make([]*Directory, 0, len(d.subdirs))
	for _, sub := range d.subdirs {
		subs = append(subs, sub)
	}
	d.subdirsMu.mu.RUnlock()

	for _, sub := range subs {
		total += sub.TotalByteSize()
	}
	return total
}
