// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// File holds the ordered lines of a single file. The line slice itself is
// guarded by mu; individual Line values carry their own lock so that two
// edits to different lines of the same file never block each other.
type File struct {
	mu         sync.RWMutex
	lines      []*FileLine
	addCounter atomic.Uint64
}

// NewFile creates a file from initial line contents, assigning each an
// add-number in order starting at 0.
func NewFile(initialLines []string) *File {
	f := &File{}
	f.lines = make([]*FileLine, 0, len(initialLines))
	for _, text := range initialLines {
		f.lines = append(f.lines, &FileLine{AddNo: f.nextAddNo(), Line: NewLine(text)})
	}
	return f
}

// nextAddNo returns the next add-number, starting at 0.
func (f *File) nextAddNo() uint64 {
	return f.addCounter.Add(1) - 1
}

// Len returns the current number of lines.
func (f *File) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.lines)
}

// Snapshot returns a shallow copy of the current line slice, safe to range
// over without holding any lock.
func (f *File) Snapshot() []*FileLine {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]*FileLine, len(f.lines))
	copy(out, f.lines)
	return out
}

// LineByAddNo finds a line by its stable add-number.
func (f *File) LineByAddNo(addNo uint64) (*FileLine, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, l := range f.lines {
		if l.AddNo == addNo {
			return l, true
		}
	}
	return nil, false
}

// CreateLine inserts text at position at if at is within the current line
// count, otherwise appends it at the end. Returns the newly created line.
func (f *File) CreateLine(at int, text string) *FileLine {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl := &FileLine{AddNo: f.nextAddNo(), Line: NewLine(text)}

	if at < 0 || at >= len(f.lines) {
		f.lines = append(f.lines, fl)
		return fl
	}

	f.lines = append(f.lines, nil)
	copy(f.lines[at+1:], f.lines[at:])
	f.lines[at] = fl
	return fl
}

// RemoveLine deletes the line identified by addNo. Returns an error if no
// such line exists.
func (f *File) RemoveLine(addNo uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.lines {
		if l.AddNo == addNo {
			f.lines = append(f.lines[:i], f.lines[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("line %d: %w", addNo, ErrLineNotFound)
}

// ByteSize returns the total byte length of all lines' content, used for
// project-size enforcement.
func (f *File) ByteSize() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	total := 0
	for _, l := range f.lines {
		total += len(l.Text())
	}
	return total
}
