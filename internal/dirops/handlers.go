// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package dirops

import (
	"context"
	"fmt"

	"github.com/codealong/server/internal/activity"
	"github.com/codealong/server/internal/directory"
	"github.com/codealong/server/internal/model"
)

// Limits bounds the size of edits applied through CreateLine/FileChanged.
type Limits struct {
	MaxProjectSizeBytes int
}

// HandleDirUpdated applies a directory-tree mutation under blocking
// traversal and the parent's write lock.
func HandleDirUpdated(ctx context.Context, root *directory.Directory, op *activity.DirectoryUpdated) error {
	switch op.Kind {
	case activity.DirOpCreatedFile:
		parent, name, err := splitParent(ctx, root, op.Path, true)
		if err != nil {
			return err
		}
		_, err = parent.CreateFile(name, []string{""})
		return err
	case activity.DirOpErasedFile:
		parent, name, err := splitParent(ctx, root, op.Path, true)
		if err != nil {
			return err
		}
		return parent.RemoveFile(name)
	case activity.DirOpRenameFile:
		parent, name, err := splitParent(ctx, root, op.Rename.Path, true)
		if err != nil {
			return err
		}
		return parent.RenameFile(name, op.Rename.NewName)
	case activity.DirOpCreatedDir:
		parent, name, err := splitParent(ctx, root, op.Path, true)
		if err != nil {
			return err
		}
		_, err = parent.CreateSubdir(name)
		return err
	case activity.DirOpErasedDir:
		parent, name, err := splitParent(ctx, root, op.Path, true)
		if err != nil {
			return err
		}
		return parent.RemoveSubdir(name)
	case activity.DirOpRenameDir:
		parent, name, err := splitParent(ctx, root, op.Rename.Path, true)
		if err != nil {
			return err
		}
		return parent.RenameSubdir(name, op.Rename.NewName)
	default:
		return fmt.Errorf("unhandled directory op %d", op.Kind)
	}
}

// HandleLockLine locates the line named by p.LineNo within the given file
// and locks it for userID.
func HandleLockLine(ctx context.Context, root *directory.Directory, userID string, p *activity.LockLinePayload) (activity.LineRef, error) {
	parent, name, err := splitParent(ctx, root, p.FilePath, true)
	if err != nil {
		return activity.LineRef{}, err
	}
	f, err := parent.File(name)
	if err != nil {
		return activity.LineRef{}, err
	}
	line, ok := f.LineByAddNo(p.LineNo)
	if !ok {
		return activity.LineRef{}, fmt.Errorf("%d: %w", p.LineNo, model.ErrLineNotFound)
	}
	if !line.TryLock(userID) {
		holder, _ := line.LockedBy()
		return activity.LineRef{}, &lineLockedError{ref: activity.LineRef{AddNo: p.LineNo, UserID: holder}}
	}
	return activity.LineRef{AddNo: p.LineNo, UserID: userID}, nil
}

// HandleUnlockLine releases userID's lock on the named line.
func HandleUnlockLine(ctx context.Context, root *directory.Directory, userID string, p *activity.LockLinePayload) (activity.LineRef, error) {
	parent, name, err := splitParent(ctx, root, p.FilePath, true)
	if err != nil {
		return activity.LineRef{}, err
	}
	f, err := parent.File(name)
	if err != nil {
		return activity.LineRef{}, err
	}
	line, ok := f.LineByAddNo(p.LineNo)
	if !ok {
		return activity.LineRef{}, fmt.Errorf("%d: %w", p.LineNo, model.ErrLineNotFound)
	}
	if !line.Unlock(userID) {
		return activity.LineRef{}, fmt.Errorf("%d: %w", p.LineNo, model.ErrLineNotFound)
	}
	return activity.LineRef{AddNo: p.LineNo, UserID: userID}, nil
}

// HandleCreateLine inserts a new line locked to userID. If at is within
// the current bounds the line is inserted there, otherwise it is appended.
func HandleCreateLine(ctx context.Context, root *directory.Directory, userID string, p *activity.CreateLinePayload, limits Limits) (activity.LineRef, error) {
	parent, name, err := splitParent(ctx, root, p.FilePath, true)
	if err != nil {
		return activity.LineRef{}, err
	}
	f, err := parent.File(name)
	if err != nil {
		return activity.LineRef{}, err
	}
	if limits.MaxProjectSizeBytes > 0 && root.TotalByteSize() >= limits.MaxProjectSizeBytes {
		return activity.LineRef{}, directory.ErrProjectTooLarge
	}
	fl := f.CreateLine(p.At, "")
	fl.TryLock(userID)
	return activity.LineRef{AddNo: fl.AddNo, UserID: userID}, nil
}

// HandleFileChanged applies a compare-and-swap line edit: p.Old must match
// the line's current text and the requester must hold the line's lock; the
// lock is left in place afterward.
func HandleFileChanged(ctx context.Context, root *directory.Directory, userID string, p *activity.FileChangedPayload, limits Limits) error {
	parent, name, err := splitParent(ctx, root, p.Path, true)
	if err != nil {
		return err
	}
	f, err := parent.File(name)
	if err != nil {
		return err
	}
	line, ok := f.LineByAddNo(p.Line)
	if !ok {
		return fmt.Errorf("%d: %w", p.Line, model.ErrLineNotFound)
	}
	if line.Text() != p.Old {
		return fmt.Errorf("%d: %w", p.Line, model.ErrLineNotFound)
	}
	if limits.MaxProjectSizeBytes > 0 {
		delta := len(p.New) - len(p.Old)
		if delta > 0 && root.TotalByteSize()+delta > limits.MaxProjectSizeBytes {
			return directory.ErrProjectTooLarge
		}
	}
	if !line.SetText(userID, p.New) {
		return fmt.Errorf("%d: %w", p.Line, model.ErrLineNotFound)
	}
	return nil
}

// HandleRequestSync returns a full snapshot of the session's directory tree.
func HandleRequestSync(root *directory.Directory) *directory.DirDTO {
	return root.Snapshot()
}

// ReleaseUserLocks clears every line lock in the tree held by userID,
// called when a user disconnects.
func ReleaseUserLocks(root *directory.Directory, userID string) {
	for _, name := range root.ListFiles() {
		f, err := root.File(name)
		if err != nil {
			continue
		}
		for _, l := range f.Snapshot() {
			if holder, locked := l.LockedBy(); locked && holder == userID {
				l.ForceUnlock()
			}
		}
	}
	for _, name := range root.ListSubdirs() {
		sub, err := directory.Walk(context.Background(), root, []string{name}, true)
		if err != nil {
			continue
		}
		ReleaseUserLocks(sub, userID)
	}
}

// lineLockedError signals that a line is already locked by another user.
type lineLockedError struct {
	ref activity.LineRef
}

func (e *lineLockedError) Error() string { return "line already locked" }

// LineLockRef extracts the conflicting lock reference, if err is a
// line-already-locked error.
func LineLockRef(err error) (activity.LineRef, bool) {
	lle, ok := err.(*lineLockedError)
	if !ok {
		return activity.LineRef{}, false
	}
	return lle.ref, true
}
