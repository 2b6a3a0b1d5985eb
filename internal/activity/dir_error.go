// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/codealong/server/internal/directory"
	"github.com/codealong/server/internal/model"
	"github.com/codealong/server/internal/session"
)

// DirErrorKind enumerates the variants of DirError.
type DirErrorKind int

const (
	DirErrLocked DirErrorKind = iota
	DirErrNotFound
	DirErrDepthOutOfRange
	DirErrNameClash
	DirErrLineLocked
	DirErrProjectTooLarge
)

// DirError is the wire representation of a failed directory/file/line
// operation, routed back to the requesting user.
type DirError struct {
	Kind     DirErrorKind
	Name     string   // Locked, NotFound
	LineLock *LineRef // LineLocked
}

func (e DirError) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case DirErrLocked:
		return marshalTagged("Locked", e.Name)
	case DirErrNotFound:
		return marshalTagged("NotFound", e.Name)
	case DirErrDepthOutOfRange:
		return marshalTagged("DepthOutOfRange", nil)
	case DirErrNameClash:
		return marshalTagged("NameClash", nil)
	case DirErrLineLocked:
		return marshalTagged("LineLocked", e.LineLock)
	case DirErrProjectTooLarge:
		return marshalTagged("ProjectTooLarge", nil)
	default:
		return nil, fmt.Errorf("unknown DirError kind %d", e.Kind)
	}
}

func (e *DirError) UnmarshalJSON(data []byte) error {
	tag, raw, err := untag(data)
	if err != nil {
		return err
	}
	switch tag {
	case "Locked":
		e.Kind = DirErrLocked
		return json.Unmarshal(raw, &e.Name)
	case "NotFound":
		e.Kind = DirErrNotFound
		return json.Unmarshal(raw, &e.Name)
	case "DepthOutOfRange":
		e.Kind = DirErrDepthOutOfRange
		return nil
	case "NameClash":
		e.Kind = DirErrNameClash
		return nil
	case "LineLocked":
		e.Kind = DirErrLineLocked
		e.LineLock = &LineRef{}
		return json.Unmarshal(raw, e.LineLock)
	case "ProjectTooLarge":
		e.Kind = DirErrProjectTooLarge
		return nil
	default:
		return fmt.Errorf("unknown DirError tag %q", tag)
	}
}

// FromDomainError maps a Go error returned by the directory/model/session
// packages onto the wire DirError union.
func FromDomainError(name string, err error) DirError {
	var le *directory.LockedError
	var nfe *directory.NotFoundError
	switch {
	case errors.As(err, &le):
		return DirError{Kind: DirErrLocked, Name: le.Name}
	case errors.As(err, &nfe):
		return DirError{Kind: DirErrNotFound, Name: nfe.Name}
	case errors.Is(err, directory.ErrNotFound):
		return DirError{Kind: DirErrNotFound, Name: name}
	case errors.Is(err, directory.ErrDepthOutOfRange):
		return DirError{Kind: DirErrDepthOutOfRange}
	case errors.Is(err, directory.ErrNameClash):
		return DirError{Kind: DirErrNameClash}
	case errors.Is(err, directory.ErrProjectTooLarge):
		return DirError{Kind: DirErrProjectTooLarge}
	case errors.Is(err, model.ErrLineNotFound):
		return DirError{Kind: DirErrNotFound, Name: name}
	case errors.Is(err, session.ErrUserNotFound):
		return DirError{Kind: DirErrNotFound, Name: name}
	default:
		return DirError{Kind: DirErrNotFound, Name: name}
	}
}
