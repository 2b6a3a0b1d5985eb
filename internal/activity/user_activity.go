// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"encoding/json"
	"fmt"
)

// UserActivityKind enumerates the variants of UserActivity.
type UserActivityKind int

const (
	UserActivityDirUpdated UserActivityKind = iota
	UserActivityFileChanged
	UserActivityLockLine
	UserActivityUnlockLine
	UserActivityCreateLine
	UserActivityRequestSync
)

// UserActivity is the inbound tagged union of requests a connected user
// may send, and — for FileChanged — is also echoed outbound verbatim to
// other users (see the SendTo routing table).
type UserActivity struct {
	Kind        UserActivityKind
	DirUpdated  *DirectoryUpdated
	FileChanged *FileChangedPayload
	LockLine    *LockLinePayload
	UnlockLine  *LockLinePayload
	CreateLine  *CreateLinePayload
}

func (u UserActivity) MarshalJSON() ([]byte, error) {
	switch u.Kind {
	case UserActivityDirUpdated:
		return marshalTagged("DirUpdated", u.DirUpdated)
	case UserActivityFileChanged:
		return marshalTagged("FileChanged", u.FileChanged)
	case UserActivityLockLine:
		return marshalTagged("LockLine", u.LockLine)
	case UserActivityUnlockLine:
		return marshalTagged("UnlockLine", u.UnlockLine)
	case UserActivityCreateLine:
		return marshalTagged("CreateLine", u.CreateLine)
	case UserActivityRequestSync:
		return marshalTagged("RequestSync", nil)
	default:
		return nil, fmt.Errorf("unknown UserActivity kind %d", u.Kind)
	}
}

func (u *UserActivity) UnmarshalJSON(data []byte) error {
	tag, raw, err := untag(data)
	if err != nil {
		return err
	}
	switch tag {
	case "DirUpdated":
		u.Kind = UserActivityDirUpdated
		u.DirUpdated = &DirectoryUpdated{}
		return json.Unmarshal(raw, u.DirUpdated)
	case "FileChanged":
		u.Kind = UserActivityFileChanged
		u.FileChanged = &FileChangedPayload{}
		return json.Unmarshal(raw, u.FileChanged)
	case "LockLine":
		u.Kind = UserActivityLockLine
		u.LockLine = &LockLinePayload{}
		return json.Unmarshal(raw, u.LockLine)
	case "UnlockLine":
		u.Kind = UserActivityUnlockLine
		u.UnlockLine = &LockLinePayload{}
		return json.Unmarshal(raw, u.UnlockLine)
	case "CreateLine":
		u.Kind = UserActivityCreateLine
		u.CreateLine = &CreateLinePayload{}
		return json.Unmarshal(raw, u.CreateLine)
	case "RequestSync":
		u.Kind = UserActivityRequestSync
		return nil
	default:
		return fmt.Errorf("unknown UserActivity tag %q", tag)
	}
}
