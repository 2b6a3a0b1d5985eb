// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"encoding/json"
	"fmt"

	"github.com/codealong/server/internal/directory"
)

// ServerActivityKind enumerates the variants of ServerActivity.
type ServerActivityKind int

const (
	ServerActivityCurrentProject ServerActivityKind = iota
	ServerActivityDirectoryErr
	ServerActivityDirectoryUpdate
	ServerActivityLineLocked
	ServerActivityLineAdded
	ServerActivityLineUnlocked
)

// ServerActivity is the authoritative server-to-client tagged union: the
// result of a handler invocation, as opposed to a UserActivity echo.
type ServerActivity struct {
	Kind            ServerActivityKind
	CurrentProject  *directory.DirDTO
	DirectoryErr    *DirError
	DirectoryUpdate *DirectoryUpdated
	LineLocked      *LineRef
	LineAdded       *LineRef
	LineUnlocked    *LineRef
}

func (s ServerActivity) MarshalJSON() ([]byte, error) {
	switch s.Kind {
	case ServerActivityCurrentProject:
		return marshalTagged("CurrentProject", s.CurrentProject)
	case ServerActivityDirectoryErr:
		return marshalTagged("DirectoryErr", s.DirectoryErr)
	case ServerActivityDirectoryUpdate:
		return marshalTagged("DirectoryUpdate", s.DirectoryUpdate)
	case ServerActivityLineLocked:
		return marshalTagged("LineLocked", s.LineLocked)
	case ServerActivityLineAdded:
		return marshalTagged("LineAdded", s.LineAdded)
	case ServerActivityLineUnlocked:
		return marshalTagged("LineUnlocked", s.LineUnlocked)
	default:
		return nil, fmt.Errorf("unknown ServerActivity kind %d", s.Kind)
	}
}

func (s *ServerActivity) UnmarshalJSON(data []byte) error {
	tag, raw, err := untag(data)
	if err != nil {
		return err
	}
	switch tag {
	case "CurrentProject":
		s.Kind = ServerActivityCurrentProject
		s.CurrentProject = &directory.DirDTO{}
		return json.Unmarshal(raw, s.CurrentProject)
	case "DirectoryErr":
		s.Kind = ServerActivityDirectoryErr
		s.DirectoryErr = &DirError{}
		return json.Unmarshal(raw, s.DirectoryErr)
	case "DirectoryUpdate":
		s.Kind = ServerActivityDirectoryUpdate
		s.DirectoryUpdate = &DirectoryUpdated{}
		return json.Unmarshal(raw, s.DirectoryUpdate)
	case "LineLocked":
		s.Kind = ServerActivityLineLocked
		s.LineLocked = &LineRef{}
		return json.Unmarshal(raw, s.LineLocked)
	case "LineAdded":
		s.Kind = ServerActivityLineAdded
		s.LineAdded = &LineRef{}
		return json.Unmarshal(raw, s.LineAdded)
	case "LineUnlocked":
		s.Kind = ServerActivityLineUnlocked
		s.LineUnlocked = &LineRef{}
		return json.Unmarshal(raw, s.LineUnlocked)
	default:
		return fmt.Errorf("unknown ServerActivity tag %q", tag)
	}
}

// SessionActivity is the outbound envelope queued onto a user's queue: it
// carries either a ServerActivity (wrapped under a "ServerActivity" tag) or
// a raw UserActivity echo (FileChanged broadcast back out unwrapped), since
// SessionActivity = UserActivity | ServerActivity on the wire.
type SessionActivity struct {
	User   *UserActivity
	Server *ServerActivity
}

func FromServer(s ServerActivity) SessionActivity { return SessionActivity{Server: &s} }
func FromUser(u UserActivity) SessionActivity      { return SessionActivity{User: &u} }

func (s SessionActivity) MarshalJSON() ([]byte, error) {
	if s.Server != nil {
		return marshalTagged("ServerActivity", s.Server)
	}
	if s.User != nil {
		return json.Marshal(s.User)
	}
	return nil, fmt.Errorf("empty SessionActivity")
}
