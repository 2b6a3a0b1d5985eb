// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"encoding/json"
	"fmt"
)

// DirOpKind enumerates the variants of DirectoryUpdated.
type DirOpKind int

const (
	DirOpErasedDir DirOpKind = iota
	DirOpCreatedDir
	DirOpRenameDir
	DirOpCreatedFile
	DirOpErasedFile
	DirOpRenameFile
)

// DirectoryUpdated is both the inbound request to mutate the directory
// tree (carried inside DirUpdated) and the outbound notification of that
// mutation (carried inside DirectoryUpdate) — the same shape serves both
// directions since the effect being described is identical.
type DirectoryUpdated struct {
	Kind   DirOpKind
	Path   []string       // ErasedDir, CreatedDir, CreatedFile, ErasedFile: path to the entry
	Rename *RenamePayload // RenameDir, RenameFile
}

func (d DirectoryUpdated) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DirOpErasedDir:
		return marshalTagged("ErasedDir", d.Path)
	case DirOpCreatedDir:
		return marshalTagged("CreatedDir", d.Path)
	case DirOpRenameDir:
		return marshalTagged("RenameDir", d.Rename)
	case DirOpCreatedFile:
		return marshalTagged("CreatedFile", d.Path)
	case DirOpErasedFile:
		return marshalTagged("ErasedFile", d.Path)
	case DirOpRenameFile:
		return marshalTagged("RenameFile", d.Rename)
	default:
		return nil, fmt.Errorf("unknown DirectoryUpdated kind %d", d.Kind)
	}
}

func (d *DirectoryUpdated) UnmarshalJSON(data []byte) error {
	tag, raw, err := untag(data)
	if err != nil {
		return err
	}
	switch tag {
	case "ErasedDir":
		d.Kind = DirOpErasedDir
		return json.Unmarshal(raw, &d.Path)
	case "CreatedDir":
		d.Kind = DirOpCreatedDir
		return json.Unmarshal(raw, &d.Path)
	case "RenameDir":
		d.Kind = DirOpRenameDir
		d.Rename = &RenamePayload{}
		return json.Unmarshal(raw, d.Rename)
	case "CreatedFile":
		d.Kind = DirOpCreatedFile
		return json.Unmarshal(raw, &d.Path)
	case "ErasedFile":
		d.Kind = DirOpErasedFile
		return json.Unmarshal(raw, &d.Path)
	case "RenameFile":
		d.Kind = DirOpRenameFile
		d.Rename = &RenamePayload{}
		return json.Unmarshal(raw, d.Rename)
	default:
		return fmt.Errorf("unknown DirectoryUpdated tag %q", tag)
	}
}
