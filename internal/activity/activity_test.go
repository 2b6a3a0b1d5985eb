// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package activity

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codealong/server/internal/directory"
)

func TestUserActivity_RequestSync_RoundTrip(t *testing.T) {
	data, err := json.Marshal(UserActivity{Kind: UserActivityRequestSync})
	require.NoError(t, err)
	assert.JSONEq(t, `{"RequestSync":null}`, string(data))

	var got UserActivity
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, UserActivityRequestSync, got.Kind)
}

func TestUserActivity_LockLine_RoundTrip(t *testing.T) {
	in := UserActivity{
		Kind: UserActivityLockLine,
		LockLine: &LockLinePayload{
			FilePath: []string{"helloworld.txt"},
			LinePos:  0,
			LineNo:   1,
		},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out UserActivity
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestDirectoryUpdated_CreatedFile_RoundTrip(t *testing.T) {
	in := DirectoryUpdated{Kind: DirOpCreatedFile, Path: []string{"notes.md"}}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"CreatedFile":["notes.md"]}`, string(data))

	var out DirectoryUpdated
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestDirectoryUpdated_RenameFile_RoundTrip(t *testing.T) {
	in := DirectoryUpdated{
		Kind:   DirOpRenameFile,
		Rename: &RenamePayload{Path: []string{"old.txt"}, NewName: "new.txt"},
	}
	data, err := json.Marshal(in)
	require.NoError(t, err)

	var out DirectoryUpdated
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestUntag_RejectsMultiKeyFrame(t *testing.T) {
	_, _, err := untag([]byte(`{"A":1,"B":2}`))
	assert.Error(t, err)
}

// TestScenario_RequestSync_Reply matches spec scenario 1: an empty session's
// RequestSync response echoes the seeded helloworld.txt.
func TestScenario_RequestSync_Reply(t *testing.T) {
	dto := &directory.DirDTO{
		Files:   map[string][]string{"helloworld.txt": {"Welcome to codealong!"}},
		Subdirs: map[string]*directory.DirDTO{},
	}
	out := FromServer(ServerActivity{Kind: ServerActivityCurrentProject, CurrentProject: dto})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"ServerActivity":{"CurrentProject":{"files":{"helloworld.txt":["Welcome to codealong!"]},"subdirs":{}}}}`,
		string(data))
}

// TestScenario_DirectoryUpdate_CreatedFile matches spec scenario: a
// CreatedFile mutation is broadcast as a ServerActivity DirectoryUpdate.
func TestScenario_DirectoryUpdate_CreatedFile(t *testing.T) {
	out := FromServer(ServerActivity{
		Kind:            ServerActivityDirectoryUpdate,
		DirectoryUpdate: &DirectoryUpdated{Kind: DirOpCreatedFile, Path: []string{"notes.md"}},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ServerActivity":{"DirectoryUpdate":{"CreatedFile":["notes.md"]}}}`, string(data))
}

// TestScenario_LineLocked_Conflict matches spec scenario: a second LockLine
// on an already-locked line is answered with a DirectoryErr{LineLocked}.
func TestScenario_LineLocked_Conflict(t *testing.T) {
	out := FromServer(ServerActivity{
		Kind: ServerActivityDirectoryErr,
		DirectoryErr: &DirError{
			Kind:     DirErrLineLocked,
			LineLock: &LineRef{AddNo: 1, UserID: "alice"},
		},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"ServerActivity":{"DirectoryErr":{"LineLocked":{"add_no":1,"user_id":"alice"}}}}`,
		string(data))
}

// TestScenario_NotFound_File matches spec scenario: operating on a missing
// file path yields a NotFound DirError carrying the failing name.
func TestScenario_NotFound_File(t *testing.T) {
	out := FromServer(ServerActivity{
		Kind:         ServerActivityDirectoryErr,
		DirectoryErr: &DirError{Kind: DirErrNotFound, Name: "missing.txt"},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ServerActivity":{"DirectoryErr":{"NotFound":"missing.txt"}}}`, string(data))
}

// TestScenario_NotFound_Directory matches spec scenario: walking into a
// missing intermediate directory segment yields NotFound for that segment.
func TestScenario_NotFound_Directory(t *testing.T) {
	out := FromServer(ServerActivity{
		Kind:         ServerActivityDirectoryErr,
		DirectoryErr: &DirError{Kind: DirErrNotFound, Name: "nope"},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"ServerActivity":{"DirectoryErr":{"NotFound":"nope"}}}`, string(data))
}

// TestScenario_FileChanged_Echo matches spec scenario: a FileChanged edit is
// broadcast to other users as the raw UserActivity, unwrapped.
func TestScenario_FileChanged_Echo(t *testing.T) {
	out := FromUser(UserActivity{
		Kind: UserActivityFileChanged,
		FileChanged: &FileChangedPayload{
			Path: []string{"helloworld.txt"},
			Line: 1,
			Old:  "Welcome to codealong!",
			New:  "Welcome, everyone!",
		},
	})

	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"FileChanged":{"path":["helloworld.txt"],"line":1,"old":"Welcome to codealong!","new":"Welcome, everyone!"}}`,
		string(data))
}
