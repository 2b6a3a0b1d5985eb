// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CapacityEnforced(t *testing.T) {
	store := NewStore(1, 8)

	_, err := store.New()
	require.NoError(t, err)

	_, err = store.New()
	assert.ErrorIs(t, err, ErrAtCapacity)
}

func TestStore_AvailableActive(t *testing.T) {
	store := NewStore(4, 1)

	full, err := store.New()
	require.NoError(t, err)
	_, err = full.Join("alice")
	require.NoError(t, err)

	available, err := store.New()
	require.NoError(t, err)

	ids := store.AvailableActive()
	assert.Contains(t, ids, available.ID)
	assert.NotContains(t, ids, full.ID)
}

func TestStore_RemoveOnLastUserLeave(t *testing.T) {
	store := NewStore(4, 4)
	sess, err := store.New()
	require.NoError(t, err)

	u, err := sess.Join("alice")
	require.NoError(t, err)

	empty := sess.Leave(u.ID)
	assert.True(t, empty)
	store.Remove(sess.ID)

	_, err = store.Get(sess.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
