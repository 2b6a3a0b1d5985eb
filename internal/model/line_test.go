// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package model

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine_TryLock(t *testing.T) {
	l := NewLine("hello")
	require.True(t, l.TryLock("alice"))

	holder, locked := l.LockedBy()
	assert.True(t, locked)
	assert.Equal(t, "alice", holder)

	assert.False(t, l.TryLock("bob"), "a locked line must reject a second locker")
}

func TestLine_Unlock(t *testing.T) {
	l := NewLine("hello")
	require.True(t, l.TryLock("alice"))

	assert.False(t, l.Unlock("bob"), "unlock by a non-holder must fail")
	assert.True(t, l.Unlock("alice"))

	_, locked := l.LockedBy()
	assert.False(t, locked)
}

func TestLine_SetText_RequiresLock(t *testing.T) {
	l := NewLine("hello")
	assert.False(t, l.SetText("alice", "world"), "setting text without the lock must fail")

	require.True(t, l.TryLock("alice"))
	assert.True(t, l.SetText("alice", "world"))
	assert.Equal(t, "world", l.Text())
}

func TestLine_ConcurrentLock_ExactlyOneWinner(t *testing.T) {
	l := NewLine("hello")

	const n = 50
	var wg sync.WaitGroup
	wins := make([]bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i] = l.TryLock("user")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, w := range wins {
		if w {
			successes++
		}
	}
	assert.Equal(t, 1, successes, "exactly one concurrent TryLock must succeed")
}
