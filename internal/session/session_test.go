// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Join_MaxCapacity(t *testing.T) {
	store := NewStore(1, 1)
	sess, err := store.New()
	require.NoError(t, err)

	_, err = sess.Join("alice")
	require.NoError(t, err)

	_, err = sess.Join("bob")
	assert.ErrorIs(t, err, ErrMaxCapacity)
}

func TestSession_RootHasHelloWorld(t *testing.T) {
	store := NewStore(1, 1)
	sess, err := store.New()
	require.NoError(t, err)

	dto := sess.Root.Snapshot()
	require.Contains(t, dto.Files, "helloworld.txt")
	assert.Equal(t, []string{"Welcome to codealong!"}, dto.Files["helloworld.txt"])
}

func TestSession_Broadcast_Audiences(t *testing.T) {
	store := NewStore(1, 3)
	sess, err := store.New()
	require.NoError(t, err)

	a, _ := sess.Join("a")
	b, _ := sess.Join("b")
	c, _ := sess.Join("c")

	sess.Broadcast(AudienceSameUser, a.ID, []byte("same"))
	sess.Broadcast(AudienceOtherUsers, a.ID, []byte("others"))
	sess.Broadcast(AudienceAllUsers, a.ID, []byte("all"))

	aMsgs := drain(t, a.Outbound, 2)
	bMsgs := drain(t, b.Outbound, 2)
	cMsgs := drain(t, c.Outbound, 2)

	assert.ElementsMatch(t, []string{"same", "all"}, aMsgs)
	assert.ElementsMatch(t, []string{"others", "all"}, bMsgs)
	assert.ElementsMatch(t, []string{"others", "all"}, cMsgs)
}

func drain(t *testing.T, q *Queue, n int) []string {
	t.Helper()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		msg, ok := q.Pop(context.Background())
		require.True(t, ok)
		out = append(out, string(msg))
	}
	return out
}

func TestSession_ConcurrentJoin_RespectsCapacity(t *testing.T) {
	store := NewStore(1, 5)
	sess, err := store.New()
	require.NoError(t, err)

	const attempts = 20
	var wg sync.WaitGroup
	successes := 0
	var mu sync.Mutex
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := sess.Join("user"); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, successes)
	assert.LessOrEqual(t, sess.UserCount(), 5)
}
