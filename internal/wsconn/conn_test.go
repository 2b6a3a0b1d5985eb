// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package wsconn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codealong/server/internal/dirops"
	"github.com/codealong/server/internal/session"
)

func newWSServer(t *testing.T, sess *session.Session, user *session.User, onEmpty func()) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		Serve(context.Background(), conn, sess, user, dirops.Limits{}, onEmpty)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServe_RequestSync_RepliesWithCurrentProject(t *testing.T) {
	store := session.NewStore(1, 4)
	sess, err := store.New()
	require.NoError(t, err)
	user, err := sess.Join("alice")
	require.NoError(t, err)

	srv := newWSServer(t, sess, user, nil)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"RequestSync":null}`)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "CurrentProject")
}

func TestServe_MalformedFrame_DroppedSilently(t *testing.T) {
	store := session.NewStore(1, 4)
	sess, err := store.New()
	require.NoError(t, err)
	user, err := sess.Join("alice")
	require.NoError(t, err)

	srv := newWSServer(t, sess, user, nil)
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"RequestSync":null}`)))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), "CurrentProject")
}

func TestServe_Disconnect_ReleasesLocksAndFiresOnEmpty(t *testing.T) {
	store := session.NewStore(1, 4)
	sess, err := store.New()
	require.NoError(t, err)
	user, err := sess.Join("alice")
	require.NoError(t, err)

	f, err := sess.Root.File("helloworld.txt")
	require.NoError(t, err)
	addNo := f.Snapshot()[0].AddNo
	line, ok := f.LineByAddNo(addNo)
	require.True(t, ok)
	require.True(t, line.TryLock(user.ID))

	emptied := make(chan struct{})
	srv := newWSServer(t, sess, user, func() { close(emptied) })
	conn := dial(t, srv)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"RequestSync":null}`)))
	_, _, err = conn.ReadMessage()
	require.NoError(t, err)

	conn.Close()

	select {
	case <-emptied:
	case <-time.After(2 * time.Second):
		t.Fatal("onEmpty was not called after disconnect")
	}

	_, locked := line.LockedBy()
	assert.False(t, locked, "disconnecting must release the user's line locks")
}
