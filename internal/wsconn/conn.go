// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package wsconn runs the per-user connection loop: an outbound drain
// goroutine paired with a sequential inbound decode/route/dispatch loop,
// grounded on the same ping/pong keepalive and single-writer discipline
// the teacher's terminal websocket handler uses.
package wsconn

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/codealong/server/internal/activity"
	"github.com/codealong/server/internal/dirops"
	"github.com/codealong/server/internal/session"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Serve runs the connection's lifetime: it blocks until the inbound
// stream ends, at which point the user is removed from sess and, if that
// was the session's last user, the session is torn down via onEmpty.
func Serve(ctx context.Context, conn *websocket.Conn, sess *session.Session, user *session.User, limits dirops.Limits, onEmpty func()) {
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var writeMu sync.Mutex

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	go drainOutbound(connCtx, conn, &writeMu, user.Outbound)
	go pingLoop(connCtx, conn, &writeMu)

	runInbound(connCtx, conn, sess, user, limits)

	cancel()
	user.Outbound.Close()
	dirops.ReleaseUserLocks(sess.Root, user.ID)
	if empty := sess.Leave(user.ID); empty && onEmpty != nil {
		onEmpty()
	}
}

func runInbound(ctx context.Context, conn *websocket.Conn, sess *session.Session, user *session.User, limits dirops.Limits) {
	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		var ua activity.UserActivity
		if err := json.Unmarshal(data, &ua); err != nil {
			continue // protocol error: dropped silently, per the error handling design
		}

		audience, out := dirops.Route(ctx, sess, user.ID, &ua, limits)
		encoded, err := json.Marshal(out)
		if err != nil {
			continue
		}
		sess.Broadcast(audience, user.ID, encoded)
	}
}

func drainOutbound(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex, q *session.Queue) {
	for {
		msg, ok := q.Pop(ctx)
		if !ok {
			return
		}
		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		err := conn.WriteMessage(websocket.TextMessage, msg)
		writeMu.Unlock()
		if err != nil {
			return
		}
	}
}

func pingLoop(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				log.Printf("wsconn: ping failed: %v", err)
				return
			}
		}
	}
}
