// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package session implements the session registry: sessions, their users,
// and the unbounded per-user outbound message queue that decouples a
// handler's broadcast from however fast a particular websocket can drain.
package session

import (
	"context"
	"sync"
)

// Queue is an unbounded FIFO, the Go equivalent of the original server's
// unbounded mpsc channel: any number of goroutines may Push concurrently,
// and a single consumer Pops in order. Unlike a buffered channel it never
// blocks the sender and never drops an item, at the cost of unbounded
// memory if the consumer falls permanently behind — acceptable here since
// a stalled consumer means a dead connection, which tears the queue down.
type Queue struct {
	mu    sync.Mutex
	cond  *sync.Cond
	items [][]byte
	closed bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push appends a message, waking any goroutine blocked in Pop.
func (q *Queue) Push(msg []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, msg)
	q.cond.Signal()
}

// Pop blocks until a message is available, the queue is closed, or ctx is
// done. ok is false once the queue is drained and closed.
func (q *Queue) Pop(ctx context.Context) (msg []byte, ok bool) {
	done := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		close(done)
		q.cond.Broadcast()
		q.mu.Unlock()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		select {
		case <-done:
			return nil, false
		default:
		}
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	msg = q.items[0]
	q.items = q.items[1:]
	return msg, true
}

// Close marks the queue closed, unblocking any waiting Pop once drained.
func (q *Queue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
