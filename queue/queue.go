// Copyright (c) 2016 Company 0, LLC.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package queue implements the bounded, tagged queues the key-exchange
// engines publish to: NH, Command, and Key-Management. Each is a single
// Go channel wrapped with a stable tag, so a Put on a full queue blocks
// cooperatively (mirroring the source's multiprocessing.Queue) instead of
// dropping data, while a concurrent sender loop drains it.
package queue

import "context"

// Queue is a bounded, multi-producer/single-consumer mailbox identified by
// a wire.QueueTag. T is typically []byte (NH/Command packets) or a record
// struct (Key-Management entries).
type Queue[T any] struct {
	tag int
	ch  chan T
}

// New allocates a Queue with the given tag and capacity.
func New[T any](tag int, capacity int) *Queue[T] {
	return &Queue[T]{
		tag: tag,
		ch:  make(chan T, capacity),
	}
}

// Tag returns the stable tag this queue was created with.
func (q *Queue[T]) Tag() int {
	return q.tag
}

// Put enqueues v, blocking cooperatively until space is available or ctx
// is cancelled. A cancelled context models a user interrupt: the engine
// that called Put sees ctx.Err() and aborts without having written
// anything further.
func (q *Queue[T]) Put(ctx context.Context, v T) error {
	select {
	case q.ch <- v:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TryPut enqueues v without blocking, reporting false if the queue is
// currently full.
func (q *Queue[T]) TryPut(v T) bool {
	select {
	case q.ch <- v:
		return true
	default:
		return false
	}
}

// Get dequeues the next value, blocking until one is available or ctx is
// cancelled.
func (q *Queue[T]) Get(ctx context.Context) (T, error) {
	var zero T
	select {
	case v := <-q.ch:
		return v, nil
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// Len reports how many items are currently buffered.
func (q *Queue[T]) Len() int {
	return len(q.ch)
}
