// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package viewer

import (
	"context"
)

// Loop is a queue of tasks that are run on the goroutine that owns a
// [Viewer]. Other goroutines (file watchers, network handlers, timers)
// must post their work to the loop instead of touching the viewer.
// The owner either calls [Loop.Run], or calls [Loop.Drain] from its own
// frame loop.
type Loop struct {
	tasks chan func()
}

// NewLoop returns a new [Loop].
func NewLoop() *Loop {
	return &Loop{tasks: make(chan func(), 256)}
}

// Post queues fn to be run on the owning goroutine. It blocks only if
// the queue is full.
func (lp *Loop) Post(fn func()) {
	lp.tasks <- fn
}

// PostContext is like [Loop.Post], but gives up and returns the context
// error if the context is done while the queue is full.
func (lp *Loop) PostContext(ctx context.Context, fn func()) error {
	select {
	case lp.tasks <- fn:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do queues fn and waits until it has run on the owning goroutine,
// or until the context is done.
func (lp *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}
	select {
	case lp.tasks <- task:
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run runs queued tasks in arrival order until the context is done.
func (lp *Loop) Run(ctx context.Context) error {
	for {
		select {
		case fn := <-lp.tasks:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Drain runs every task that is currently queued without blocking,
// and returns how many were run.
func (lp *Loop) Drain() int {
	n := 0
	for {
		select {
		case fn := <-lp.tasks:
			fn()
			n++
		default:
			return n
		}
	}
}
