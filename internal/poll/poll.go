// Package poll runs a task periodically until it is stopped.
//
// The task runs once immediately and then on every tick. Runs never overlap:
// a tick that fires while the task is still running is coalesced into the
// next run. Stopping prevents any further run but does not cancel a run that
// is already in flight; owners discard its result by checking Stopped.
package poll

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context) error

type options struct {
	onError func(error)
}

// Option configures a poller.
type Option func(*options)

// WithErrorHook is called with every task error. Errors never stop the loop.
func WithErrorHook(fn func(error)) Option {
	return func(o *options) { o.onError = fn }
}

// Handle controls a running poller.
type Handle struct {
	stop    chan struct{}
	done    chan struct{}
	once    sync.Once
	stopped atomic.Bool
	runs    atomic.Int64
}

// Start launches task every interval. The poller exits when Stop is called or
// ctx is done.
func Start(ctx context.Context, interval time.Duration, task Task, opts ...Option) *Handle {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	h := &Handle{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go h.loop(ctx, interval, task, o)
	return h
}

func (h *Handle) loop(ctx context.Context, interval time.Duration, task Task, o options) {
	defer close(h.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	h.run(ctx, task, o)
	for {
		select {
		case <-h.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.Stopped() || ctx.Err() != nil {
				return
			}
			h.run(ctx, task, o)
		}
	}
}

func (h *Handle) run(ctx context.Context, task Task, o options) {
	h.runs.Add(1)
	if err := task(ctx); err != nil && o.onError != nil {
		o.onError(err)
	}
}

// Stop prevents further runs. It is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.stopped.Store(true)
		close(h.stop)
	})
}

// Stopped reports whether Stop has been called.
func (h *Handle) Stopped() bool {
	return h.stopped.Load()
}

// Done is closed once the poller has exited and any in-flight run finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Runs returns how many times the task has been started.
func (h *Handle) Runs() int64 {
	return h.runs.Load()
}
