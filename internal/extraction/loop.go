package extraction

import (
	"context"
	"sync"
)

// Dispatcher accepts closures to run on the orchestrator's owning goroutine.
// Post must be safe to call from any goroutine and must not block on the
// owner.
type Dispatcher interface {
	Post(fn func())
}

// Loop is a main-loop style message queue. Any goroutine may Post; the
// goroutine that calls Run, RunUntil or RunPending executes the closures in
// posting order.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1)}
}

// Post implements Dispatcher. It never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// RunPending runs everything queued so far and returns how many closures ran.
// Closures posted while draining run on the next call.
func (l *Loop) RunPending() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = nil
	l.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// RunUntil processes posted closures until done reports true or ctx ends.
// done is evaluated on the calling goroutine after every drain.
func (l *Loop) RunUntil(ctx context.Context, done func() bool) error {
	for {
		l.RunPending()
		if done() {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Run processes posted closures until ctx ends.
func (l *Loop) Run(ctx context.Context) error {
	return l.RunUntil(ctx, func() bool { return false })
}
