package usecases

import (
	"context"
	"errors"
	"sync"
)

// ErrLoopClosed is returned by Post after the loop has stopped.
var ErrLoopClosed = errors.New("event loop closed")

// Scheduler separates blocking work from state mutation. Go runs a service
// call off the loop; Post hands its completion back to the loop, where all
// map mutations happen.
type Scheduler interface {
	Go(fn func())
	Post(fn func()) error
}

// EventLoop is the single writer for one map session. Everything that touches
// the controller runs inside Run, one closure at a time.
type EventLoop struct {
	queue chan func()

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

// NewEventLoop creates a loop with the given queue depth.
func NewEventLoop(buffer int) *EventLoop {
	if buffer <= 0 {
		buffer = 64
	}
	return &EventLoop{queue: make(chan func(), buffer), done: make(chan struct{})}
}

// Go starts fn on its own goroutine.
func (l *EventLoop) Go(fn func()) { go fn() }

// Post enqueues fn for execution on the loop.
func (l *EventLoop) Post(fn func()) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.closed {
		return ErrLoopClosed
	}
	select {
	case l.queue <- fn:
		return nil
	case <-l.done:
		return ErrLoopClosed
	}
}

// Run drains the queue until ctx is cancelled. Closures still queued at that
// point are dropped, which is the same as a stale completion.
func (l *EventLoop) Run(ctx context.Context) error {
	defer l.stop()
	for {
		select {
		case fn := <-l.queue:
			fn()
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Done is closed once Run has returned.
func (l *EventLoop) Done() <-chan struct{} { return l.done }

func (l *EventLoop) stop() {
	close(l.done)
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
}
