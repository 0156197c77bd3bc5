package dispatch

import (
	"sync"
	"time"

	"github.com/hupe1980/camstate/core"
)

// operation is one unit of work queued onto the loop. Done is nil for
// fire-and-forget posts.
type operation struct {
	fn   func()
	done chan struct{}
}

// Loop executes queued operations one at a time on a dedicated goroutine.
// Operations submitted from one caller run in submission order; operations
// from different callers are serialized in arrival order. Stop drains
// nothing: queued operations that have not started are dropped.
//
// Callbacks must not invoke Call from within an operation already running on
// the loop; that would wait on the loop from inside it. Reentrant work is
// what Post and ScheduleAfterDelay are for.
//
// A loop is single-use: once stopped it cannot be restarted. Construct a new
// one instead.
type Loop struct {
	mu         sync.Mutex
	running    bool
	stopped    bool
	operations chan operation
	stopCh     chan struct{}
	wg         sync.WaitGroup
}

// NewLoop constructs a stopped loop with a buffered operation queue.
func NewLoop() *Loop {
	return &Loop{
		operations: make(chan operation, 64),
		stopCh:     make(chan struct{}),
	}
}

// Start begins the loop goroutine.
func (l *Loop) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.running {
		return core.ErrAlreadyRunning
	}
	if l.stopped {
		return core.ErrLoopStopped
	}
	l.running = true
	l.wg.Add(1)
	go l.run()

	return nil
}

// Stop halts the loop and waits for the in-flight operation to finish.
// Stopping a stopped loop is a no-op.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.running = false
	l.stopped = true
	close(l.stopCh)
	l.mu.Unlock()

	l.wg.Wait()
}

// IsRunning reports whether the loop is active.
func (l *Loop) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) run() {
	defer l.wg.Done()
	for {
		select {
		case <-l.stopCh:
			return
		case op := <-l.operations:
			op.fn()
			if op.done != nil {
				close(op.done)
			}
		}
	}
}

// Call runs fn on the loop and waits for it to complete. It returns
// core.ErrLoopStopped when the loop is not running or stops before the
// operation starts.
func (l *Loop) Call(fn func()) error {
	done := make(chan struct{})
	if err := l.submit(operation{fn: fn, done: done}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-l.stopCh:
		// The operation may have completed in the same instant the loop
		// stopped; prefer reporting success when it did.
		select {
		case <-done:
			return nil
		default:
			return core.ErrLoopStopped
		}
	}
}

// Post queues fn on the loop without waiting for it to run.
func (l *Loop) Post(fn func()) error {
	return l.submit(operation{fn: fn})
}

func (l *Loop) submit(op operation) error {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return core.ErrLoopStopped
	}
	l.mu.Unlock()

	select {
	case l.operations <- op:
		return nil
	case <-l.stopCh:
		return core.ErrLoopStopped
	}
}

// ScheduleAfterDelay implements core.Scheduler: fn is posted back onto the
// loop when the delay elapses. A timer firing after Stop is silently
// discarded, so a stale retry cannot run off-loop.
func (l *Loop) ScheduleAfterDelay(delay time.Duration, fn func()) {
	time.AfterFunc(delay, func() {
		_ = l.Post(fn) // a stopped loop drops deferred work
	})
}
