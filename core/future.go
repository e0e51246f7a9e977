package core

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Future is the one-shot completion signal of a Task, shared by any number
// of observers. It is fulfilled exactly once, after the task's callable has
// finished, and every waiter observes the same outcome: nil for success or
// the captured failure.
//
// Waiters layer their own timeouts through the context passed to Wait, or
// by selecting on Done directly; the future itself never times out.
type Future struct {
	done      chan struct{}
	err       error // written once, before done is closed
	fulfilled atomic.Bool
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Wait blocks until the future is fulfilled or ctx is done. It returns the
// captured failure (nil on success) once fulfilled, or ctx.Err() if the
// context expires first.
func (f *Future) Wait(ctx context.Context) error {
	select {
	case <-f.done:
		return f.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done returns a channel that is closed when the future is fulfilled.
// Useful for composing with select.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Err returns the captured outcome if the future is fulfilled, and nil
// while it is still pending. A nil result is therefore ambiguous unless
// Done has been observed; use Wait when the distinction matters.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// fulfill installs the outcome and wakes every waiter. Called exactly once
// by Task.Run; fulfilling twice is a contract violation.
func (f *Future) fulfill(err error) {
	if !f.fulfilled.CompareAndSwap(false, true) {
		panic("Future: fulfilled twice")
	}
	f.err = err
	close(f.done)
}

// TaskError wraps a panic recovered from a task callable, carrying the
// panic value and the stack at the time of the panic.
type TaskError struct {
	Value any
	Stack []byte
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.Value)
}
