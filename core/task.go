package core

import (
	"runtime/debug"
	"sync/atomic"
)

// Callable is the unit of work a Task wraps. It captures its own arguments;
// a returned error becomes the failure state of the task's future.
type Callable func() error

// =============================================================================
// Priority: 8-bit ordered domain for queue placement
// =============================================================================

// Priority orders tasks in the pool queue. Higher values dequeue first;
// ties dequeue in submission order.
type Priority uint8

const (
	// MinPriority is the lowest priority.
	MinPriority Priority = 0

	// DefaultPriority is the priority assigned when none is given.
	DefaultPriority Priority = 127

	// MaxPriority is the highest priority.
	MaxPriority Priority = 255
)

// =============================================================================
// Task: a callable plus its priority and shared completion signal
// =============================================================================

// Task pairs a callable with a priority and a one-shot Future that any
// number of observers may wait on. A task is created by a submitter, held
// by the pool queue until one worker claims it, and run by that worker
// exactly once.
type Task struct {
	fn       Callable
	priority Priority
	future   *Future
	ran      atomic.Bool
}

// NewTask creates a task with DefaultPriority.
func NewTask(fn Callable) *Task {
	return NewTaskWithPriority(fn, DefaultPriority)
}

// NewTaskWithPriority creates a task with an explicit priority.
func NewTaskWithPriority(fn Callable, priority Priority) *Task {
	return &Task{
		fn:       fn,
		priority: priority,
		future:   newFuture(),
	}
}

// Priority returns the task's queue priority.
func (t *Task) Priority() Priority {
	return t.priority
}

// Future returns the shared completion signal. It may be called any number
// of times, before or after completion.
func (t *Task) Future() *Future {
	return t.future
}

// Run invokes the callable exactly once and then fulfills the future.
// A returned error or a recovered panic becomes the future's failure state
// (panics wrapped in *TaskError); neither escapes Run, so a faulting task
// never takes its worker down. Running a task twice is a contract violation.
func (t *Task) Run() {
	if !t.ran.CompareAndSwap(false, true) {
		panic("Task: Run called twice")
	}
	t.future.fulfill(t.invoke())
}

// invoke calls the callable, converting a panic into a *TaskError.
func (t *Task) invoke() (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = &TaskError{Value: rec, Stack: debug.Stack()}
		}
	}()
	return t.fn()
}
