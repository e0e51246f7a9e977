package core

import "time"

// Metrics defines the interface for collecting pool and worker metrics.
// Implementations can send metrics to monitoring systems (Prometheus, StatsD, etc.).
//
// Methods should be non-blocking and fast to avoid impacting task execution
// performance, and thread-safe since workers call them concurrently.
type Metrics interface {
	// RecordTaskDuration records how long a claimed task took to execute.
	//
	// Parameters:
	// - worker: The name of the worker that ran the task
	// - priority: The task priority
	// - duration: How long the task took to execute
	RecordTaskDuration(worker string, priority Priority, duration time.Duration)

	// RecordTaskFailure records that a task's callable failed (returned an
	// error or panicked). The failure itself travels through the task's
	// future; this is only the counter.
	RecordTaskFailure(worker string)

	// RecordMessage records one processed mailbox message by kind.
	RecordMessage(worker string, kind MessageKind)

	// RecordQueueDepth records the current depth of a pool's task queue.
	RecordQueueDepth(pool string, depth int)

	// RecordTaskRejected records that a submission was rejected (e.g.
	// after shutdown).
	RecordTaskRejected(pool string, reason string)
}

// NilMetrics provides a no-op metrics implementation that does nothing.
// This is the default when no metrics interface is provided.
type NilMetrics struct{}

// RecordTaskDuration is a no-op.
func (m *NilMetrics) RecordTaskDuration(worker string, priority Priority, duration time.Duration) {
}

// RecordTaskFailure is a no-op.
func (m *NilMetrics) RecordTaskFailure(worker string) {
}

// RecordMessage is a no-op.
func (m *NilMetrics) RecordMessage(worker string, kind MessageKind) {
}

// RecordQueueDepth is a no-op.
func (m *NilMetrics) RecordQueueDepth(pool string, depth int) {
}

// RecordTaskRejected is a no-op.
func (m *NilMetrics) RecordTaskRejected(pool string, reason string) {
}
