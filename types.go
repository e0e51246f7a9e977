package beehive

import "github.com/beehive-go/beehive/core"

// Re-export commonly used types from core package for convenience.
// This allows users to import only the beehive package for most use cases.

// Task is the unit of work: a callable plus priority and completion signal
type Task = core.Task

// Callable is the function a task wraps
type Callable = core.Callable

// Future is the one-shot, fan-out completion signal of a task
type Future = core.Future

// TaskError wraps a panic recovered from a task callable
type TaskError = core.TaskError

// Priority orders tasks in the pool queue (higher dequeues first)
type Priority = core.Priority

// Message is the control signal delivered to a worker's mailbox
type Message = core.Message

// MessageKind tags a message (NOP, EXIT, TASK, DUMP)
type MessageKind = core.MessageKind

// Worker owns one dedicated OS thread driven by a mailbox loop
type Worker = core.Worker

// WorkerView is a read-only projection of a worker
type WorkerView = core.WorkerView

// WorkerState is a worker's lifecycle state
type WorkerState = core.WorkerState

// Stats is a snapshot of one worker's counters
type Stats = core.Stats

// PoolStats aggregates worker snapshots and queue state
type PoolStats = core.PoolStats

// TimeCounter accumulates elapsed time across start/stop intervals
type TimeCounter = core.TimeCounter

// Logger is the structured logging seam
type Logger = core.Logger

// Metrics is the metrics collection seam
type Metrics = core.Metrics

// Priority constants
const (
	MinPriority     Priority = core.MinPriority
	DefaultPriority Priority = core.DefaultPriority
	MaxPriority     Priority = core.MaxPriority
)

// Message kinds
const (
	MessageNop  MessageKind = core.MessageNop
	MessageExit MessageKind = core.MessageExit
	MessageTask MessageKind = core.MessageTask
	MessageDump MessageKind = core.MessageDump
)

// Worker states
const (
	WorkerIdle       WorkerState = core.WorkerIdle
	WorkerActive     WorkerState = core.WorkerActive
	WorkerTerminated WorkerState = core.WorkerTerminated
)

// Convenience constructors and helpers re-exported from core
var (
	NewTask             = core.NewTask
	NewTaskWithPriority = core.NewTaskWithPriority
	F                   = core.F
)
