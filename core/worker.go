package core

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/beehive-go/beehive/platform"
)

// TaskSource hands pending tasks to workers. The pool implements it; each
// worker holds it as a non-owning back-reference, and the source must
// outlive every worker pulling from it.
type TaskSource interface {
	// Task atomically removes and returns the highest-priority pending
	// task, or reports that none is available.
	Task() (*Task, bool)
}

// =============================================================================
// WorkerState
// =============================================================================

// WorkerState tracks where a worker is in its life: waiting for a message,
// handling one, or done for good.
type WorkerState int32

const (
	// WorkerIdle: blocked in the mailbox waiting for the next message.
	WorkerIdle WorkerState = iota

	// WorkerActive: handling a message (broadly, running a task).
	WorkerActive

	// WorkerTerminated: the dispatch loop has returned; final state.
	WorkerTerminated
)

func (s WorkerState) String() string {
	switch s {
	case WorkerIdle:
		return "idle"
	case WorkerActive:
		return "active"
	case WorkerTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// =============================================================================
// WorkerConfig
// =============================================================================

// WorkerConfig holds the optional collaborators of a worker. All fields
// are optional; zero values get defaults.
type WorkerConfig struct {
	// Logger receives lifecycle and failure events. Defaults to DefaultLogger.
	Logger Logger

	// Metrics records execution metrics. Defaults to NilMetrics.
	Metrics Metrics

	// DumpSink receives diagnostic dump records. Defaults to os.Stderr.
	DumpSink io.Writer
}

// DefaultWorkerConfig returns a config with default collaborators.
func DefaultWorkerConfig() *WorkerConfig {
	return &WorkerConfig{
		Logger:   NewDefaultLogger(),
		Metrics:  &NilMetrics{},
		DumpSink: os.Stderr,
	}
}

// =============================================================================
// Worker
// =============================================================================

// dumpMu serializes diagnostic dumps process-wide so one worker's record is
// never interleaved with another's. It guards only the dump sink and is
// deliberately independent of any queue lock.
var dumpMu sync.Mutex

// Worker owns one dedicated OS thread running a mailbox dispatch loop. It
// pulls tasks from its TaskSource when signaled, executes them, and keeps
// its own utilization statistics. The loop starts immediately on
// construction and ends only when an EXIT message is processed.
type Worker struct {
	id      int
	source  TaskSource
	mailbox *Mailbox

	logger   Logger
	metrics  Metrics
	dumpSink io.Writer

	nameMu sync.Mutex
	name   string

	state atomic.Int32
	tid   atomic.Int64
	stats atomicStats

	ready    chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

var _ Handler = (*Worker)(nil)

// NewWorker creates a worker with default collaborators and spawns its
// dedicated thread. The worker begins idle, named "worker[<id>]".
func NewWorker(source TaskSource, id int) *Worker {
	return NewWorkerWithConfig(source, id, DefaultWorkerConfig())
}

// NewWorkerWithConfig creates a worker with explicit collaborators. It does
// not return until the loop thread is up and its native thread ID is known.
func NewWorkerWithConfig(source TaskSource, id int, config *WorkerConfig) *Worker {
	w := &Worker{
		id:      id,
		source:  source,
		mailbox: NewMailbox(),
		name:    fmt.Sprintf("worker[%d]", id),
		ready:   make(chan struct{}),
		done:    make(chan struct{}),
	}

	if config != nil {
		w.logger = config.Logger
		w.metrics = config.Metrics
		w.dumpSink = config.DumpSink
	}
	if w.logger == nil {
		w.logger = NewDefaultLogger()
	}
	if w.metrics == nil {
		w.metrics = &NilMetrics{}
	}
	if w.dumpSink == nil {
		w.dumpSink = os.Stderr
	}

	go w.run()
	<-w.ready

	return w
}

// run occupies the worker's dedicated thread for the loop's lifetime.
func (w *Worker) run() {
	defer close(w.done)

	// The goroutine stays locked until it exits, taking the OS thread
	// down with it; affinity calls against w.tid stay meaningful for the
	// whole loop.
	runtime.LockOSThread()
	w.tid.Store(int64(platform.ThreadID()))

	w.stats.idle.Start()
	close(w.ready)

	w.logger.Debug("worker started", F("worker", w.Name()), F("tid", w.tid.Load()))
	w.mailbox.Loop(w)
	w.logger.Debug("worker exited", F("worker", w.Name()), F("stats", w.stats.load()))
}

// ID returns the worker's small integer identity.
func (w *Worker) ID() int {
	return w.id
}

// Name returns the worker's human-readable name.
func (w *Worker) Name() string {
	w.nameMu.Lock()
	defer w.nameMu.Unlock()
	return w.name
}

// SetName replaces the worker's name.
func (w *Worker) SetName(name string) {
	w.nameMu.Lock()
	defer w.nameMu.Unlock()
	w.name = name
}

// State returns the worker's current lifecycle state.
func (w *Worker) State() WorkerState {
	return WorkerState(w.state.Load())
}

// ThreadID returns the native thread ID of the worker's dedicated thread
// (0 where the platform has none).
func (w *Worker) ThreadID() int {
	return int(w.tid.Load())
}

// Stats returns an atomically loaded snapshot of the worker's counters.
func (w *Worker) Stats() Stats {
	return w.stats.load()
}

// View returns a read-only projection of this worker for external
// inspectors.
func (w *Worker) View() WorkerView {
	return WorkerView{w: w}
}

// Send forwards a message to the worker's mailbox. It never blocks.
func (w *Worker) Send(msg Message) {
	w.mailbox.Send(msg)
}

// Exit asks the worker to finish its loop once all earlier messages have
// been handled. It does not wait; pair with Join or use Stop.
func (w *Worker) Exit() {
	w.Send(Message{Kind: MessageExit})
}

// Task signals the worker that work may be pending in its source. This is
// the send side used by the pool; the pull happens in the worker's own
// OnTask handler.
func (w *Worker) Task() {
	w.Send(Message{Kind: MessageTask})
}

// Dump asks the worker to emit a statistics record to its dump sink.
func (w *Worker) Dump() {
	w.Send(Message{Kind: MessageDump})
}

// Affinity returns the set of CPUs the worker's thread may run on.
func (w *Worker) Affinity() ([]bool, error) {
	return platform.Affinity(w.ThreadID())
}

// SetAffinity restricts the worker's thread to the CPUs set in mask.
func (w *Worker) SetAffinity(mask []bool) error {
	return platform.SetAffinity(w.ThreadID(), mask)
}

// Join blocks until the worker's loop has returned and its thread is gone.
func (w *Worker) Join() {
	<-w.done
}

// Stop sends EXIT and joins the loop. Messages already in the mailbox,
// including a task execution in flight when EXIT is processed, complete
// first. Stop is idempotent and safe from any goroutine.
func (w *Worker) Stop() {
	w.stopOnce.Do(func() {
		w.Exit()
		w.Join()
	})
}

// =============================================================================
// Handler implementation: the loop below runs on the worker's own thread
// =============================================================================

// OnBeforeMessage runs immediately before each dispatch: the worker leaves
// idle accounting, enters active accounting, and counts the message.
func (w *Worker) OnBeforeMessage() {
	w.stats.idle.Stop()
	w.stats.active.Start()
	w.stats.messages.Add(1)
	w.state.Store(int32(WorkerActive))
}

// OnAfterMessage runs immediately after each dispatch, returning the
// worker to idle accounting, unless the dispatch terminated the loop, in
// which case both timers stay stopped for good.
func (w *Worker) OnAfterMessage() {
	w.stats.active.Stop()
	if w.state.Load() == int32(WorkerTerminated) {
		return
	}
	w.stats.idle.Start()
	w.state.Store(int32(WorkerIdle))
}

// OnNop is a counted heartbeat.
func (w *Worker) OnNop() HandlerResult {
	w.metrics.RecordMessage(w.Name(), MessageNop)
	return Continue
}

// OnExit moves the worker to its final state and finishes the loop.
func (w *Worker) OnExit() HandlerResult {
	w.metrics.RecordMessage(w.Name(), MessageExit)
	w.state.Store(int32(WorkerTerminated))
	return Finish
}

// OnTask claims at most one pending task from the source and runs it. An
// empty pull is a counted message but not a counted run. Task faults are
// captured by Run into the task's future and never reach this loop.
func (w *Worker) OnTask() HandlerResult {
	name := w.Name()
	w.metrics.RecordMessage(name, MessageTask)

	task, ok := w.source.Task()
	if !ok {
		return Continue
	}

	started := time.Now()
	task.Run()
	w.stats.runs.Add(1)

	w.metrics.RecordTaskDuration(name, task.Priority(), time.Since(started))
	if err := task.Future().Err(); err != nil {
		w.metrics.RecordTaskFailure(name)
		w.logger.Error("task failed", F("worker", name), F("error", err))
	}
	return Continue
}

// OnDump writes one human-readable statistics record to the dump sink,
// serialized under the process-wide dump lock.
func (w *Worker) OnDump() HandlerResult {
	w.metrics.RecordMessage(w.Name(), MessageDump)
	snapshot := w.stats.load()

	dumpMu.Lock()
	defer dumpMu.Unlock()
	fmt.Fprintf(w.dumpSink,
		"Worker: %s\nTasks run: %d\nMessages processed: %d\nTime active: %d milliseconds\nTime idle: %d milliseconds\n",
		w.Name(), snapshot.Runs, snapshot.Messages,
		snapshot.Active.Milliseconds(), snapshot.Idle.Milliseconds())
	return Continue
}
