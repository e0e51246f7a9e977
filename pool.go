package beehive

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/beehive-go/beehive/core"
)

// ErrPoolClosed is returned for submissions after Shutdown. Shutdown is
// inherently racy with concurrent submitters, so this is an ordinary error,
// not a panic: a submitter cannot know it lost the race.
var ErrPoolClosed = errors.New("beehive: pool is shut down")

// Pool owns a set of dedicated worker threads and the shared priority
// queue they pull from. Submissions enter the queue (priority-major,
// submission-order-minor) and wake one worker through its mailbox; the
// woken worker claims the highest-priority pending task, whichever
// submission produced it.
//
// A task in the queue is owned by the queue alone; once a worker pops it,
// that worker owns it until execution completes. Exactly one worker runs
// any given task.
type Pool struct {
	id        string
	queue     *core.TaskQueue
	logger    core.Logger
	metrics   core.Metrics
	workerCfg *core.WorkerConfig

	mu      sync.Mutex // guards workers, nextID, and the closed transition
	workers []*core.Worker
	nextID  int

	closed     atomic.Bool
	nextSignal atomic.Uint64
}

var _ core.TaskSource = (*Pool)(nil)

// New creates a pool and spawns its workers. The given config is copied;
// nil means all defaults.
func New(config *Config) *Pool {
	cfg := &Config{}
	if config != nil {
		*cfg = *config
	}
	cfg.normalize()

	p := &Pool{
		id:      cfg.ID,
		queue:   core.NewTaskQueue(),
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
		workerCfg: &core.WorkerConfig{
			Logger:   cfg.Logger,
			Metrics:  cfg.Metrics,
			DumpSink: cfg.DumpSink,
		},
	}

	p.mu.Lock()
	p.addLocked(cfg.Workers)
	p.mu.Unlock()

	p.logger.Info("pool started", core.F("pool", p.id), core.F("workers", cfg.Workers))
	return p
}

// addLocked spawns n workers. Caller holds p.mu.
func (p *Pool) addLocked(n int) {
	for i := 0; i < n; i++ {
		w := core.NewWorkerWithConfig(p, p.nextID, p.workerCfg)
		p.nextID++
		p.workers = append(p.workers, w)
	}
}

// AddWorkers grows a running pool by n workers.
func (p *Pool) AddWorkers(n int) error {
	if n <= 0 {
		return nil
	}

	p.mu.Lock()
	if p.closed.Load() {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.addLocked(n)
	total := len(p.workers)
	p.mu.Unlock()

	p.logger.Info("pool grown", core.F("pool", p.id), core.F("workers", total))
	return nil
}

// ID returns the pool's identity used in logs and metrics labels.
func (p *Pool) ID() string {
	return p.id
}

// IsClosed reports whether Shutdown has begun.
func (p *Pool) IsClosed() bool {
	return p.closed.Load()
}

// WorkerCount returns the number of owned workers.
func (p *Pool) WorkerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.workers)
}

// QueuedTaskCount returns the number of pending, unclaimed tasks.
func (p *Pool) QueuedTaskCount() int {
	return p.queue.Len()
}

// Submit wraps fn in a task with DefaultPriority, enqueues it, and wakes
// one worker. The returned future reports fn's outcome to any number of
// waiters.
func (p *Pool) Submit(fn core.Callable) (*core.Future, error) {
	return p.SubmitWithPriority(fn, core.DefaultPriority)
}

// SubmitWithPriority is Submit with an explicit priority.
func (p *Pool) SubmitWithPriority(fn core.Callable, priority core.Priority) (*core.Future, error) {
	task := core.NewTaskWithPriority(fn, priority)
	if err := p.SubmitTask(task); err != nil {
		return nil, err
	}
	return task.Future(), nil
}

// SubmitTask enqueues an already constructed task and wakes one worker.
// Tasks are dequeued highest priority first, FIFO within equal priority.
func (p *Pool) SubmitTask(task *core.Task) error {
	if p.closed.Load() {
		p.metrics.RecordTaskRejected(p.id, "shutdown")
		return ErrPoolClosed
	}

	p.queue.Push(task)
	p.metrics.RecordQueueDepth(p.id, p.queue.Len())
	p.signalOne()
	return nil
}

// signalOne wakes a single worker with a TASK message. Round-robin is a
// placement hint, not a correctness requirement: whichever worker polls
// next finds the task through the shared queue.
func (p *Pool) signalOne() {
	p.mu.Lock()
	if len(p.workers) == 0 {
		p.mu.Unlock()
		return
	}
	idx := int(p.nextSignal.Add(1)-1) % len(p.workers)
	w := p.workers[idx]
	p.mu.Unlock()

	w.Task()
}

// Task is the pull side invoked from a worker's OnTask handler: it
// atomically removes and returns the highest-priority pending task.
// Exactly-once handout under racing workers is the queue's guarantee.
func (p *Pool) Task() (*core.Task, bool) {
	task, ok := p.queue.Pop()
	if ok {
		p.metrics.RecordQueueDepth(p.id, p.queue.Len())
	}
	return task, ok
}

// Dump asks every worker to emit a statistics record. Records are
// serialized by the process-wide dump lock, never interleaved.
func (p *Pool) Dump() {
	for _, w := range p.snapshotWorkers() {
		w.Dump()
	}
}

// Stats sums the workers' snapshots and adds queue state.
func (p *Pool) Stats() core.PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	stats := core.PoolStats{
		ID:      p.id,
		Workers: len(p.workers),
		Queued:  p.queue.Len(),
		Closed:  p.closed.Load(),
	}
	for _, w := range p.workers {
		s := w.Stats()
		stats.Messages += s.Messages
		stats.Runs += s.Runs
		stats.Idle += s.Idle
		stats.Active += s.Active
	}
	return stats
}

// Views returns read-only projections of the workers for external
// inspectors.
func (p *Pool) Views() []core.WorkerView {
	workers := p.snapshotWorkers()
	views := make([]core.WorkerView, 0, len(workers))
	for _, w := range workers {
		views = append(views, w.View())
	}
	return views
}

// Shutdown sends EXIT to every worker and joins each. Safe to call with a
// non-empty queue: tasks already claimed (or reachable by TASK messages
// ahead of the EXIT in some mailbox) still run to completion; the rest are
// abandoned: never executed, futures never fulfilled. Waiters must bring
// their own context deadline. Shutdown is idempotent.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed.Load() {
		p.mu.Unlock()
		return
	}
	p.closed.Store(true)
	workers := make([]*core.Worker, len(p.workers))
	copy(workers, p.workers)
	p.mu.Unlock()

	for _, w := range workers {
		w.Exit()
	}
	for _, w := range workers {
		w.Join()
	}

	abandoned := p.queue.Clear()
	p.metrics.RecordQueueDepth(p.id, 0)
	if abandoned > 0 {
		p.logger.Warn("abandoning unclaimed tasks; their futures will never be fulfilled",
			core.F("pool", p.id), core.F("tasks", abandoned))
	}
	p.logger.Info("pool shut down", core.F("pool", p.id), core.F("workers", len(workers)))
}

func (p *Pool) snapshotWorkers() []*core.Worker {
	p.mu.Lock()
	defer p.mu.Unlock()
	workers := make([]*core.Worker, len(p.workers))
	copy(workers, p.workers)
	return workers
}
