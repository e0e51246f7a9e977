package core

import (
	"container/heap"
	"sync"
)

const defaultQueueCap = 16

// TaskQueue is the pool's shared queue of pending tasks: priority-major,
// submission-order-minor. Dequeue order is stable for equal priorities
// (FIFO), so no submitter is starved by a stream of peers at its own
// priority. One mutex guards the heap; it is never held across a blocking
// operation; waking sleeping workers happens outside, through their
// mailboxes.
type TaskQueue struct {
	mu           sync.Mutex
	pq           taskHeap
	nextSequence uint64
}

// NewTaskQueue creates an empty queue.
func NewTaskQueue() *TaskQueue {
	return &TaskQueue{
		pq: make(taskHeap, 0, defaultQueueCap),
	}
}

// Push inserts a task, stamping it with the next submission sequence.
func (q *TaskQueue) Push(t *Task) {
	q.mu.Lock()
	defer q.mu.Unlock()

	item := &queueItem{
		task:     t,
		sequence: q.nextSequence,
	}
	q.nextSequence++

	heap.Push(&q.pq, item)
}

// Pop removes and returns the highest-priority pending task. Under
// concurrent pops from racing workers each task is handed out exactly
// once.
func (q *TaskQueue) Pop() (*Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pq) == 0 {
		return nil, false
	}

	item := heap.Pop(&q.pq).(*queueItem)
	return item.task, true
}

// Len returns the number of pending tasks.
func (q *TaskQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pq)
}

// IsEmpty reports whether no tasks are pending.
func (q *TaskQueue) IsEmpty() bool {
	return q.Len() == 0
}

// Clear drops every pending task, releasing all references, and returns
// how many were dropped. Cleared tasks never run and their futures are
// never fulfilled; the caller owns announcing that.
func (q *TaskQueue) Clear() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	dropped := len(q.pq)
	q.pq = make(taskHeap, 0, defaultQueueCap)
	q.nextSequence = 0
	return dropped
}

// =============================================================================
// taskHeap: container/heap implementation with stable priority ordering
// =============================================================================

type queueItem struct {
	task     *Task
	sequence uint64 // For stability
	index    int    // For heap
}

type taskHeap []*queueItem

func (h taskHeap) Len() int { return len(h) }

// Less implements priority logic: high priority first, then small sequence
// first (FIFO within equal priority).
func (h taskHeap) Less(i, j int) bool {
	if h[i].task.Priority() != h[j].task.Priority() {
		return h[i].task.Priority() > h[j].task.Priority()
	}
	return h[i].sequence < h[j].sequence
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x interface{}) {
	n := len(*h)
	item := x.(*queueItem)
	item.index = n
	*h = append(*h, item)
}

func (h *taskHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil // Avoid memory leak
	item.index = -1
	*h = old[0 : n-1]
	return item
}
