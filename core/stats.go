package core

import (
	"sync/atomic"
	"time"
)

// Stats is a point-in-time snapshot of one worker's counters. Snapshots
// are plain comparable values; two snapshots are equal when every field
// is equal (==).
//
// Counters are monotone per worker and always satisfy Runs <= Messages:
// every claimed task was announced by a message, but a message need not
// yield a task (an empty pull still counts as a processed message).
type Stats struct {
	Messages uint64
	Runs     uint64
	Idle     time.Duration
	Active   time.Duration
}

// atomicStats is the mutable counterpart behind Stats. All writes happen
// on the owning worker's thread; loads may happen anywhere. Each field is
// loaded independently; the snapshot is per-field consistent, not a
// cross-field transaction.
type atomicStats struct {
	messages atomic.Uint64
	runs     atomic.Uint64
	idle     TimeCounter
	active   TimeCounter
}

func (s *atomicStats) load() Stats {
	return Stats{
		Messages: s.messages.Load(),
		Runs:     s.runs.Load(),
		Idle:     s.idle.Value(),
		Active:   s.active.Value(),
	}
}

// PoolStats aggregates the snapshots of a pool's workers plus the state of
// its shared queue.
type PoolStats struct {
	ID       string
	Workers  int
	Queued   int
	Closed   bool
	Messages uint64
	Runs     uint64
	Idle     time.Duration
	Active   time.Duration
}
