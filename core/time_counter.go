package core

import (
	"sync/atomic"
	"time"
)

// counterEpoch anchors interval timestamps to the monotonic clock.
var counterEpoch = time.Now()

// TimeCounter accumulates elapsed wall-clock time across repeated
// Start/Stop intervals. Start and Stop are called only by the owning
// worker's thread; Value may be called concurrently from any goroutine
// and conservatively includes the currently open interval.
//
// The zero value is a stopped counter with no accumulated time.
type TimeCounter struct {
	accumulated atomic.Int64 // nanoseconds
	startedAt   atomic.Int64 // nanoseconds since counterEpoch, 0 = stopped
}

// Start opens a new interval. Starting an already started counter is a
// contract violation.
func (c *TimeCounter) Start() {
	if !c.startedAt.CompareAndSwap(0, nowNanos()) {
		panic("TimeCounter: Start called while started")
	}
}

// Stop closes the open interval and folds it into the accumulated total.
// Stopping a counter that is not started is a contract violation.
func (c *TimeCounter) Stop() {
	started := c.startedAt.Swap(0)
	if started == 0 {
		panic("TimeCounter: Stop called while stopped")
	}
	c.accumulated.Add(nowNanos() - started)
}

// Started reports whether an interval is currently open.
func (c *TimeCounter) Started() bool {
	return c.startedAt.Load() != 0
}

// Value returns the accumulated duration. If an interval is open its
// elapsed portion is included, so two samples taken while the counter is
// running differ by roughly the wall-clock gap between them.
func (c *TimeCounter) Value() time.Duration {
	total := c.accumulated.Load()
	if started := c.startedAt.Load(); started != 0 {
		total += nowNanos() - started
	}
	return time.Duration(total)
}

func nowNanos() int64 {
	return int64(time.Since(counterEpoch))
}
