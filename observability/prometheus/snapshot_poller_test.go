package prometheus

import (
	"context"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/beehive-go/beehive/core"
)

type workerStub struct {
	stats core.Stats
}

func (s workerStub) Stats() core.Stats { return s.stats }

type poolStub struct {
	stats core.PoolStats
}

func (s poolStub) Stats() core.PoolStats { return s.stats }

func TestSnapshotPoller_CollectsWorkerAndPoolStats(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddWorker("worker-a", workerStub{stats: core.Stats{
		Messages: 5,
		Runs:     3,
		Idle:     2 * time.Second,
		Active:   500 * time.Millisecond,
	}})
	poller.AddPool("pool-a", poolStub{stats: core.PoolStats{
		ID:       "pool-a",
		Workers:  4,
		Queued:   9,
		Closed:   true,
		Messages: 40,
		Runs:     32,
	}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		runs := testutil.ToFloat64(poller.workerRuns.WithLabelValues("worker-a"))
		queued := testutil.ToFloat64(poller.poolQueued.WithLabelValues("pool-a"))
		return runs == 3 && queued == 9
	})

	if got := testutil.ToFloat64(poller.workerMessages.WithLabelValues("worker-a")); got != 5 {
		t.Fatalf("worker messages gauge = %v, want 5", got)
	}
	if got := testutil.ToFloat64(poller.workerIdleSeconds.WithLabelValues("worker-a")); got != 2 {
		t.Fatalf("worker idle gauge = %v, want 2", got)
	}
	if got := testutil.ToFloat64(poller.workerActiveSeconds.WithLabelValues("worker-a")); got != 0.5 {
		t.Fatalf("worker active gauge = %v, want 0.5", got)
	}
	if got := testutil.ToFloat64(poller.poolWorkers.WithLabelValues("pool-a")); got != 4 {
		t.Fatalf("pool workers gauge = %v, want 4", got)
	}
	if got := testutil.ToFloat64(poller.poolMessages.WithLabelValues("pool-a")); got != 40 {
		t.Fatalf("pool messages gauge = %v, want 40", got)
	}
	if got := testutil.ToFloat64(poller.poolRuns.WithLabelValues("pool-a")); got != 32 {
		t.Fatalf("pool runs gauge = %v, want 32", got)
	}
	if got := testutil.ToFloat64(poller.poolClosed.WithLabelValues("pool-a")); got != 1 {
		t.Fatalf("pool closed gauge = %v, want 1", got)
	}
}

func TestSnapshotPoller_OpenPoolReportsZeroClosed(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	poller.AddPool("pool-open", poolStub{stats: core.PoolStats{ID: "pool-open", Workers: 1}})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	poller.Start(ctx)
	defer poller.Stop()

	assertEventually(t, 2*time.Second, func() bool {
		return testutil.ToFloat64(poller.poolWorkers.WithLabelValues("pool-open")) == 1
	})

	if got := testutil.ToFloat64(poller.poolClosed.WithLabelValues("pool-open")); got != 0 {
		t.Fatalf("pool closed gauge = %v, want 0", got)
	}
}

func TestSnapshotPoller_StartStop_Idempotent(t *testing.T) {
	reg := prom.NewRegistry()
	poller, err := NewSnapshotPoller(reg, 20*time.Millisecond)
	if err != nil {
		t.Fatalf("NewSnapshotPoller failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	poller.Start(ctx)
	poller.Start(ctx)
	poller.Stop()
	poller.Stop()
}

func assertEventually(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met within timeout")
}
