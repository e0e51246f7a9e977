package prometheus

import (
	"context"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/beehive-go/beehive/core"
)

// WorkerSnapshotProvider provides current worker stats snapshots.
// core.WorkerView satisfies this interface.
type WorkerSnapshotProvider interface {
	Stats() core.Stats
}

// PoolSnapshotProvider provides current pool stats snapshots.
type PoolSnapshotProvider interface {
	Stats() core.PoolStats
}

// SnapshotPoller periodically exports worker/pool Stats() snapshots into Prometheus gauges.
//
// MetricsExporter counts events as they happen; the poller instead samples the
// cumulative counters each worker keeps about itself, so the two views can be
// cross-checked on a dashboard.
type SnapshotPoller struct {
	interval time.Duration

	workersMu sync.RWMutex
	workers   map[string]WorkerSnapshotProvider

	poolsMu sync.RWMutex
	pools   map[string]PoolSnapshotProvider

	workerMessages      *prom.GaugeVec
	workerRuns          *prom.GaugeVec
	workerIdleSeconds   *prom.GaugeVec
	workerActiveSeconds *prom.GaugeVec

	poolQueued   *prom.GaugeVec
	poolWorkers  *prom.GaugeVec
	poolMessages *prom.GaugeVec
	poolRuns     *prom.GaugeVec
	poolClosed   *prom.GaugeVec

	stateMu sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewSnapshotPoller creates a snapshot poller and registers its collectors.
func NewSnapshotPoller(reg prom.Registerer, interval time.Duration) (*SnapshotPoller, error) {
	if reg == nil {
		reg = prom.DefaultRegisterer
	}
	if interval <= 0 {
		interval = time.Second
	}

	workerMessages := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "worker_messages",
		Help:      "Messages processed per worker.",
	}, []string{"worker"})
	workerRuns := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "worker_runs",
		Help:      "Tasks run per worker.",
	}, []string{"worker"})
	workerIdleSeconds := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "worker_idle_seconds",
		Help:      "Cumulative seconds spent waiting for messages per worker.",
	}, []string{"worker"})
	workerActiveSeconds := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "worker_active_seconds",
		Help:      "Cumulative seconds spent handling messages per worker.",
	}, []string{"worker"})

	poolQueued := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "pool_queued",
		Help:      "Queued tasks per pool.",
	}, []string{"pool"})
	poolWorkers := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "pool_workers",
		Help:      "Worker count per pool.",
	}, []string{"pool"})
	poolMessages := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "pool_messages",
		Help:      "Messages processed across all pool workers.",
	}, []string{"pool"})
	poolRuns := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "pool_runs",
		Help:      "Tasks run across all pool workers.",
	}, []string{"pool"})
	poolClosed := prom.NewGaugeVec(prom.GaugeOpts{
		Namespace: "beehive",
		Name:      "pool_closed",
		Help:      "Pool closed state (1=closed, 0=open).",
	}, []string{"pool"})

	var err error
	if workerMessages, err = registerCollector(reg, workerMessages); err != nil {
		return nil, err
	}
	if workerRuns, err = registerCollector(reg, workerRuns); err != nil {
		return nil, err
	}
	if workerIdleSeconds, err = registerCollector(reg, workerIdleSeconds); err != nil {
		return nil, err
	}
	if workerActiveSeconds, err = registerCollector(reg, workerActiveSeconds); err != nil {
		return nil, err
	}
	if poolQueued, err = registerCollector(reg, poolQueued); err != nil {
		return nil, err
	}
	if poolWorkers, err = registerCollector(reg, poolWorkers); err != nil {
		return nil, err
	}
	if poolMessages, err = registerCollector(reg, poolMessages); err != nil {
		return nil, err
	}
	if poolRuns, err = registerCollector(reg, poolRuns); err != nil {
		return nil, err
	}
	if poolClosed, err = registerCollector(reg, poolClosed); err != nil {
		return nil, err
	}

	return &SnapshotPoller{
		interval:            interval,
		workers:             make(map[string]WorkerSnapshotProvider),
		pools:               make(map[string]PoolSnapshotProvider),
		workerMessages:      workerMessages,
		workerRuns:          workerRuns,
		workerIdleSeconds:   workerIdleSeconds,
		workerActiveSeconds: workerActiveSeconds,
		poolQueued:          poolQueued,
		poolWorkers:         poolWorkers,
		poolMessages:        poolMessages,
		poolRuns:            poolRuns,
		poolClosed:          poolClosed,
	}, nil
}

// AddWorker adds or replaces a worker snapshot provider by name.
func (p *SnapshotPoller) AddWorker(name string, provider WorkerSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "worker")
	p.workersMu.Lock()
	p.workers[name] = provider
	p.workersMu.Unlock()
}

// AddPool adds or replaces a pool snapshot provider by name.
func (p *SnapshotPoller) AddPool(name string, provider PoolSnapshotProvider) {
	if p == nil || provider == nil {
		return
	}
	name = normalizeLabel(name, "pool")
	p.poolsMu.Lock()
	p.pools[name] = provider
	p.poolsMu.Unlock()
}

// Start begins periodic polling; repeated calls are no-ops.
func (p *SnapshotPoller) Start(ctx context.Context) {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if p.running {
		p.stateMu.Unlock()
		return
	}
	pollCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})
	p.running = true
	p.stateMu.Unlock()

	go p.loop(pollCtx)
}

// Stop stops periodic polling; repeated calls are safe.
func (p *SnapshotPoller) Stop() {
	if p == nil {
		return
	}

	p.stateMu.Lock()
	if !p.running {
		p.stateMu.Unlock()
		return
	}
	cancel := p.cancel
	done := p.done
	p.stateMu.Unlock()

	if cancel != nil {
		cancel()
	}
	if done != nil {
		<-done
	}

	p.stateMu.Lock()
	p.running = false
	p.cancel = nil
	p.done = nil
	p.stateMu.Unlock()
}

func (p *SnapshotPoller) loop(ctx context.Context) {
	defer close(p.done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.collectOnce()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.collectOnce()
		}
	}
}

func (p *SnapshotPoller) collectOnce() {
	p.workersMu.RLock()
	for name, provider := range p.workers {
		stats := provider.Stats()
		p.workerMessages.WithLabelValues(name).Set(float64(stats.Messages))
		p.workerRuns.WithLabelValues(name).Set(float64(stats.Runs))
		p.workerIdleSeconds.WithLabelValues(name).Set(stats.Idle.Seconds())
		p.workerActiveSeconds.WithLabelValues(name).Set(stats.Active.Seconds())
	}
	p.workersMu.RUnlock()

	p.poolsMu.RLock()
	for name, provider := range p.pools {
		stats := provider.Stats()
		p.poolQueued.WithLabelValues(name).Set(float64(stats.Queued))
		p.poolWorkers.WithLabelValues(name).Set(float64(stats.Workers))
		p.poolMessages.WithLabelValues(name).Set(float64(stats.Messages))
		p.poolRuns.WithLabelValues(name).Set(float64(stats.Runs))
		if stats.Closed {
			p.poolClosed.WithLabelValues(name).Set(1)
		} else {
			p.poolClosed.WithLabelValues(name).Set(0)
		}
	}
	p.poolsMu.RUnlock()
}
