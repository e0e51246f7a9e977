// Package beehive provides a native worker-pool scheduling core: a fixed
// set of dedicated OS threads, each driven by an actor-style mailbox,
// pulling prioritized tasks from a shared pool and reporting completion
// through observable futures.
//
// # Quick Start
//
// Create a pool, submit work, wait on the future:
//
//	pool := beehive.New(&beehive.Config{Workers: 4})
//	defer pool.Shutdown()
//
//	fut, err := pool.Submit(func() error {
//		// Your code here
//		return nil
//	})
//	if err != nil {
//		// Pool already shut down
//	}
//	if err := fut.Wait(context.Background()); err != nil {
//		// The task returned an error or panicked (*TaskError)
//	}
//
// # Key Concepts
//
// Task: a no-argument callable with a priority in [0, 255]
// (MinPriority=0, DefaultPriority=127, MaxPriority=255) and a one-shot
// Future any number of observers may wait on. Tasks dequeue highest
// priority first; equal priorities dequeue in submission order.
//
// Worker: one dedicated, OS-thread-locked goroutine running a mailbox
// dispatch loop. Control messages (NOP, EXIT, TASK, DUMP) travel through
// the mailbox; the work itself travels through the pool's shared queue.
// Each worker keeps atomic statistics (messages processed, tasks run,
// cumulative idle and active time) readable from any goroutine.
//
// Pool: owns the workers and the shared priority queue, wakes one worker
// per submission, aggregates statistics, and orchestrates shutdown by
// sending EXIT to every worker and joining each.
//
// # Failure Semantics
//
// A task that returns an error or panics fails only itself: the failure is
// captured into its future and delivered to every waiter; the worker and
// the pool keep running. Shutting down with unclaimed tasks queued
// abandons them: they never run and their futures are never fulfilled, so
// waiters should pass a context with a deadline to Wait.
//
// # Observability
//
// Workers answer DUMP messages with a human-readable statistics record,
// serialized process-wide so records never interleave. The core.Metrics
// and core.Logger seams have Prometheus and zap adapters under
// observability/.
package beehive
