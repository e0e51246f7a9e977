package core

// WorkerView is a read-only projection of a worker for external
// inspectors: identity, state, statistics, and affinity are visible, but
// nothing that could mutate the worker or reach its mailbox or thread
// handle. Views are cheap values safe to copy and share.
type WorkerView struct {
	w *Worker
}

// ID returns the worker's small integer identity.
func (v WorkerView) ID() int {
	return v.w.ID()
}

// Name returns the worker's current name.
func (v WorkerView) Name() string {
	return v.w.Name()
}

// State returns the worker's current lifecycle state.
func (v WorkerView) State() WorkerState {
	return v.w.State()
}

// Stats returns a snapshot of the worker's counters.
func (v WorkerView) Stats() Stats {
	return v.w.Stats()
}

// Affinity returns the set of CPUs the worker's thread may run on.
func (v WorkerView) Affinity() ([]bool, error) {
	return v.w.Affinity()
}
