//go:build linux

package platform

import (
	"fmt"
	"runtime"

	"golang.org/x/sys/unix"
)

// ThreadID returns the kernel thread ID of the calling thread. Meaningful
// only while the calling goroutine is locked to its OS thread.
func ThreadID() int {
	return unix.Gettid()
}

// Affinity returns the CPUs thread tid may run on, indexed by CPU number.
func Affinity(tid int) ([]bool, error) {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(tid, &set); err != nil {
		return nil, fmt.Errorf("platform: get affinity of thread %d: %w", tid, err)
	}

	mask := make([]bool, runtime.NumCPU())
	for cpu := range mask {
		mask[cpu] = set.IsSet(cpu)
	}
	return mask, nil
}

// SetAffinity restricts thread tid to the CPUs set in mask. At least one
// CPU must be permitted.
func SetAffinity(tid int, mask []bool) error {
	var set unix.CPUSet
	set.Zero()
	for cpu, allowed := range mask {
		if allowed {
			set.Set(cpu)
		}
	}
	if set.Count() == 0 {
		return fmt.Errorf("platform: set affinity of thread %d: empty CPU mask", tid)
	}

	if err := unix.SchedSetaffinity(tid, &set); err != nil {
		return fmt.Errorf("platform: set affinity of thread %d: %w", tid, err)
	}
	return nil
}
