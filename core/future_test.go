package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

// TestFuture_WaitBlocksUntilFulfilled verifies Wait wakes on fulfillment
// Given: A pending future with a concurrent waiter
// When: The task runs
// Then: The waiter unblocks and observes the outcome
func TestFuture_WaitBlocksUntilFulfilled(t *testing.T) {
	// Arrange
	task := NewTask(func() error { return nil })
	future := task.Future()

	got := make(chan error, 1)
	go func() {
		got <- future.Wait(context.Background())
	}()

	// Act
	task.Run()

	// Assert
	select {
	case err := <-got:
		if err != nil {
			t.Errorf("Wait() = %v, want nil", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Wait() did not return after fulfillment")
	}
}

// TestFuture_FanOut verifies one future serves many observers
// Given: A task whose callable fails, with five concurrent waiters on its future
// When: The task runs
// Then: Every waiter observes the same failure
func TestFuture_FanOut(t *testing.T) {
	// Arrange
	errBoom := errors.New("boom")
	task := NewTask(func() error { return errBoom })
	future := task.Future()

	const waiters = 5
	results := make(chan error, waiters)
	var wg sync.WaitGroup
	for i := 0; i < waiters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- future.Wait(context.Background())
		}()
	}

	// Act
	task.Run()
	wg.Wait()
	close(results)

	// Assert - Same outcome for every waiter
	count := 0
	for err := range results {
		count++
		if !errors.Is(err, errBoom) {
			t.Errorf("Wait() = %v, want %v", err, errBoom)
		}
	}
	if count != waiters {
		t.Errorf("got %d results, want %d", count, waiters)
	}
}

// TestFuture_WaitContextDeadline verifies caller-side timeouts
// Given: A future that is never fulfilled
// When: Wait is called with an expiring context
// Then: Wait returns context.DeadlineExceeded
func TestFuture_WaitContextDeadline(t *testing.T) {
	// Arrange - A task nobody ever runs
	task := NewTask(func() error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// Act
	err := task.Future().Wait(ctx)

	// Assert
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Wait() = %v, want %v", err, context.DeadlineExceeded)
	}
}

// TestFuture_ErrWhilePending verifies non-blocking outcome polling
// Given: A task that fails when run
// When: Err is called before and after Run
// Then: Err returns nil while pending and the failure once fulfilled
func TestFuture_ErrWhilePending(t *testing.T) {
	// Arrange
	errBoom := errors.New("boom")
	task := NewTask(func() error { return errBoom })
	future := task.Future()

	// Assert - Pending reads as nil
	if err := future.Err(); err != nil {
		t.Errorf("Err() while pending = %v, want nil", err)
	}

	// Act
	task.Run()

	// Assert
	if err := future.Err(); !errors.Is(err, errBoom) {
		t.Errorf("Err() after Run = %v, want %v", err, errBoom)
	}
}
