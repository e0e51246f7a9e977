package core

import (
	"errors"
	"testing"
)

// TestNewTask_Defaults verifies task construction defaults
// Given: A task created without an explicit priority
// When: Its fields are inspected
// Then: Priority is DefaultPriority and the future exists but is pending
func TestNewTask_Defaults(t *testing.T) {
	// Arrange and Act
	task := NewTask(func() error { return nil })

	// Assert
	if task.Priority() != DefaultPriority {
		t.Errorf("Priority() = %d, want %d", task.Priority(), DefaultPriority)
	}
	if task.Future() == nil {
		t.Fatal("Future() = nil, want a future")
	}
	select {
	case <-task.Future().Done():
		t.Error("future fulfilled before Run")
	default:
	}
}

// TestTask_RunSuccess verifies the success path
// Given: A task whose callable succeeds
// When: Run is called
// Then: The callable runs and the future fulfills with nil
func TestTask_RunSuccess(t *testing.T) {
	// Arrange
	ran := false
	task := NewTask(func() error {
		ran = true
		return nil
	})

	// Act
	task.Run()

	// Assert
	if !ran {
		t.Error("callable did not run")
	}
	select {
	case <-task.Future().Done():
	default:
		t.Fatal("future not fulfilled after Run")
	}
	if err := task.Future().Err(); err != nil {
		t.Errorf("Err() = %v, want nil", err)
	}
}

// TestTask_RunError verifies error capture
// Given: A task whose callable returns an error
// When: Run is called
// Then: The future fulfills with that exact error and Run does not throw
func TestTask_RunError(t *testing.T) {
	// Arrange
	errBoom := errors.New("boom")
	task := NewTask(func() error { return errBoom })

	// Act
	task.Run()

	// Assert
	if err := task.Future().Err(); !errors.Is(err, errBoom) {
		t.Errorf("Err() = %v, want %v", err, errBoom)
	}
}

// TestTask_RunPanic verifies panic containment
// Given: A task whose callable panics
// When: Run is called
// Then: The panic is captured as a *TaskError carrying the value and stack
func TestTask_RunPanic(t *testing.T) {
	// Arrange
	task := NewTask(func() error {
		panic("kaboom")
	})

	// Act - Run must not let the panic escape
	task.Run()

	// Assert
	err := task.Future().Err()
	if err == nil {
		t.Fatal("Err() = nil, want *TaskError")
	}

	var taskErr *TaskError
	if !errors.As(err, &taskErr) {
		t.Fatalf("Err() type = %T, want *TaskError", err)
	}
	if taskErr.Value != "kaboom" {
		t.Errorf("TaskError.Value = %v, want %q", taskErr.Value, "kaboom")
	}
	if len(taskErr.Stack) == 0 {
		t.Error("TaskError.Stack is empty, want panic stack")
	}
	if taskErr.Error() != "task panicked: kaboom" {
		t.Errorf("TaskError.Error() = %q, want %q", taskErr.Error(), "task panicked: kaboom")
	}
}

// TestTask_RunTwicePanics verifies single-execution enforcement
// Given: A task that has already run
// When: Run is called again
// Then: The second call panics
func TestTask_RunTwicePanics(t *testing.T) {
	// Arrange
	task := NewTask(func() error { return nil })
	task.Run()

	// Act and Assert
	defer func() {
		if recover() == nil {
			t.Error("second Run did not panic")
		}
	}()
	task.Run()
}
