package core

import (
	"sync"
	"testing"
	"time"
)

// recordingHandler drives Loop from tests, recording every hook and
// dispatch in order. EXIT finishes the loop, everything else continues.
type recordingHandler struct {
	mu     sync.Mutex
	events []string
}

func (h *recordingHandler) record(event string) {
	h.mu.Lock()
	h.events = append(h.events, event)
	h.mu.Unlock()
}

func (h *recordingHandler) snapshot() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.events))
	copy(out, h.events)
	return out
}

func (h *recordingHandler) OnBeforeMessage() { h.record("before") }
func (h *recordingHandler) OnAfterMessage()  { h.record("after") }

func (h *recordingHandler) OnNop() HandlerResult {
	h.record("nop")
	return Continue
}

func (h *recordingHandler) OnExit() HandlerResult {
	h.record("exit")
	return Finish
}

func (h *recordingHandler) OnTask() HandlerResult {
	h.record("task")
	return Continue
}

func (h *recordingHandler) OnDump() HandlerResult {
	h.record("dump")
	return Continue
}

var _ Handler = (*recordingHandler)(nil)

// TestMailbox_FIFODelivery verifies in-order dispatch with bracketing hooks
// Given: A mailbox preloaded with TASK, NOP, DUMP, EXIT
// When: Loop runs
// Then: Messages dispatch in send order, each bracketed by before/after hooks
func TestMailbox_FIFODelivery(t *testing.T) {
	// Arrange
	mb := NewMailbox()
	h := &recordingHandler{}

	mb.Send(Message{Kind: MessageTask})
	mb.Send(Message{Kind: MessageNop})
	mb.Send(Message{Kind: MessageDump})
	mb.Send(Message{Kind: MessageExit})

	// Act - EXIT makes Loop return
	mb.Loop(h)

	// Assert
	want := []string{
		"before", "task", "after",
		"before", "nop", "after",
		"before", "dump", "after",
		"before", "exit", "after",
	}
	got := h.snapshot()
	if len(got) != len(want) {
		t.Fatalf("got %d events %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestMailbox_SendNeverBlocks verifies unbounded buffering
// Given: A mailbox with no loop draining it
// When: 1000 messages are sent
// Then: Every Send returns immediately and all messages are eventually delivered
func TestMailbox_SendNeverBlocks(t *testing.T) {
	// Arrange
	mb := NewMailbox()

	// Act - Nothing is draining; sends must not block
	const burst = 1000
	for i := 0; i < burst; i++ {
		mb.Send(Message{Kind: MessageNop})
	}

	// Assert
	if mb.Len() != burst {
		t.Errorf("Len() = %d, want %d", mb.Len(), burst)
	}

	// Act - Drain everything
	mb.Send(Message{Kind: MessageExit})
	h := &recordingHandler{}
	mb.Loop(h)

	// Assert - burst NOPs plus the EXIT, each with 2 hook events
	if got := len(h.snapshot()); got != (burst+1)*3 {
		t.Errorf("got %d events, want %d", got, (burst+1)*3)
	}
	if mb.Len() != 0 {
		t.Errorf("Len() after drain = %d, want 0", mb.Len())
	}
}

// TestMailbox_BlocksWhenEmpty verifies the loop sleeps until a send arrives
// Given: A loop running over an empty mailbox
// When: A message is sent after a delay
// Then: Nothing dispatches before the send and the message dispatches after
func TestMailbox_BlocksWhenEmpty(t *testing.T) {
	// Arrange
	mb := NewMailbox()
	h := &recordingHandler{}

	done := make(chan struct{})
	go func() {
		defer close(done)
		mb.Loop(h)
	}()

	// Assert - Loop is parked, no dispatches
	time.Sleep(50 * time.Millisecond)
	if got := h.snapshot(); len(got) != 0 {
		t.Errorf("events before any send = %v, want none", got)
	}

	// Act
	mb.Send(Message{Kind: MessageNop})
	mb.Send(Message{Kind: MessageExit})

	// Assert - Loop wakes, drains, and finishes
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Loop did not finish after EXIT")
	}
	if got := h.snapshot(); len(got) != 6 {
		t.Errorf("got %d events %v, want 6", len(got), got)
	}
}

// TestMailbox_UnknownKindDispatchesAsNop verifies forward compatibility
// Given: A message with an unrecognized kind
// When: Loop dispatches it
// Then: It is handled as a NOP
func TestMailbox_UnknownKindDispatchesAsNop(t *testing.T) {
	// Arrange
	mb := NewMailbox()
	h := &recordingHandler{}

	mb.Send(Message{Kind: MessageKind(99)})
	mb.Send(Message{Kind: MessageExit})

	// Act
	mb.Loop(h)

	// Assert
	got := h.snapshot()
	if len(got) != 6 || got[1] != "nop" {
		t.Errorf("events = %v, want unknown kind dispatched as nop", got)
	}
}

// TestMailbox_NoDispatchAfterFinish verifies EXIT is a hard stop
// Given: A mailbox with a message queued behind EXIT
// When: Loop finishes on the EXIT
// Then: The trailing message is never dispatched and stays queued
func TestMailbox_NoDispatchAfterFinish(t *testing.T) {
	// Arrange
	mb := NewMailbox()
	h := &recordingHandler{}

	mb.Send(Message{Kind: MessageExit})
	mb.Send(Message{Kind: MessageDump})

	// Act
	mb.Loop(h)

	// Assert - Only the EXIT dispatched
	got := h.snapshot()
	if len(got) != 3 || got[1] != "exit" {
		t.Errorf("events = %v, want only the exit dispatch", got)
	}
	if mb.Len() != 1 {
		t.Errorf("Len() after finish = %d, want 1 undelivered message", mb.Len())
	}
}

// TestMailbox_LoopTwicePanics verifies loops cannot restart
// Given: A mailbox whose loop has finished
// When: Loop is called again
// Then: The call panics
func TestMailbox_LoopTwicePanics(t *testing.T) {
	// Arrange
	mb := NewMailbox()
	mb.Send(Message{Kind: MessageExit})
	mb.Loop(&recordingHandler{})

	// Act and Assert
	defer func() {
		if recover() == nil {
			t.Error("second Loop did not panic")
		}
	}()
	mb.Loop(&recordingHandler{})
}

// TestMailbox_CompactsAfterBurst verifies backing memory is reclaimed
// Given: A mailbox whose backing slice is mostly slack after a burst
// When: The next message is received
// Then: The backing slice is reallocated at half capacity
func TestMailbox_CompactsAfterBurst(t *testing.T) {
	// Arrange - Remnant of a burst: 10 messages on a 1024-slot backing
	mb := NewMailbox()
	mb.mu.Lock()
	mb.msgs = make([]Message, 10, 1024)
	mb.mu.Unlock()

	// Act
	mb.receive()

	// Assert
	mb.mu.Lock()
	n, c := len(mb.msgs), cap(mb.msgs)
	mb.mu.Unlock()
	if n != 9 {
		t.Errorf("len after receive = %d, want 9", n)
	}
	// Popping slices the backing to cap 1023; compaction halves that.
	if c != 511 {
		t.Errorf("cap after compaction = %d, want 511", c)
	}
}

// TestMailbox_ResetsCapacityWhenDrained verifies the empty-queue reset
// Given: A mailbox holding one message on an oversized backing slice
// When: That last message is received
// Then: The backing slice returns to its default capacity
func TestMailbox_ResetsCapacityWhenDrained(t *testing.T) {
	// Arrange
	mb := NewMailbox()
	mb.mu.Lock()
	mb.msgs = make([]Message, 1, 128)
	mb.mu.Unlock()

	// Act
	mb.receive()

	// Assert
	mb.mu.Lock()
	n, c := len(mb.msgs), cap(mb.msgs)
	mb.mu.Unlock()
	if n != 0 {
		t.Errorf("len after receive = %d, want 0", n)
	}
	if c != defaultMailboxCap {
		t.Errorf("cap after drain = %d, want %d", c, defaultMailboxCap)
	}
}
