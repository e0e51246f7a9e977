package core

import (
	"sync"
	"sync/atomic"
)

const (
	defaultMailboxCap   = 16
	compactMinCap       = 64 // Don't compact if capacity is less than this
	compactShrinkFactor = 4  // Trigger compaction when len < cap/4
)

// HandlerResult tells the dispatch loop whether to keep going.
type HandlerResult int

const (
	// Continue keeps the dispatch loop running.
	Continue HandlerResult = iota

	// Finish returns from Loop, ending the dispatch cycle permanently.
	Finish
)

// Handler receives the messages a mailbox loop dequeues, one method per
// kind, bracketed by the dispatch hooks. OnBeforeMessage runs immediately
// before every dispatch and OnAfterMessage immediately after, regardless
// of kind; workers hang their statistics transitions on these.
//
// Handlers must be total: a panic out of any handler method is a contract
// violation and the loop lets it propagate rather than mask it.
type Handler interface {
	OnBeforeMessage()
	OnAfterMessage()

	// OnNop is a harmless wake/heartbeat.
	OnNop() HandlerResult

	// OnExit initiates shutdown of the owning worker only.
	OnExit() HandlerResult

	// OnTask attempts to claim and run one pending unit of work.
	OnTask() HandlerResult

	// OnDump emits a snapshot of statistics.
	OnDump() HandlerResult
}

// Mailbox is a thread-safe, blocking, point-to-point message channel owned
// by a single worker. Send never blocks the sender: messages land in an
// unbounded FIFO and a buffered wake signal nudges the (possibly sleeping)
// loop. Messages are delivered in send order; nothing is promised across
// different mailboxes.
type Mailbox struct {
	mu     sync.Mutex
	msgs   []Message
	signal chan struct{}
	looped atomic.Bool
}

// NewMailbox creates an empty mailbox.
func NewMailbox() *Mailbox {
	return &Mailbox{
		msgs:   make([]Message, 0, defaultMailboxCap),
		signal: make(chan struct{}, 1),
	}
}

// Send enqueues a message for eventual delivery. It never blocks and is
// safe from any goroutine, including the owning worker's own loop.
func (m *Mailbox) Send(msg Message) {
	m.mu.Lock()
	m.msgs = append(m.msgs, msg)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
		// Wake token already pending; the loop re-checks the queue
		// before blocking, so the message cannot be missed.
	}
}

// Len returns the number of undelivered messages.
func (m *Mailbox) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.msgs)
}

// Loop runs on the owning worker's thread. It blocks until a message is
// available, dequeues exactly one, dispatches it to the handler method for
// its kind (unknown kinds dispatch as NOP), and repeats until a handler
// returns Finish. A finished loop cannot be restarted.
func (m *Mailbox) Loop(h Handler) {
	if !m.looped.CompareAndSwap(false, true) {
		panic("Mailbox: Loop already ran")
	}

	for {
		msg := m.receive()

		h.OnBeforeMessage()

		var result HandlerResult
		switch msg.Kind {
		case MessageExit:
			result = h.OnExit()
		case MessageTask:
			result = h.OnTask()
		case MessageDump:
			result = h.OnDump()
		default:
			result = h.OnNop()
		}

		h.OnAfterMessage()

		if result == Finish {
			return
		}
	}
}

// receive pops the next message, blocking on the wake signal while the
// queue is empty. Spurious wakes (a stale token for an already consumed
// message) simply loop back to another check.
func (m *Mailbox) receive() Message {
	for {
		m.mu.Lock()
		if len(m.msgs) > 0 {
			msg := m.msgs[0]
			m.msgs = m.msgs[1:]
			m.maybeCompactLocked()
			m.mu.Unlock()
			return msg
		}
		m.mu.Unlock()

		<-m.signal
	}
}

// maybeCompactLocked reclaims backing capacity after bursts so a mailbox
// that once held thousands of messages does not pin that memory forever.
func (m *Mailbox) maybeCompactLocked() {
	n := len(m.msgs)
	c := cap(m.msgs)

	if c < compactMinCap {
		return
	}
	if n == 0 {
		m.msgs = make([]Message, 0, defaultMailboxCap)
		return
	}
	if n*compactShrinkFactor >= c {
		return
	}

	newCap := max(max(c/2, defaultMailboxCap), n)

	newSlice := make([]Message, n, newCap)
	copy(newSlice, m.msgs)
	m.msgs = newSlice
}
