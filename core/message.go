package core

// MessageKind identifies the control messages understood by a worker's
// mailbox loop. The set is open to extension; kinds a handler does not
// know are dispatched as NOP.
type MessageKind uint8

const (
	// MessageNop is a harmless wake-up; handlers treat it as a heartbeat.
	MessageNop MessageKind = iota

	// MessageExit asks the receiving worker (and only that worker) to
	// finish its dispatch loop.
	MessageExit

	// MessageTask tells the receiving worker that work may be pending and
	// it should attempt one pull from its task source.
	MessageTask

	// MessageDump asks the receiving worker to emit a statistics snapshot.
	MessageDump
)

// Message is a tagged control signal delivered point-to-point to exactly
// one worker's mailbox. It carries no payload beyond its kind; the work
// itself travels through the pool's shared queue, not the mailbox.
type Message struct {
	Kind MessageKind
}

// String returns a short name for logging.
func (k MessageKind) String() string {
	switch k {
	case MessageNop:
		return "NOP"
	case MessageExit:
		return "EXIT"
	case MessageTask:
		return "TASK"
	case MessageDump:
		return "DUMP"
	default:
		return "UNKNOWN"
	}
}
