package session

import "github.com/cuboktahedron/tetsimu2-hub/internal/protocol"

// BeforeExecuteResult is the pre-check verdict a Processor returns
// before a message is dispatched to Execute.
type BeforeExecuteResult int

const (
	// Allow forwards the message to Execute.
	Allow BeforeExecuteResult = iota
	// Deny rejects the message without halting the processor; the
	// connection replies with a Log message and stays in its current
	// running state.
	Deny
	// Halt stops the processor and returns the connection to Idle,
	// invoking the processor's Halt hook.
	Halt
	// Done indicates the processor already finished on its own (e.g.
	// the tutor loop observed its done flag); the connection returns
	// to Idle without invoking Halt again.
	Done
)

// Processor is a long-running, per-connection worker driven by
// Tetsimu2 messages: the analyzer and the tutor are its two
// implementations. A tagged variant would also fit (per spec.md §9),
// but a small interface keeps the two implementations' state private
// to their own files.
type Processor interface {
	// BeforeExecute inspects an inbound message before it is run,
	// without side effects beyond what is needed to decide the verdict.
	BeforeExecute(msg protocol.Tetsimu2Message) BeforeExecuteResult
	// Execute carries out the message's effect. Only called when
	// BeforeExecute returned Allow.
	Execute(msg protocol.Tetsimu2Message)
	// Halt stops any background work owned by the processor.
	Halt()
}
