package session

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cuboktahedron/tetsimu2-hub/internal/protocol"
)

// State is a per-connection dispatch state.
type State int

const (
	Idle State = iota
	AnalyzerRunning
	TutorRunning
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case AnalyzerRunning:
		return "AnalyzerRunning"
	case TutorRunning:
		return "TutorRunning"
	default:
		return "Unknown"
	}
}

// Sender delivers one outbound text frame; it is satisfied by
// *transport.Conn without this package importing transport directly.
type Sender interface {
	Send(text string) error
}

// Connection is the per-connection message dispatcher: it decodes
// inbound frames, tracks which Processor (if any) owns the
// connection, and routes messages to it per the before_execute
// protocol.
type Connection struct {
	id     string
	out    Sender
	log    zerolog.Logger
	deps   ProcessorDeps

	mu     sync.Mutex
	state  State
	active Processor
}

// ProcessorDeps bundles the collaborators a Connection needs to build
// an AnalyzerProcessor or TutorProcessor on demand, so this package
// does not import config directly.
type ProcessorDeps struct {
	SolverPath    string
	EngineFactory EngineFactory
}

func NewConnection(id string, out Sender, log zerolog.Logger, deps ProcessorDeps) *Connection {
	return &Connection{id: id, out: out, log: log, deps: deps, state: Idle}
}

func (c *Connection) ID() string {
	return c.id
}

func (c *Connection) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// HandleText decodes one inbound frame and dispatches it, matching
// spec.md §4.8's state machine: malformed JSON or an unknown tag
// always produces Unhandled and leaves the state untouched; otherwise
// the active processor's BeforeExecute gates whether Execute runs.
func (c *Connection) HandleText(text string) {
	msg, err := protocol.DecodeTetsimu2([]byte(text))
	if err != nil {
		c.log.Warn().Err(err).Str("conn", c.id).Msg("malformed or unknown message")
		c.sendUnhandled(text)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case Idle:
		c.dispatchFromIdle(msg)
	default:
		c.dispatchToActive(msg)
	}
}

func (c *Connection) dispatchFromIdle(msg protocol.Tetsimu2Message) {
	switch msg.Tag {
	case "AnalyzePc":
		analyzer := NewAnalyzerProcessor(c.out, c.log, c.deps.SolverPath)
		c.active = analyzer
		c.state = AnalyzerRunning

		// The analyzer blocks on a subprocess, so it runs on its own
		// goroutine; the connection returns to Idle once it completes
		// rather than waiting for a further client message.
		go func() {
			analyzer.Execute(msg)
			c.mu.Lock()
			if c.active == analyzer {
				c.state = Idle
				c.active = nil
			}
			c.mu.Unlock()
		}()
	case "InitTutor":
		c.active = NewTutorProcessor(c.out, c.log, c.deps.EngineFactory)
		c.state = TutorRunning
		c.active.Execute(msg)
	default:
		c.sendUnhandledLocked(msg.Tag)
	}
}

func (c *Connection) dispatchToActive(msg protocol.Tetsimu2Message) {
	verdict := c.active.BeforeExecute(msg)
	switch verdict {
	case Allow:
		c.active.Execute(msg)
		// A processor that finished while executing (the tutor after
		// TermTutor) reports Done from its pre-check; release it now
		// rather than on the next inbound message.
		if c.active.BeforeExecute(msg) == Done {
			c.state = Idle
			c.active = nil
		}
	case Deny:
		c.sendLogLocked("Access denied — previous process not done")
	case Halt:
		c.active.Halt()
		c.state = Idle
		c.active = nil
	case Done:
		c.state = Idle
		c.active = nil
	}
}

func (c *Connection) sendUnhandled(text string) {
	out, err := marshalHub(protocol.Wrap("Unhandled", protocol.NewUnhandledMessage(text)))
	if err != nil {
		c.log.Error().Err(err).Msg("failed to marshal Unhandled")
		return
	}
	if err := c.out.Send(out); err != nil {
		c.log.Warn().Err(err).Msg("failed to send Unhandled")
	}
}

func (c *Connection) sendUnhandledLocked(tag string) {
	c.sendUnhandled(fmt.Sprintf("unsupported tag %q in current state %s", tag, c.state))
}

func (c *Connection) sendLogLocked(message string) {
	out, err := marshalHub(protocol.Wrap("Log", protocol.NewLogMessage(message)))
	if err != nil {
		c.log.Error().Err(err).Msg("failed to marshal Log")
		return
	}
	if err := c.out.Send(out); err != nil {
		c.log.Warn().Err(err).Msg("failed to send Log")
	}
}
