package session

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	channerics "github.com/niceyeti/channerics/channels"
	"github.com/rs/zerolog"

	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/protocol"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

const (
	tutorTickInterval = 100 * time.Millisecond
	tutorResendGate   = 1000 * time.Millisecond
)

// tutorStatus holds the mutable state the tutor loop reads and the
// NotifyStatus handler writes. It is guarded by its own mutex,
// acquired before the engine mutex (status, engine) to avoid deadlock
// per spec.md §5.
type tutorStatus struct {
	mu           sync.Mutex
	statusID     string
	prevSteps    []protocol.Step
	lastSentTime time.Time
}

// TutorProcessor is the InitTutor/NotifyStatus/TermTutor processor: it
// owns a SearchEngine handle for its lifetime and runs a 100ms poll
// loop translating the engine's suggestions into Steps messages.
type TutorProcessor struct {
	out     Sender
	log     zerolog.Logger
	factory EngineFactory

	status tutorStatus
	isDone atomic.Bool

	engineMu sync.Mutex
	engine   SearchEngine

	cancel context.CancelFunc
}

func NewTutorProcessor(out Sender, log zerolog.Logger, factory EngineFactory) *TutorProcessor {
	if factory == nil {
		factory = NewReferenceEngine
	}
	return &TutorProcessor{
		out:     out,
		log:     log,
		factory: factory,
		status:  tutorStatus{lastSentTime: time.Now()},
		engine:  factory(EngineOptions{Field: field.New()}),
	}
}

func (p *TutorProcessor) BeforeExecute(msg protocol.Tetsimu2Message) BeforeExecuteResult {
	if p.isDone.Load() {
		return Done
	}

	switch msg.Tag {
	case "InitTutor", "TermTutor", "NotifyStatus":
		return Allow
	default:
		return Deny
	}
}

func (p *TutorProcessor) Execute(msg protocol.Tetsimu2Message) {
	switch msg.Tag {
	case "InitTutor":
		p.initialize(msg.InitTutor)
	case "TermTutor":
		p.terminate(msg.TermTutor)
	case "NotifyStatus":
		p.updateStatus(msg.NotifyStatus)
	}
}

func (p *TutorProcessor) Halt() {
	p.log.Info().Msg("tutor halted")
	p.isDone.Store(true)
	if p.cancel != nil {
		p.cancel()
	}
}

func (p *TutorProcessor) initialize(req *protocol.InitTutorMessageReq) {
	p.log.Info().Msg("tutor initializing")

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.mainLoop(ctx)

	p.reply(protocol.Wrap("InitTutor", protocol.NewInitTutorMessageRes(req.Header.MessageId)))
}

func (p *TutorProcessor) terminate(req *protocol.TermTutorMessageReq) {
	p.log.Info().Msg("tutor terminating")
	p.isDone.Store(true)
	if p.cancel != nil {
		p.cancel()
	}
	p.reply(protocol.Wrap("TermTutor", protocol.NewTermTutorMessageRes(req.Header.MessageId)))
}

// updateStatus replaces the engine wholesale whenever a status with
// can_hold true arrives; statuses with can_hold false are ignored
// because the adapter boundary does not model hold-only moves.
func (p *TutorProcessor) updateStatus(req *protocol.NotifyStatusMessageReq) {
	p.status.mu.Lock()
	p.status.statusID = req.Header.MessageId
	p.status.mu.Unlock()

	if !req.Body.CanHold {
		return
	}

	p.status.mu.Lock()
	p.status.prevSteps = nil
	p.status.mu.Unlock()

	f := field.New()
	for i, v := range req.Body.Field {
		if v > uint8(tetromino.CellGarbage) {
			continue
		}
		x := i % tetromino.Width
		y := i / tetromino.Width
		f.SetCell(x, y, tetromino.CellValue(v))
	}

	var nexts []tetromino.Kind
	for _, c := range req.Body.Nexts {
		if k, ok := tetromino.KindFromByte(byte(c)); ok {
			nexts = append(nexts, k)
		}
	}

	hold, hasHold := tetromino.None, false
	if req.Body.HoldType >= uint8(tetromino.I) && req.Body.HoldType <= uint8(tetromino.Z) {
		hold, hasHold = tetromino.Kind(req.Body.HoldType), true
	}

	opts := EngineOptions{
		Field:   f,
		Nexts:   nexts,
		Hold:    hold,
		HasHold: hasHold,
		Combo:   int(req.Body.Ren) + 1,
		IsBtb:   req.Body.IsBtb,
	}

	engine := p.factory(opts)
	for _, n := range nexts {
		engine.AddNextPiece(n)
	}
	engine.SuggestNextMove()

	p.engineMu.Lock()
	p.engine = engine
	p.engineMu.Unlock()
}

func (p *TutorProcessor) mainLoop(ctx context.Context) {
	p.log.Info().Msg("tutor loop started")

	ticker := channerics.NewTicker(ctx.Done(), tutorTickInterval)
	for {
		select {
		case <-ctx.Done():
			p.isDone.Store(true)
			return
		case <-ticker:
			if p.isDone.Load() {
				return
			}
			p.tick()
		}
	}
}

func (p *TutorProcessor) tick() {
	p.status.mu.Lock()
	defer p.status.mu.Unlock()

	requestMessageID := p.status.statusID

	p.engineMu.Lock()
	engine := p.engine
	p.engineMu.Unlock()

	engine.SuggestNextMove()
	plan, ok := engine.PollNextMove()
	if !ok {
		return
	}

	steps := planToSteps(plan)

	if len(steps) == 0 {
		p.status.prevSteps = steps
		return
	}

	if len(p.status.prevSteps) == 0 || steps[0] != p.status.prevSteps[0] {
		p.status.prevSteps = steps
		return
	}

	if stepsEqual(p.status.prevSteps, steps) && time.Since(p.status.lastSentTime) < tutorResendGate {
		return
	}

	p.status.prevSteps = steps
	p.reply(protocol.Wrap("Steps", protocol.NewStepsMessage(requestMessageID, steps)))
	p.status.lastSentTime = time.Now()
}

// planToSteps translates placements into wire Steps, applying the
// I-piece anchor convention shift from the engine's coordinate system
// to the simulator's (spec.md §4.9).
func planToSteps(plan []PlacementMove) []protocol.Step {
	steps := make([]protocol.Step, 0, len(plan))
	for _, m := range plan {
		x, y := m.X, m.Y
		if m.Kind == tetromino.I {
			switch m.Direction {
			case tetromino.Left:
				y++
			case tetromino.Down:
				y--
				x++
			case tetromino.Right:
				x--
			}
		}

		steps = append(steps, protocol.Step{
			Type: uint8(m.Kind),
			Dir:  uint8(m.Direction),
			X:    int8(x),
			Y:    int8(y),
		})
	}
	return steps
}

func stepsEqual(a, b []protocol.Step) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (p *TutorProcessor) reply(msg protocol.HubMessage) {
	out, err := marshalHub(msg)
	if err != nil {
		p.log.Error().Err(err).Msg("failed to marshal tutor reply")
		return
	}
	if err := p.out.Send(out); err != nil {
		p.log.Warn().Err(err).Msg("failed to send tutor reply")
	}
}
