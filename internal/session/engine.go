package session

import (
	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// PlacementMove is one placement in a SearchEngine's suggested plan:
// the falling piece's kind, final orientation, and anchor.
type PlacementMove struct {
	Kind      tetromino.Kind
	Direction tetromino.Direction
	X, Y      int
}

// EngineOptions seeds a fresh SearchEngine from a NotifyStatus
// snapshot translated into domain types.
type EngineOptions struct {
	Field   *field.Field
	Nexts   []tetromino.Kind
	Hold    tetromino.Kind
	HasHold bool
	Combo   int
	IsBtb   bool
}

// SearchEngine is the tutor's adapter boundary onto an external
// placement-suggestion engine (spec.md §6). launch/add_next_piece/
// suggest_next_move/poll_next_move map onto EngineFactory/AddNextPiece/
// SuggestNextMove/PollNextMove.
type SearchEngine interface {
	AddNextPiece(k tetromino.Kind)
	SuggestNextMove()
	// PollNextMove returns the engine's current plan, if any is ready.
	PollNextMove() ([]PlacementMove, bool)
}

// EngineFactory launches a new SearchEngine for a board snapshot.
type EngineFactory func(opts EngineOptions) SearchEngine

// NewReferenceEngine returns a deterministic SearchEngine used by this
// hub's own tests and as a default when no smarter adapter is wired
// in: it always proposes hard-dropping the next queued piece straight
// down at its spawn column, using the same Field/Current machinery as
// the route searcher (internal/router) rather than any real
// move-evaluation heuristic.
func NewReferenceEngine(opts EngineOptions) SearchEngine {
	return &referenceEngine{field: opts.Field, nexts: append([]tetromino.Kind{}, opts.Nexts...)}
}

type referenceEngine struct {
	field *field.Field
	nexts []tetromino.Kind
}

func (e *referenceEngine) AddNextPiece(k tetromino.Kind) {
	e.nexts = append(e.nexts, k)
}

func (e *referenceEngine) SuggestNextMove() {}

func (e *referenceEngine) PollNextMove() ([]PlacementMove, bool) {
	if len(e.nexts) == 0 {
		return nil, false
	}

	kind := e.nexts[0]
	spawn := tetromino.New(kind, 4, 19)
	if e.field.IsOverlapped(spawn) {
		return nil, false
	}

	resting := spawn.DropToBottom(e.field)
	return []PlacementMove{{Kind: kind, Direction: resting.Direction, X: resting.X, Y: resting.Y}}, true
}
