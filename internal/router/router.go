// Package router implements the BFS search that finds a chain of
// moves and turns connecting a piece's current placement to a target
// placement, for client-side route replay.
package router

import (
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// Overlapper is the subset of field.Field the searcher needs.
type Overlapper = tetromino.Overlapper

// Searcher finds move/turn sequences over a fixed field.
type Searcher struct {
	Field Overlapper
}

// New returns a Searcher bound to field.
func New(field Overlapper) *Searcher {
	return &Searcher{Field: field}
}

type stackItem struct {
	start   tetromino.Current
	actions []tetromino.RouteAction
}

// SearchRoute performs a breadth-first search over reachable
// placements, starting from start, trying a hard drop to goal at
// every node before expanding turns and moves. It returns nil if no
// route reaches goal. At each node, candidate moves are tried in a
// fixed order — TurnLeft, TurnRight, MoveLeft, MoveRight, SoftDrop —
// after the hard-drop check, matching the reference search order.
func (s *Searcher) SearchRoute(start, goal tetromino.Current) []tetromino.RouteAction {
	queue := []stackItem{{start: start}}
	searched := map[int]bool{}

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		if dropped := item.start.DropToBottom(s.Field); dropped == goal {
			return cloneActions(item.actions)
		}

		type op struct {
			apply  func(tetromino.Current) (tetromino.Current, bool)
			action tetromino.RouteAction
		}
		ops := []op{
			{func(c tetromino.Current) (tetromino.Current, bool) { return c.TurnLeft(s.Field) }, tetromino.ActionTurnLeft},
			{func(c tetromino.Current) (tetromino.Current, bool) { return c.TurnRight(s.Field) }, tetromino.ActionTurnRight},
			{func(c tetromino.Current) (tetromino.Current, bool) { return c.MoveLeft(s.Field) }, tetromino.ActionMoveLeft},
			{func(c tetromino.Current) (tetromino.Current, bool) { return c.MoveRight(s.Field) }, tetromino.ActionMoveRight},
			{func(c tetromino.Current) (tetromino.Current, bool) { return c.SoftDrop(s.Field) }, tetromino.ActionSoftDrop},
		}

		for _, o := range ops {
			next, ok := o.apply(item.start)
			if !ok {
				continue
			}

			actions := append(cloneActions(item.actions), o.action)

			if next == goal {
				return actions
			}

			key := searchKey(next)
			if searched[key] {
				continue
			}

			queue = append(queue, stackItem{start: next, actions: actions})
			searched[key] = true
		}
	}

	return nil
}

func cloneActions(a []tetromino.RouteAction) []tetromino.RouteAction {
	out := make([]tetromino.RouteAction, len(a))
	copy(out, a)
	return out
}

// searchKey compresses a placement into a single integer for the
// visited-set, matching the reference encoding
// ((y*31+x+1)<<5) | (direction<<3) | kind.
func searchKey(c tetromino.Current) int {
	value := c.Y*(tetromino.Height+1) + c.X + 1
	value <<= 2
	value += int(c.Direction)
	value <<= 3
	value += int(c.Kind)
	return value
}
