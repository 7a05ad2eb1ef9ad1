package tetromino

import "sort"

// Overlapper reports whether a set of absolute field cells is already
// occupied or out of bounds. Field implements this; current.go only
// depends on the interface so the tetromino package stays independent
// of field's storage layout.
type Overlapper interface {
	IsOverlappedAt(blocks [4][2]int) bool
}

// Current is a piece in play: its kind, facing, and anchor position.
// X and Y are the anchor's field coordinates; Blocks(), applied to the
// anchor, gives the four absolute cells the piece occupies.
type Current struct {
	Kind      Kind
	Direction Direction
	X         int
	Y         int
}

// New places a piece of kind k at the standard spawn anchor, facing
// Up.
func New(k Kind, x, y int) Current {
	return Current{Kind: k, Direction: Up, X: x, Y: y}
}

// AbsoluteBlocks returns the four field cells the piece currently
// occupies.
func (c Current) AbsoluteBlocks() [4][2]int {
	offsets := Blocks(c.Kind, c.Direction)
	var out [4][2]int
	for i, o := range offsets {
		out[i] = [2]int{c.X + o.X, c.Y + o.Y}
	}
	return out
}

func (c Current) isOverlapped(f Overlapper) bool {
	return f.IsOverlappedAt(c.AbsoluteBlocks())
}

// DropToBottom returns the piece moved straight down until one more
// step down would overlap.
func (c Current) DropToBottom(f Overlapper) Current {
	cur := c
	for {
		next := cur
		next.Y--
		if next.isOverlapped(f) {
			return cur
		}
		cur = next
	}
}

// SoftDrop moves the piece down one cell. ok is false, and the piece
// unchanged, if that cell is occupied.
func (c Current) SoftDrop(f Overlapper) (Current, bool) {
	next := c
	next.Y--
	if next.isOverlapped(f) {
		return c, false
	}
	return next, true
}

// MoveLeft moves the piece one cell in the negative-x direction.
func (c Current) MoveLeft(f Overlapper) (Current, bool) {
	next := c
	next.X--
	if next.isOverlapped(f) {
		return c, false
	}
	return next, true
}

// MoveRight moves the piece one cell in the positive-x direction.
func (c Current) MoveRight(f Overlapper) (Current, bool) {
	next := c
	next.X++
	if next.isOverlapped(f) {
		return c, false
	}
	return next, true
}

// TurnLeft rotates the piece counter-clockwise, trying the SRS kick
// candidates in order when the naive rotation overlaps. ok is false,
// and the piece unchanged, if no candidate clears.
func (c Current) TurnLeft(f Overlapper) (Current, bool) {
	return c.turn(f, c.Direction.TurnLeft(), true)
}

// TurnRight rotates the piece clockwise with the same SRS kick
// fallback as TurnLeft.
func (c Current) TurnRight(f Overlapper) (Current, bool) {
	return c.turn(f, c.Direction.TurnRight(), false)
}

func (c Current) turn(f Overlapper, to Direction, left bool) (Current, bool) {
	naive := c
	naive.Direction = to
	if !naive.isOverlapped(f) {
		return naive, true
	}

	for _, k := range Kicks(c.Kind, c.Direction, left) {
		candidate := naive
		candidate.X += k.X
		candidate.Y += k.Y
		if !candidate.isOverlapped(f) {
			return candidate, true
		}
	}

	return c, false
}

// Flip performs a 180-degree rotation in place. J, L, and T pieces
// cannot flip and return ok == false unchanged. O's flip is a no-op
// (ok == true). The other pieces (I, S, Z) take the opposite direction
// and re-anchor so that they occupy exactly the same cells as before
// the flip.
func (c Current) Flip() (Current, bool) {
	switch c.Kind {
	case J, L, T:
		return c, false
	case O:
		return c, true
	}

	rotated := c
	rotated.Direction = c.Direction.Flipped()

	before := sortedBlocks(c.AbsoluteBlocks())
	after := sortedBlocks(rotated.AbsoluteBlocks())

	dx := before[0][0] - after[0][0]
	dy := before[0][1] - after[0][1]
	rotated.X += dx
	rotated.Y += dy

	return rotated, true
}

func sortedBlocks(blocks [4][2]int) [4][2]int {
	out := blocks
	sort.Slice(out[:], func(i, j int) bool {
		if out[i][0] != out[j][0] {
			return out[i][0] < out[j][0]
		}
		return out[i][1] < out[j][1]
	})
	return out
}
