package field

import (
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

const (
	spawnX = 4
	spawnY = 19
)

// Conductor drives a single game: the field, the current piece, the
// hold slot, and the generator feeding new pieces. The router, tutor,
// and analyzer do not use it; they work on Field values directly.
type Conductor struct {
	field     *Field
	current   tetromino.Current
	hold      *Hold
	generator Generator
	dead      bool
}

// NewConductor starts a fresh game: an empty field, an empty hold,
// and the first piece drawn from gen and spawned at the standard
// anchor.
func NewConductor(gen Generator) *Conductor {
	c := &Conductor{
		field:     New(),
		hold:      NewHold(),
		generator: gen,
	}
	k, _ := gen.Next()
	c.current = tetromino.New(k, spawnX, spawnY)
	return c
}

// Reset replaces the field, hold, and generator wholesale and spawns
// a fresh piece, as if starting a new game with pre-built state
// (used by tests that need a specific starting field).
func (c *Conductor) Reset(f *Field, h *Hold, gen Generator) {
	c.field = f
	c.hold = h
	c.generator = gen
	c.dead = false
	c.proceedNext()
}

// Field returns the live playfield.
func (c *Conductor) Field() *Field {
	return c.field
}

// Current returns the piece currently in play.
func (c *Conductor) Current() tetromino.Current {
	return c.current
}

// CanHold reports whether Hold may be called on the current piece.
func (c *Conductor) CanHold() bool {
	return c.hold.CanHold()
}

// Holded returns the kind currently in the hold slot, if any.
func (c *Conductor) Holded() (tetromino.Kind, bool) {
	return c.hold.Holded()
}

// IsDead reports whether the game has ended, either because a locked
// piece topped the visible field or because no spawn location was
// free for the next piece.
func (c *Conductor) IsDead() bool {
	return c.dead
}

// SoftDrop moves the current piece down one cell if possible.
func (c *Conductor) SoftDrop() bool {
	next, ok := c.current.SoftDrop(c.field)
	if ok {
		c.current = next
	}
	return ok
}

// MoveLeft moves the current piece left one cell if possible.
func (c *Conductor) MoveLeft() bool {
	next, ok := c.current.MoveLeft(c.field)
	if ok {
		c.current = next
	}
	return ok
}

// MoveRight moves the current piece right one cell if possible.
func (c *Conductor) MoveRight() bool {
	next, ok := c.current.MoveRight(c.field)
	if ok {
		c.current = next
	}
	return ok
}

// TurnLeft rotates the current piece counter-clockwise, with SRS
// kicks, if possible.
func (c *Conductor) TurnLeft() bool {
	next, ok := c.current.TurnLeft(c.field)
	if ok {
		c.current = next
	}
	return ok
}

// TurnRight rotates the current piece clockwise, with SRS kicks, if
// possible.
func (c *Conductor) TurnRight() bool {
	next, ok := c.current.TurnRight(c.field)
	if ok {
		c.current = next
	}
	return ok
}

// HardDrop drops the current piece to the floor, settles it, clears
// any full lines, and spawns the next piece. It sets IsDead if the
// settled piece rests above the visible field, or if no spawn
// location is free for the next piece.
func (c *Conductor) HardDrop() {
	c.current = c.current.DropToBottom(c.field)
	c.field.SettleTetromino(c.current)

	if !c.field.IsInInnerField(c.current) {
		c.dead = true
		return
	}

	c.field.ClearLines()
	if !c.proceedNext() {
		c.dead = true
		return
	}
	c.hold.MakeHoldable()
}

// Hold swaps the current piece into the hold slot. If the slot was
// already holding a piece, the current piece's kind is replaced with
// it in place (position and direction unchanged). If the slot was
// empty, the next piece is spawned instead; a failed respawn there is
// ignored, matching field_conductor.rs, which never inspects
// proceed_next's result or latches dead from this call site (unlike
// HardDrop, which does). It returns false only if holding is not
// currently allowed (ErrHoldTwice).
func (c *Conductor) Hold() bool {
	prev, hadPrev, err := c.hold.Hold(c.current.Kind)
	if err != nil {
		return false
	}

	if hadPrev {
		c.current.Kind = prev
		return true
	}

	c.proceedNext()
	return true
}

// proceedNext spawns the next generated piece at the standard anchor,
// retrying one row higher if the first anchor is blocked. It returns
// false if neither anchor is free, leaving the caller to mark the
// game dead.
//
// It deliberately does not re-arm the hold slot itself: MakeHoldable
// fires only from HardDrop, on the hard-drop-triggered spawn. The
// hold-triggered respawn (Hold, when the slot was empty) reaches this
// same code but must not re-arm holding immediately after it was just
// latched, or a single piece could be held more than once.
func (c *Conductor) proceedNext() bool {
	k, ok := c.generator.Next()
	if !ok {
		return false
	}

	candidate := tetromino.New(k, spawnX, spawnY)
	if !c.field.IsOverlapped(candidate) {
		c.current = candidate
		return true
	}

	candidate.Y++
	if !c.field.IsOverlapped(candidate) {
		c.current = candidate
		return true
	}

	return false
}
