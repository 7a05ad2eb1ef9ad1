package field

import (
	"errors"

	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// ErrHoldTwice is returned when Hold is called on a piece without an
// intervening MakeHoldable (i.e. without the piece having been
// settled since the last hold).
var ErrHoldTwice = errors.New("held twice without an intervening piece lock")

// Hold is the one-piece swap slot. A piece may only be swapped into
// or out of hold once per spawn; MakeHoldable re-arms it.
type Hold struct {
	holded  tetromino.Kind
	has     bool
	canHold bool
}

// NewHold returns an empty, immediately usable hold slot.
func NewHold() *Hold {
	return &Hold{canHold: true}
}

// CanHold reports whether Hold may be called right now.
func (h *Hold) CanHold() bool {
	return h.canHold
}

// Holded returns the currently held kind, if any.
func (h *Hold) Holded() (tetromino.Kind, bool) {
	return h.holded, h.has
}

// MakeHoldable re-arms the slot after a piece has locked.
func (h *Hold) MakeHoldable() {
	h.canHold = true
}

// Hold swaps k into the slot, returning the previously held kind (if
// any). It returns ErrHoldTwice, without touching the slot, if
// MakeHoldable hasn't been called since the last successful Hold.
func (h *Hold) Hold(k tetromino.Kind) (tetromino.Kind, bool, error) {
	if !h.canHold {
		return tetromino.None, false, ErrHoldTwice
	}

	h.canHold = false

	if h.has {
		prev := h.holded
		h.holded = k
		return prev, true, nil
	}

	h.holded = k
	h.has = true
	return tetromino.None, false, nil
}
