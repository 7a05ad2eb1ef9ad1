// Package field implements the playfield, hold slot, next-piece
// generators, and the conductor that ties them together into a single
// game loop.
package field

import (
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// Field is the 10x30 playfield, stored row-major with y=0 at the
// bottom. Cells at y >= tetromino.InnerHeight are the hidden buffer
// rows above the visible play area.
type Field struct {
	cells [tetromino.Size]tetromino.CellValue
}

// New returns an empty field.
func New() *Field {
	return &Field{}
}

func inBounds(x, y int) bool {
	return x >= 0 && x < tetromino.Width && y >= 0 && y < tetromino.Height
}

// SetCell places v at (x, y). Out-of-bounds coordinates are silently
// ignored, matching the reference field's defensive write behavior.
func (f *Field) SetCell(x, y int, v tetromino.CellValue) {
	if !inBounds(x, y) {
		return
	}
	p := y*tetromino.Width + x
	if p < 0 || p >= tetromino.Size {
		return
	}
	f.cells[p] = v
}

// GetCell returns the cell at (x, y). Out-of-bounds coordinates read
// as Garbage, so a piece never appears able to occupy space beyond
// the field.
func (f *Field) GetCell(x, y int) tetromino.CellValue {
	if !inBounds(x, y) {
		return tetromino.CellGarbage
	}
	return f.cells[y*tetromino.Width+x]
}

// IsOverlappedAt reports whether any of the given absolute cells is
// occupied or out of bounds. It implements tetromino.Overlapper.
func (f *Field) IsOverlappedAt(blocks [4][2]int) bool {
	for _, b := range blocks {
		if f.GetCell(b[0], b[1]) != tetromino.CellEmpty {
			return true
		}
	}
	return false
}

// IsOverlapped reports whether c's current cells are occupied.
func (f *Field) IsOverlapped(c tetromino.Current) bool {
	return f.IsOverlappedAt(c.AbsoluteBlocks())
}

// IsInInnerField reports whether every cell c occupies is within the
// visible 20-row play area. A piece that settles above this line has
// topped the field out.
func (f *Field) IsInInnerField(c tetromino.Current) bool {
	for _, b := range c.AbsoluteBlocks() {
		if b[1] >= tetromino.InnerHeight {
			return false
		}
	}
	return true
}

// CanSettleTetromino reports whether c is already resting on
// something: dropping it further would not move it.
func (f *Field) CanSettleTetromino(c tetromino.Current) bool {
	return c.DropToBottom(f) == c
}

// SettleTetromino writes c's occupied cells into the field as the
// corresponding piece's cell value.
func (f *Field) SettleTetromino(c tetromino.Current) {
	v := tetromino.CellValueFromKind(c.Kind)
	for _, b := range c.AbsoluteBlocks() {
		f.SetCell(b[0], b[1], v)
	}
}

// ClearLines removes every full row, compacts the rows above down to
// fill the gap, and returns the number of rows cleared.
func (f *Field) ClearLines() int {
	var after [tetromino.Size]tetromino.CellValue
	afterY := 0
	cleared := 0

	for y := 0; y < tetromino.Height; y++ {
		full := true
		for x := 0; x < tetromino.Width; x++ {
			if f.cells[y*tetromino.Width+x] == tetromino.CellEmpty {
				full = false
				break
			}
		}

		if full {
			cleared++
			continue
		}

		copy(after[afterY*tetromino.Width:afterY*tetromino.Width+tetromino.Width],
			f.cells[y*tetromino.Width:y*tetromino.Width+tetromino.Width])
		afterY++
	}

	f.cells = after
	return cleared
}

// Clone returns an independent copy of f.
func (f *Field) Clone() *Field {
	clone := *f
	return &clone
}
