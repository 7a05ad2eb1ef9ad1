// Package tetromino defines the piece geometry, rotation state, and SRS
// kick tables shared by the field, router, and session packages.
package tetromino

import "fmt"

// Field geometry constants. The field is 10 columns wide and 30 rows
// tall; only the bottom 20 rows (y < InnerHeight) count toward
// lock-out detection.
const (
	Width       = 10
	Height      = 30
	InnerHeight = 20
	Size        = Width * Height
)

// Direction is a piece's rotation state. Turning left/right advances
// through these in a fixed cycle; Flip jumps directly across it.
type Direction int

const (
	Up Direction = iota
	Left
	Down
	Right
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Left:
		return "Left"
	case Down:
		return "Down"
	case Right:
		return "Right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// TurnLeft returns the direction reached by rotating one step
// counter-clockwise: Up -> Left -> Down -> Right -> Up.
func (d Direction) TurnLeft() Direction {
	return (d + 1) % 4
}

// TurnRight returns the direction reached by rotating one step
// clockwise: Up -> Right -> Down -> Left -> Up.
func (d Direction) TurnRight() Direction {
	return (d + 3) % 4
}

// Flipped returns the direction reached by a 180-degree rotation.
func (d Direction) Flipped() Direction {
	return (d + 2) % 4
}

// Kind identifies a tetromino type. Values match the wire encoding
// used by the protocol (I=1 .. Z=7); the fumen codec maps cells to its
// own digit ordering instead (see convertCell in internal/fumen).
type Kind int

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case I:
		return "I"
	case J:
		return "J"
	case L:
		return "L"
	case O:
		return "O"
	case S:
		return "S"
	case T:
		return "T"
	case Z:
		return "Z"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// KindFromByte converts a single-character wire/fixture representation
// ('I','J','L','O','S','T','Z') to a Kind. It returns false for any
// other character, including 'N' and 'G' which denote empty and
// garbage cells in field fixtures rather than tetromino kinds.
func KindFromByte(c byte) (Kind, bool) {
	switch c {
	case 'I':
		return I, true
	case 'J':
		return J, true
	case 'L':
		return L, true
	case 'O':
		return O, true
	case 'S':
		return S, true
	case 'T':
		return T, true
	case 'Z':
		return Z, true
	default:
		return None, false
	}
}

// CellValue is the occupant of a single field cell.
type CellValue int

const (
	CellEmpty CellValue = iota
	CellI
	CellJ
	CellL
	CellO
	CellS
	CellT
	CellZ
	CellGarbage
)

// CellValueFromKind converts a placed tetromino kind to the cell value
// it leaves behind when settled. Kind and CellValue share the same
// I..Z ordinal ordering after their respective zero value, so this is
// a direct numeric mapping.
func CellValueFromKind(k Kind) CellValue {
	return CellValue(k)
}

// FieldCellFromByte converts a single fixture character to a
// CellValue: 'N' for empty, 'G' for garbage, or a piece letter.
func FieldCellFromByte(c byte) (CellValue, bool) {
	switch c {
	case 'N':
		return CellEmpty, true
	case 'G':
		return CellGarbage, true
	default:
		if k, ok := KindFromByte(c); ok {
			return CellValueFromKind(k), true
		}
		return CellEmpty, false
	}
}

// RouteAction enumerates the moves the route searcher can chain
// together to reach a goal placement.
type RouteAction int

const (
	ActionMoveLeft RouteAction = iota + 1
	ActionMoveRight
	ActionTurnLeft
	ActionTurnRight
	ActionSoftDrop
)

func (a RouteAction) String() string {
	switch a {
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionTurnLeft:
		return "TurnLeft"
	case ActionTurnRight:
		return "TurnRight"
	case ActionSoftDrop:
		return "SoftDrop"
	default:
		return fmt.Sprintf("RouteAction(%d)", int(a))
	}
}

// Step is a single placement instruction sent to a client: the piece
// kind, its resting direction, and its anchor coordinates.
type Step struct {
	Kind      Kind
	Direction Direction
	X         int8
	Y         int8
}
