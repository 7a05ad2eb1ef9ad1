// Package fumen implements the v115 "tetfu" field/comment text codec:
// a run-length encoding over the field plus a JS-escaped comment,
// packed into a base64-alphabet string with periodic '?' separators.
package fumen

import (
	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

const (
	fieldHeight  = 23
	fieldWidth   = 10
	fieldSize    = fieldHeight * fieldWidth // 230
	fieldSizeEx  = fieldSize + fieldWidth   // 240, + one virtual empty row
	commentLimit = 4096

	versionPrefix = "v115@"
)

// asciiTable is the 96 printable ASCII characters from space to '~',
// used to index comment bytes for the 4-byte-group sub-encoding.
const asciiTable = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// encodeTable is the base64-alphabet digit set the whole codec is
// expressed in.
const encodeTable = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// convertCell maps a field cell value to its fumen digit, an
// ordering distinct from CellValue's own numbering.
func convertCell(v tetromino.CellValue) int {
	switch v {
	case tetromino.CellEmpty:
		return 0
	case tetromino.CellI:
		return 1
	case tetromino.CellL:
		return 2
	case tetromino.CellZ:
		return 4
	case tetromino.CellT:
		return 5
	case tetromino.CellJ:
		return 6
	case tetromino.CellS:
		return 7
	case tetromino.CellGarbage:
		return 8
	case tetromino.CellO:
		return 3
	default:
		return 0
	}
}

// convertFromCell is convertCell's inverse.
func convertFromCell(v int) (tetromino.CellValue, bool) {
	switch v {
	case 0:
		return tetromino.CellEmpty, true
	case 1:
		return tetromino.CellI, true
	case 2:
		return tetromino.CellL, true
	case 3:
		return tetromino.CellO, true
	case 4:
		return tetromino.CellZ, true
	case 5:
		return tetromino.CellT, true
	case 6:
		return tetromino.CellJ, true
	case 7:
		return tetromino.CellS, true
	case 8:
		return tetromino.CellGarbage, true
	default:
		return tetromino.CellEmpty, false
	}
}

// Content is a decoded or to-be-encoded fumen page: the field and its
// attached comment.
type Content struct {
	Field   *field.Field
	Comment string
}
