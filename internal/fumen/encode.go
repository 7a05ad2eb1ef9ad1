package fumen

import (
	"strings"

	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// Encode renders content as a v115-prefixed fumen string.
func Encode(content Content) string {
	var enc []int

	lastEncodeValue := encodeForField(content.Field, &enc)

	sameAsPreviousPage := 8*fieldSizeEx + 239
	if lastEncodeValue == sameAsPreviousPage {
		enc = append(enc, 0)
	}

	if content.Comment == "" {
		enc = append(enc, 0, 0, 0)
	} else {
		tmp := 2 * 2 * 2 * fieldSizeEx * 4 * 8
		enc = append(enc, tmp%64)
		tmp /= 64
		enc = append(enc, tmp%64)
		tmp /= 64
		enc = append(enc, tmp%64)

		encodeForComment(content.Comment, &enc)
	}

	var out strings.Builder
	out.WriteString(versionPrefix)
	for i, c := range enc {
		out.WriteByte(encodeTable[c])
		if i%47 == 41 {
			out.WriteByte('?')
		}
	}

	return out.String()
}

func encodeForField(f *field.Field, enc *[]int) int {
	repeatCellCount := 0
	prevCell := convertCell(f.GetCell(0, fieldHeight-1)) + 8

	var tmp int
	for p := 1; p < fieldSizeEx; p++ {
		var cell int
		if p >= fieldSize {
			cell = convertCell(tetromino.CellEmpty) + 8
		} else {
			x := p % fieldWidth
			y := (fieldHeight - 1) - (p / fieldWidth)
			cell = convertCell(f.GetCell(x, y)) + 8
		}

		if cell != prevCell {
			tmp = prevCell*fieldSizeEx + repeatCellCount
			*enc = append(*enc, tmp%64, tmp/64)
			repeatCellCount = 0
		} else if p == fieldSizeEx-1 {
			tmp = prevCell*fieldSizeEx + repeatCellCount + 1
			*enc = append(*enc, tmp%64, tmp/64)
			return tmp
		} else {
			repeatCellCount++
		}

		prevCell = cell
	}

	panic("fumen: encodeForField fell through the loop without returning")
}

func encodeForComment(comment string, enc *[]int) {
	escaped := jsEscape(comment)
	if len(escaped) > commentLimit {
		escaped = escaped[:commentLimit]
	}

	commentLen := len(escaped)
	tmp := commentLen
	*enc = append(*enc, tmp%64)
	tmp /= 64
	*enc = append(*enc, tmp%64)

	at := func(i int) int {
		if i >= len(escaped) {
			return 0
		}
		return strings.IndexByte(asciiTable, escaped[i])
	}

	for i := 0; i < commentLen; i += 4 {
		tmp := at(i) + at(i+1)*96 + at(i+2)*96*96 + at(i+3)*96*96*96
		for j := 0; j < 5; j++ {
			*enc = append(*enc, tmp%64)
			tmp /= 64
		}
	}
}
