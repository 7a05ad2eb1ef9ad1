package fumen

import (
	"fmt"
	"strings"

	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
)

// Decode parses a v115-prefixed fumen string (the leading "v115@" or
// any other version tag up to and including the first '@' is
// skipped, matching the reference decoder's tolerance for other
// version identifiers) into its field and comment.
func Decode(tetfuParameter string) (Content, error) {
	s := tetfuParameter
	if at := strings.IndexByte(s, '@'); at >= 0 {
		s = s[at+1:]
	}

	var dec []int
	for i := 0; i < len(s); i++ {
		if idx := strings.IndexByte(encodeTable, s[i]); idx >= 0 {
			dec = append(dec, idx)
		}
	}

	pos := 0
	next := func() (int, error) {
		if pos >= len(dec) {
			return 0, fmt.Errorf("fumen: invalid tetfu parameter")
		}
		v := dec[pos]
		pos++
		return v, nil
	}
	nextOrZero := func() int {
		if pos >= len(dec) {
			return 0
		}
		v := dec[pos]
		pos++
		return v
	}

	f := field.New()

	for i := 0; i < fieldSizeEx-1; {
		v1, err := next()
		if err != nil {
			return Content{}, err
		}
		v2, err := next()
		if err != nil {
			return Content{}, err
		}

		tmp := v1 + v2*64
		repeatCellCount := tmp % fieldSizeEx
		cellDigit := (tmp/fieldSizeEx)%17 - 8
		cellValue, ok := convertFromCell(cellDigit)
		if !ok {
			return Content{}, fmt.Errorf("fumen: cannot convert cell value %d", cellDigit)
		}

		for j := i; j < repeatCellCount+i+1; j++ {
			x := j % fieldWidth
			y := j / fieldWidth
			y = fieldHeight - y - 1
			f.SetCell(x, y, cellValue)
		}

		if tmp == 8*fieldSizeEx+239 {
			next()
		}

		i += repeatCellCount + 1
	}

	comment := ""

	v1, err := next()
	if err != nil {
		return Content{}, err
	}
	v2, err := next()
	if err != nil {
		return Content{}, err
	}
	v3, err := next()
	if err != nil {
		return Content{}, err
	}

	tmp := v1 + v2*64 + v3*64*64
	existsComment := (tmp/8/4/fieldSizeEx/2/2/2)%2 == 1

	if existsComment {
		v1, err := next()
		if err != nil {
			return Content{}, err
		}
		v2, err := next()
		if err != nil {
			return Content{}, err
		}
		commentLen := v1 + v2*64

		var commentDec strings.Builder
		for i := 0; i < commentLen; i += 4 {
			v1 := nextOrZero()
			v2 := nextOrZero()
			v3 := nextOrZero()
			v4 := nextOrZero()
			v5 := nextOrZero()

			tmp := v1 + v2*64 + v3*64*64 + v4*64*64*64 + v5*64*64*64*64
			commentDec.WriteByte(asciiTable[tmp%96])
			tmp /= 96
			commentDec.WriteByte(asciiTable[tmp%96])
			tmp /= 96
			commentDec.WriteByte(asciiTable[tmp%96])
			tmp /= 96
			commentDec.WriteByte(asciiTable[tmp%96])
		}

		escaped := commentDec.String()
		if len(escaped) > commentLen {
			escaped = escaped[:commentLen]
		}

		decoded, err := jsUnescape(escaped)
		if err != nil {
			return Content{}, err
		}
		comment = decoded
	}

	return Content{Field: f, Comment: comment}, nil
}
