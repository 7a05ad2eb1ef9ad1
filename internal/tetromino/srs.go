package tetromino

// XY is a relative offset, (dx, dy), applied to a piece's anchor.
type XY struct {
	X int
	Y int
}

// srssLeft and srssRight are the shared SRS wall-kick tables used by
// every piece except I (O never actually needs a kick, but carries
// the table for uniformity with the source material). Each is indexed
// by fromDirection*4 + candidateIndex, four candidates per direction.
var srssLeft = [16]XY{
	// from Up
	{1, 0}, {1, 1}, {0, -2}, {1, -2},
	// from Left
	{-1, 0}, {-1, -1}, {0, 2}, {-1, 2},
	// from Down
	{-1, 0}, {-1, 1}, {0, -2}, {-1, -2},
	// from Right
	{1, 0}, {1, -1}, {0, 2}, {1, 2},
}

var srssRight = [16]XY{
	// from Up
	{-1, 0}, {-1, 1}, {0, -2}, {-1, -2},
	// from Left
	{-1, 0}, {-1, -1}, {0, 2}, {-1, 2},
	// from Down
	{1, 0}, {1, 1}, {0, -2}, {1, -2},
	// from Right
	{1, 0}, {1, -1}, {0, 2}, {1, 2},
}

// iSrssLeft and iSrssRight are I's distinct kick tables.
var iSrssLeft = [16]XY{
	{-1, 0}, {2, 0}, {-1, 2}, {2, -1},
	{1, 0}, {-2, 0}, {-2, -1}, {1, 2},
	{1, 0}, {-2, 0}, {1, -2}, {-2, 1},
	{2, 0}, {-1, 0}, {2, 1}, {-1, -2},
}

var iSrssRight = [16]XY{
	{-2, 0}, {1, 0}, {-2, -1}, {1, 2},
	{-2, 0}, {1, 0}, {1, -2}, {-2, 1},
	{2, 0}, {-1, 0}, {2, 1}, {-1, -2},
	{-1, 0}, {2, 0}, {-1, 2}, {2, -1},
}

// blocks tables: 4 blocks per direction, indexed by
// direction*4 .. direction*4+3, giving the (dx, dy) offsets from the
// piece anchor that the piece occupies in that orientation.
var blocksI = [16]XY{
	{0, 0}, {-1, 0}, {1, 0}, {2, 0},
	{0, -1}, {0, -2}, {0, 0}, {0, 1},
	{1, -1}, {2, -1}, {0, -1}, {-1, -1},
	{1, 0}, {1, 1}, {1, -1}, {1, -2},
}

var blocksJ = [16]XY{
	{0, 0}, {-1, 0}, {1, 0}, {-1, 1},
	{0, 0}, {0, -1}, {0, 1}, {-1, -1},
	{0, 0}, {1, 0}, {-1, 0}, {1, -1},
	{0, 0}, {0, 1}, {0, -1}, {1, 1},
}

var blocksL = [16]XY{
	{0, 0}, {-1, 0}, {1, 0}, {1, 1},
	{0, 0}, {0, -1}, {0, 1}, {-1, 1},
	{0, 0}, {1, 0}, {-1, 0}, {-1, -1},
	{0, 0}, {0, 1}, {0, -1}, {1, -1},
}

var blocksO = [16]XY{
	{0, 0}, {0, 1}, {1, 1}, {1, 0},
	{1, 0}, {1, 1}, {0, 1}, {0, 0},
	{1, 1}, {0, 1}, {0, 0}, {1, 0},
	{0, 1}, {0, 0}, {1, 0}, {1, 1},
}

var blocksS = [16]XY{
	{0, 0}, {-1, 0}, {0, 1}, {1, 1},
	{0, 0}, {0, -1}, {-1, 0}, {-1, 1},
	{0, 0}, {1, 0}, {0, -1}, {-1, -1},
	{0, 0}, {0, 1}, {1, 0}, {1, -1},
}

var blocksT = [16]XY{
	{0, 0}, {-1, 0}, {1, 0}, {0, 1},
	{0, 0}, {-1, 0}, {0, 1}, {0, -1},
	{0, 0}, {-1, 0}, {1, 0}, {0, -1},
	{0, 0}, {1, 0}, {0, 1}, {0, -1},
}

var blocksZ = [16]XY{
	{0, 0}, {1, 0}, {0, 1}, {-1, 1},
	{0, 0}, {0, 1}, {-1, 0}, {-1, -1},
	{0, 0}, {-1, 0}, {0, -1}, {1, -1},
	{0, 0}, {0, -1}, {1, 0}, {1, 1},
}

func blocksTable(k Kind) [16]XY {
	switch k {
	case I:
		return blocksI
	case J:
		return blocksJ
	case L:
		return blocksL
	case O:
		return blocksO
	case S:
		return blocksS
	case T:
		return blocksT
	case Z:
		return blocksZ
	default:
		return [16]XY{}
	}
}

func kickTable(k Kind, left bool) [16]XY {
	if k == I {
		if left {
			return iSrssLeft
		}
		return iSrssRight
	}
	if left {
		return srssLeft
	}
	return srssRight
}

// Blocks returns the four (dx, dy) offsets a piece of kind k occupies
// while facing d, relative to its anchor.
func Blocks(k Kind, d Direction) [4]XY {
	t := blocksTable(k)
	var out [4]XY
	copy(out[:], t[int(d)*4:int(d)*4+4])
	return out
}

// Kicks returns the four SRS wall-kick candidate offsets tried, in
// order, when turning a piece of kind k away from direction d. left
// selects the counter-clockwise table, used by TurnLeft.
func Kicks(k Kind, d Direction, left bool) [4]XY {
	t := kickTable(k, left)
	var out [4]XY
	copy(out[:], t[int(d)*4:int(d)*4+4])
	return out
}
