package tetromino_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

// testField is a minimal tetromino.Overlapper double: cells outside
// [0,Width)x[0,Height) or present in occupied are overlapped.
type testField struct {
	occupied map[[2]int]bool
}

func newTestField(occupiedCells ...[2]int) *testField {
	f := &testField{occupied: map[[2]int]bool{}}
	for _, c := range occupiedCells {
		f.occupied[c] = true
	}
	return f
}

func (f *testField) IsOverlappedAt(blocks [4][2]int) bool {
	for _, b := range blocks {
		if b[0] < 0 || b[0] >= tetromino.Width || b[1] < 0 {
			return true
		}
		if f.occupied[b] {
			return true
		}
	}
	return false
}

func TestDropToBottom(t *testing.T) {
	Convey("Given an O piece above an empty field", t, func() {
		f := newTestField()
		c := tetromino.New(tetromino.O, 4, 10)

		Convey("DropToBottom lands it on the floor", func() {
			dropped := c.DropToBottom(f)
			So(dropped.Y, ShouldEqual, 0)
		})
	})
}

func TestSoftDropMoveLeftMoveRight(t *testing.T) {
	Convey("Given an O piece on an empty field", t, func() {
		f := newTestField()
		c := tetromino.New(tetromino.O, 4, 5)

		Convey("SoftDrop moves it down one cell", func() {
			next, ok := c.SoftDrop(f)
			So(ok, ShouldBeTrue)
			So(next.Y, ShouldEqual, 4)
		})

		Convey("MoveLeft moves it left one cell", func() {
			next, ok := c.MoveLeft(f)
			So(ok, ShouldBeTrue)
			So(next.X, ShouldEqual, 3)
		})

		Convey("MoveRight moves it right one cell", func() {
			next, ok := c.MoveRight(f)
			So(ok, ShouldBeTrue)
			So(next.X, ShouldEqual, 5)
		})

		Convey("MoveLeft fails at the left wall", func() {
			left := c
			left.X = 0
			_, ok := left.MoveLeft(f)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestTurnLeftCycle(t *testing.T) {
	Convey("Given a T piece on an empty field far from any wall", t, func() {
		f := newTestField()
		c := tetromino.New(tetromino.T, 4, 10)

		Convey("Four successive TurnLeft calls cycle Up -> Left -> Down -> Right -> Up", func() {
			c1, ok1 := c.TurnLeft(f)
			So(ok1, ShouldBeTrue)
			So(c1.Direction, ShouldEqual, tetromino.Left)

			c2, ok2 := c1.TurnLeft(f)
			So(ok2, ShouldBeTrue)
			So(c2.Direction, ShouldEqual, tetromino.Down)

			c3, ok3 := c2.TurnLeft(f)
			So(ok3, ShouldBeTrue)
			So(c3.Direction, ShouldEqual, tetromino.Right)

			c4, ok4 := c3.TurnLeft(f)
			So(ok4, ShouldBeTrue)
			So(c4.Direction, ShouldEqual, tetromino.Up)
		})
	})
}

func TestTurnRightCycle(t *testing.T) {
	Convey("Given a T piece on an empty field far from any wall", t, func() {
		f := newTestField()
		c := tetromino.New(tetromino.T, 4, 10)

		Convey("Four successive TurnRight calls cycle Up -> Right -> Down -> Left -> Up", func() {
			c1, _ := c.TurnRight(f)
			So(c1.Direction, ShouldEqual, tetromino.Right)

			c2, _ := c1.TurnRight(f)
			So(c2.Direction, ShouldEqual, tetromino.Down)

			c3, _ := c2.TurnRight(f)
			So(c3.Direction, ShouldEqual, tetromino.Left)

			c4, _ := c3.TurnRight(f)
			So(c4.Direction, ShouldEqual, tetromino.Up)
		})
	})
}

func TestTurnLeftWithSrsNotI(t *testing.T) {
	Convey("Given a T piece at (7,3) facing Up with (7,2) and (8,4) occupied", t, func() {
		f := newTestField([2]int{7, 2}, [2]int{8, 4})
		c := tetromino.Current{Kind: tetromino.T, Direction: tetromino.Up, X: 7, Y: 3}

		Convey("TurnLeft kicks to (8,1) facing Left", func() {
			next, ok := c.TurnLeft(f)
			So(ok, ShouldBeTrue)
			So(next.Direction, ShouldEqual, tetromino.Left)
			So(next.X, ShouldEqual, 8)
			So(next.Y, ShouldEqual, 1)
		})
	})
}

func TestTurnLeftWithSrsI(t *testing.T) {
	Convey("Given an I piece at (7,4) facing Up with (6,5), (7,5) and (9,5) occupied", t, func() {
		f := newTestField([2]int{6, 5}, [2]int{7, 5}, [2]int{9, 5})
		c := tetromino.Current{Kind: tetromino.I, Direction: tetromino.Up, X: 7, Y: 4}

		Convey("TurnLeft kicks to (9,3) facing Left", func() {
			next, ok := c.TurnLeft(f)
			So(ok, ShouldBeTrue)
			So(next.Direction, ShouldEqual, tetromino.Left)
			So(next.X, ShouldEqual, 9)
			So(next.Y, ShouldEqual, 3)
		})
	})
}

func TestTurnRightWithSrsNotI(t *testing.T) {
	Convey("Given a T piece at (2,3) facing Up with (2,2) and (1,4) occupied", t, func() {
		f := newTestField([2]int{2, 2}, [2]int{1, 4})
		c := tetromino.Current{Kind: tetromino.T, Direction: tetromino.Up, X: 2, Y: 3}

		Convey("TurnRight kicks to (1,1) facing Right", func() {
			next, ok := c.TurnRight(f)
			So(ok, ShouldBeTrue)
			So(next.Direction, ShouldEqual, tetromino.Right)
			So(next.X, ShouldEqual, 1)
			So(next.Y, ShouldEqual, 1)
		})
	})
}

func TestTurnRightWithSrsI(t *testing.T) {
	Convey("Given an I piece at (1,4) facing Up with (0,3), (2,3) and (3,3) occupied", t, func() {
		f := newTestField([2]int{0, 3}, [2]int{2, 3}, [2]int{3, 3})
		c := tetromino.Current{Kind: tetromino.I, Direction: tetromino.Up, X: 1, Y: 4}

		Convey("TurnRight kicks to (2,6) facing Right", func() {
			next, ok := c.TurnRight(f)
			So(ok, ShouldBeTrue)
			So(next.Direction, ShouldEqual, tetromino.Right)
			So(next.X, ShouldEqual, 2)
			So(next.Y, ShouldEqual, 6)
		})
	})
}

func TestFlipJLOT(t *testing.T) {
	cases := []struct {
		kind tetromino.Kind
		ok   bool
	}{
		{tetromino.J, false},
		{tetromino.L, false},
		{tetromino.O, true},
		{tetromino.T, false},
	}

	Convey("Given a piece on an empty field", t, func() {
		f := newTestField()

		for _, tc := range cases {
			tc := tc
			Convey("Flipping a "+tc.kind.String()+" piece", func() {
				c := tetromino.New(tc.kind, 4, 10)
				_, ok := c.Flip()
				So(ok, ShouldEqual, tc.ok)
			})
		}
	})
}

func occupiedSet(blocks [4][2]int) map[[2]int]bool {
	m := map[[2]int]bool{}
	for _, b := range blocks {
		m[b] = true
	}
	return m
}

func sameOccupancy(a, b [4][2]int) bool {
	as := occupiedSet(a)
	bs := occupiedSet(b)
	if len(as) != len(bs) {
		return false
	}
	for k := range as {
		if !bs[k] {
			return false
		}
	}
	return true
}

func TestFlipOccupancyPreserving(t *testing.T) {
	f := newTestField()
	directions := []tetromino.Direction{tetromino.Up, tetromino.Left, tetromino.Down, tetromino.Right}

	Convey("Given an I, S, or Z piece in any direction on an empty field", t, func() {
		for _, kind := range []tetromino.Kind{tetromino.I, tetromino.S, tetromino.Z} {
			kind := kind
			for _, dir := range directions {
				dir := dir
				Convey("Flipping a "+kind.String()+" piece facing "+dir.String()+" preserves occupied cells", func() {
					c := tetromino.Current{Kind: kind, Direction: dir, X: 4, Y: 10}
					before := c.AbsoluteBlocks()
					flipped, ok := c.Flip()
					So(ok, ShouldBeTrue)
					after := flipped.AbsoluteBlocks()
					So(sameOccupancy(before, after), ShouldBeTrue)
				})
			}
		}
	})
}
