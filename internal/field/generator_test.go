package field_test

import (
	"math/rand"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

func TestRandomGeneratorBag(t *testing.T) {
	Convey("Given a RandomGenerator", t, func() {
		g := field.NewRandomGenerator(rand.New(rand.NewSource(1)))

		Convey("Each consecutive run of seven draws contains every kind exactly once", func() {
			for bag := 0; bag < 3; bag++ {
				seen := map[tetromino.Kind]int{}
				for i := 0; i < 7; i++ {
					k, ok := g.Next()
					So(ok, ShouldBeTrue)
					seen[k]++
				}
				for _, k := range []tetromino.Kind{
					tetromino.I, tetromino.J, tetromino.L, tetromino.O,
					tetromino.S, tetromino.T, tetromino.Z,
				} {
					So(seen[k], ShouldEqual, 1)
				}
			}
		})
	})
}

func TestFixedGenerator(t *testing.T) {
	Convey("Given a FixedGenerator seeded with I, J, L", t, func() {
		g := field.NewFixedGenerator(tetromino.I, tetromino.J, tetromino.L)

		Convey("Next replays the sequence in order, then returns ok == false", func() {
			k, ok := g.Next()
			So(ok, ShouldBeTrue)
			So(k, ShouldEqual, tetromino.I)

			k, ok = g.Next()
			So(ok, ShouldBeTrue)
			So(k, ShouldEqual, tetromino.J)

			k, ok = g.Next()
			So(ok, ShouldBeTrue)
			So(k, ShouldEqual, tetromino.L)

			_, ok = g.Next()
			So(ok, ShouldBeFalse)
		})
	})
}
