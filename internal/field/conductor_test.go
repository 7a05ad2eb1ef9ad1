package field_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/cuboktahedron/tetsimu2-hub/internal/field"
	"github.com/cuboktahedron/tetsimu2-hub/internal/tetromino"
)

func TestConductorHardDrop(t *testing.T) {
	Convey("Given a conductor fed I, J, L in order", t, func() {
		gen := field.NewFixedGenerator(tetromino.I, tetromino.J, tetromino.L)
		c := field.NewConductor(gen)

		Convey("The first hard drop settles a flat I piece on the floor", func() {
			c.HardDrop()
			So(c.Field(), ShouldResemble, fromFixture("NNNIIIINNN"))

			Convey("The second hard drop settles J on top of it", func() {
				c.HardDrop()
				So(c.Field(), ShouldResemble, fromFixture(
					"NNNJNNNNNN"+
						"NNNJJJNNNN"+
						"NNNIIIINNN",
				))
			})
		})
	})
}

func TestConductorHardDropDeadDueToBlockOverlapped(t *testing.T) {
	Convey("Given a conductor reset onto a field with columns blocked at the spawn anchor", t, func() {
		initial := field.NewFixedGenerator(tetromino.T, tetromino.I)
		c := field.NewConductor(initial)

		blocked := fromFixture(
			"NNNNNNINNN" +
				"NNNNNNINNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN",
		)
		c.Reset(blocked, field.NewHold(), field.NewFixedGenerator(tetromino.T, tetromino.I))

		Convey("Hard-dropping onto it kills the game", func() {
			c.HardDrop()
			So(c.IsDead(), ShouldBeTrue)
		})
	})
}

func TestConductorHardDropDeadDueToAllBlocksOverDeadLine(t *testing.T) {
	Convey("Given a conductor reset onto a field one row below a garbage ceiling", t, func() {
		initial := field.NewFixedGenerator(tetromino.T, tetromino.I)
		c := field.NewConductor(initial)

		ceiling := fromFixture(
			"NNNNNNNNNN" +
				"NGGGGGGGGN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN",
		)
		c.Reset(ceiling, field.NewHold(), field.NewFixedGenerator(tetromino.T, tetromino.I))

		Convey("Moving into the gap and hard-dropping still kills the game", func() {
			c.MoveLeft()
			c.MoveLeft()
			c.MoveLeft()
			c.HardDrop()
			So(c.IsDead(), ShouldBeTrue)
		})
	})
}

func TestConductorHold(t *testing.T) {
	Convey("Given a conductor fed I, J in order", t, func() {
		gen := field.NewFixedGenerator(tetromino.I, tetromino.J)
		c := field.NewConductor(gen)

		Convey("Holding swaps in J, since the slot was empty", func() {
			So(c.Hold(), ShouldBeTrue)
			So(c.Current().Kind, ShouldEqual, tetromino.J)
			So(c.CanHold(), ShouldBeFalse)

			held, has := c.Holded()
			So(has, ShouldBeTrue)
			So(held, ShouldEqual, tetromino.I)
		})
	})
}

func TestConductorHoldIgnoresFailedRespawn(t *testing.T) {
	Convey("Given a conductor reset onto a field with both spawn rows fully blocked", t, func() {
		blockedSpawn := fromFixture(
			"GGGGGGGGGG" +
				"GGGGGGGGGG" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN" + "NNNNNNNNNN" + "NNNNNNNNNN" +
				"NNNNNNNNNN",
		)

		c := field.NewConductor(field.NewFixedGenerator(tetromino.T))
		c.Reset(blockedSpawn, field.NewHold(), field.NewFixedGenerator(tetromino.I, tetromino.I))

		Convey("Holding still reports success even though the respawn it triggers has nowhere to land", func() {
			So(c.Hold(), ShouldBeTrue)
			So(c.IsDead(), ShouldBeFalse)

			held, has := c.Holded()
			So(has, ShouldBeTrue)
			So(held, ShouldEqual, tetromino.T)
		})
	})
}
