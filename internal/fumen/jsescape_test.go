package fumen

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestJSEscape(t *testing.T) {
	Convey("Given the full printable-ASCII string", t, func() {
		s := " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"
		want := "%20%21%22%23%24%25%26%27%28%29*+%2C-./0123456789%3A%3B%3C%3D%3E%3F@ABCDEFGHIJKLMNOPQRSTUVWXYZ%5B%5C%5D%5E_%60abcdefghijklmnopqrstuvwxyz%7B%7C%7D%7E"

		Convey("jsEscape matches the golden escape output", func() {
			So(jsEscape(s), ShouldEqual, want)
		})
	})

	Convey("Given a string with a non-Latin character", t, func() {
		Convey("jsEscape produces a 4-digit %u escape", func() {
			So(jsEscape("あ"), ShouldEqual, "%u3042")
		})

		Convey("jsEscape mixes plain and escaped runs correctly", func() {
			So(jsEscape("abc!#あいう"), ShouldEqual, "abc%21%23%u3042%u3044%u3046")
		})
	})
}

func TestJSUnescape(t *testing.T) {
	Convey("Given the golden escaped printable-ASCII string", t, func() {
		escaped := "%20%21%22%23%24%25%26%27%28%29*+%2C-./0123456789%3A%3B%3C%3D%3E%3F@ABCDEFGHIJKLMNOPQRSTUVWXYZ%5B%5C%5D%5E_%60abcdefghijklmnopqrstuvwxyz%7B%7C%7D%7E"
		want := " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

		Convey("jsUnescape recovers the original string", func() {
			got, err := jsUnescape(escaped)
			So(err, ShouldBeNil)
			So(got, ShouldEqual, want)
		})
	})

	Convey("Given a %u escape for a non-Latin character", t, func() {
		Convey("jsUnescape recovers the rune", func() {
			got, err := jsUnescape("%u3042")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "あ")
		})
	})

	Convey("Given mixed plain and escaped runs", t, func() {
		Convey("jsUnescape recovers the original string", func() {
			got, err := jsUnescape("abc%21%23%u3042%u3044%u3046")
			So(err, ShouldBeNil)
			So(got, ShouldEqual, "abc!#あいう")
		})
	})
}
