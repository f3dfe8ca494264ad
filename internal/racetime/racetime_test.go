package racetime_test

import (
	"errors"
	"testing"

	"github.com/yourusername/track-report/internal/racetime"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParse(t *testing.T) {
	Convey("Given finished race times", t, func() {
		Convey("When parsing M:SS.hh", func() {
			got, err := racetime.Parse("2:05.30")

			Convey("Then the value is the total number of hundredths", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, racetime.Time(2*6000+5*100+30))
			})
		})

		Convey("When a marker character trails the time", func() {
			plain, err1 := racetime.Parse("2:05.30")
			marked, err2 := racetime.Parse("2:05.30a")

			Convey("Then the marker is ignored", func() {
				So(err1, ShouldBeNil)
				So(err2, ShouldBeNil)
				So(marked, ShouldEqual, plain)
			})
		})

		Convey("When minutes have more than one digit", func() {
			got, err := racetime.Parse("10:01.07")

			Convey("Then minutes are weighted, not concatenated", func() {
				So(err, ShouldBeNil)
				So(got, ShouldEqual, racetime.Time(60107))
			})
		})

		Convey("When comparing times whose digit groups differ in width", func() {
			Convey("Then real race ordering holds", func() {
				So(racetime.Compare(racetime.MustParse("1:59.99"), racetime.MustParse("2:00.00")), ShouldEqual, -1)
				So(racetime.Compare(racetime.MustParse("2:05.30"), racetime.MustParse("2:15.03")), ShouldEqual, -1)
				So(racetime.Compare(racetime.MustParse("9:59.99"), racetime.MustParse("10:00.00")), ShouldEqual, -1)
				So(racetime.Compare(racetime.MustParse("4:31.10"), racetime.MustParse("4:31.10a")), ShouldEqual, 0)
				So(racetime.Compare(racetime.MustParse("2:15.03"), racetime.MustParse("2:05.30")), ShouldEqual, 1)
			})
		})

		Convey("When parsing distinct times", func() {
			inputs := []string{"0:59.99", "1:00.00", "1:00.01", "2:05.30", "2:15.03", "12:00.00", "25:25.25"}
			seen := map[racetime.Time]string{}
			for _, in := range inputs {
				v, err := racetime.Parse(in)
				So(err, ShouldBeNil)
				seen[v] = in
			}

			Convey("Then every time gets its own value", func() {
				So(len(seen), ShouldEqual, len(inputs))
			})
		})
	})
}

func TestParseNonFinish(t *testing.T) {
	Convey("Given non-finish marks in any case", t, func() {
		for _, raw := range []string{"DNS", "dnf", "Scratch", "SCRATCH", " dns "} {
			_, err := racetime.Parse(raw)

			var nonFinish *racetime.NonFinishError
			So(errors.As(err, &nonFinish), ShouldBeTrue)
			So(nonFinish.Raw, ShouldEqual, raw)
			So(racetime.IsNonFinish(raw), ShouldBeTrue)
		}
	})
}

func TestParseMalformed(t *testing.T) {
	Convey("Given strings that are not M:SS.hh", t, func() {
		for _, raw := range []string{"abc", "1:2:3.4", "", "2:05", "205.30", "2:05.30.1", "x:05.30", "2:+5.30", "2:.30", "NH"} {
			_, err := racetime.Parse(raw)

			var malformed *racetime.MalformedTimeError
			So(errors.As(err, &malformed), ShouldBeTrue)

			var nonFinish *racetime.NonFinishError
			So(errors.As(err, &nonFinish), ShouldBeFalse)
		}
	})
}

func TestParseOutOfRange(t *testing.T) {
	Convey("Given components too large for a race time", t, func() {
		for _, raw := range []string{"3074457345618258:00.00", "99999999999999999999:00.00", "2:100.30", "2:05.300"} {
			Convey("When parsing "+raw, func() {
				v, err := racetime.Parse(raw)

				Convey("Then it is malformed instead of wrapping around", func() {
					var malformed *racetime.MalformedTimeError
					So(errors.As(err, &malformed), ShouldBeTrue)
					So(v, ShouldEqual, racetime.Time(0))
				})
			})
		}
	})

	Convey("Given the largest groups that still parse", t, func() {
		v, err := racetime.Parse("999:99.99")

		Convey("Then the value stays positive", func() {
			So(err, ShouldBeNil)
			So(v, ShouldEqual, racetime.Time(999*6000+99*100+99))
		})
	})
}

func TestToSeconds(t *testing.T) {
	Convey("Given a finished time", t, func() {
		secs, err := racetime.ToSeconds("2:10.44a")

		Convey("Then it converts to fractional seconds", func() {
			So(err, ShouldBeNil)
			So(secs, ShouldAlmostEqual, 130.44, 1e-9)
		})
	})

	Convey("Given a scratch", t, func() {
		_, err := racetime.ToSeconds("scratch")

		Convey("Then no value is produced", func() {
			var nonFinish *racetime.NonFinishError
			So(errors.As(err, &nonFinish), ShouldBeTrue)
		})
	})
}

func TestTimeString(t *testing.T) {
	Convey("Given canonical times", t, func() {
		for _, raw := range []string{"2:05.30", "0:59.07", "10:00.00", "25:25.25"} {
			So(racetime.MustParse(raw).String(), ShouldEqual, raw)
		}
		So(racetime.MustParse("4:31.10a").Seconds(), ShouldAlmostEqual, 271.10, 1e-9)
	})
}
