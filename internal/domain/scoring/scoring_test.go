package scoring_test

import (
	"testing"

	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

func TestParseScore_Time(t *testing.T) {
	Convey("Given time-based raw results", t, func() {
		Convey("When the value is MM:SS", func() {
			for raw, want := range map[string]float64{
				"10:00":   600,
				"0:45":    45,
				"12:07":   727,
				" 9:59 ":  599,
				"100:00":  6000,
				"10: 30 ": 630,
			} {
				score, ok := scoring.ParseScore(raw, model.Time)
				So(ok, ShouldBeTrue)
				So(score, ShouldEqual, want)
			}
		})

		Convey("When the value is capped with reps remaining", func() {
			score, _ := scoring.ParseScore("CAP +5", model.Time)
			So(score, ShouldEqual, 1_000_005)

			score, _ = scoring.ParseScore("cap+12", model.Time)
			So(score, ShouldEqual, 1_000_012)

			score, _ = scoring.ParseScore("Cap + 0", model.Time)
			So(score, ShouldEqual, 1_000_000)
		})

		Convey("When the value is capped without valid reps", func() {
			for _, raw := range []string{"CAP", "cap", "CAP +", "CAP +x", "CAPPED"} {
				score, _ := scoring.ParseScore(raw, model.Time)
				So(score, ShouldEqual, scoring.CappedNoReps)
			}
		})

		Convey("When the value is already in seconds", func() {
			score, _ := scoring.ParseScore("615", model.Time)
			So(score, ShouldEqual, 615)

			score, _ = scoring.ParseScore("62.5", model.Time)
			So(score, ShouldEqual, 62.5)
		})

		Convey("When the value cannot be read", func() {
			for _, raw := range []string{"--", "", "abc", "1:2:3", "10:xx", "nan", "inf"} {
				score, ok := scoring.ParseScore(raw, model.Time)
				So(ok, ShouldBeTrue)
				So(score, ShouldEqual, scoring.WorstTime)
			}
		})

		Convey("Then the penalty tiers never overlap and keep their order", func() {
			slow, _ := scoring.ParseScore("999:59", model.Time)
			capped, _ := scoring.ParseScore("CAP +999", model.Time)
			cappedNoReps, _ := scoring.ParseScore("CAP", model.Time)
			garbage, _ := scoring.ParseScore("--", model.Time)

			So(slow, ShouldBeLessThan, capped)
			So(capped, ShouldBeLessThan, cappedNoReps)
			So(cappedNoReps, ShouldBeLessThan, garbage)
		})
	})
}

func TestParseScore_Count(t *testing.T) {
	Convey("Given count-based raw results", t, func() {
		Convey("When the value is numeric", func() {
			score, ok := scoring.ParseScore("150", model.Count)
			So(ok, ShouldBeTrue)
			So(score, ShouldEqual, 150)

			score, ok = scoring.ParseScore(" 62.5 ", model.Count)
			So(ok, ShouldBeTrue)
			So(score, ShouldEqual, 62.5)
		})

		Convey("When the value is not a number", func() {
			for _, raw := range []string{"abnormal", "", "--", "NaN", "+Inf", "CAP +3", "1,500", "62,5"} {
				_, ok := scoring.ParseScore(raw, model.Count)
				So(ok, ShouldBeFalse)
			}
		})

		Convey("When decimal commas are enabled", func() {
			p := scoring.NewParser(scoring.WithDecimalComma(true))
			score, ok := p.Score("62,5", model.Count)
			So(ok, ShouldBeTrue)
			So(score, ShouldEqual, 62.5)

			_, ok = p.Score("1,500.5", model.Count)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestParser_Normalize(t *testing.T) {
	Convey("Given a parser with a custom cap marker", t, func() {
		p := scoring.NewParser(scoring.WithCapMarker("tc"))

		Convey("Then the marker is honored case-insensitively", func() {
			r := p.Normalize("tc +4", model.Time)
			So(r.State, ShouldEqual, model.Scored)
			So(r.Score, ShouldEqual, 1_000_004)
		})

		Convey("Then blank and nan cells are absent", func() {
			for _, raw := range []string{"", "   ", "nan", "NaN"} {
				So(p.Normalize(raw, model.Time), ShouldResemble, model.AbsentResult)
				So(p.Normalize(raw, model.Count), ShouldResemble, model.AbsentResult)
			}
		})

		Convey("Then unreadable count cells keep their text", func() {
			r := p.Normalize(" abnormal ", model.Count)
			So(r.State, ShouldEqual, model.Unscorable)
			So(r.Raw, ShouldEqual, "abnormal")
		})

		Convey("Then unreadable time cells are scored as the worst time", func() {
			r := p.Normalize("--", model.Time)
			So(r.State, ShouldEqual, model.Scored)
			So(r.Score, ShouldEqual, scoring.WorstTime)
			So(r.Raw, ShouldEqual, "--")
		})
	})
}
