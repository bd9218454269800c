package ranking_test

import (
	"testing"

	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/ranking"
	"github.com/okian/wodboard/internal/domain/scoring"
	. "github.com/smartystreets/goconvey/convey"
)

// cells normalizes raw cells the same way ingestion does; missing keys stay absent.
func cells(kind model.MetricKind, raw map[string]string) map[string]model.Result {
	p := scoring.NewParser()
	out := make(map[string]model.Result, len(raw))
	for team, v := range raw {
		out[team] = p.Normalize(v, kind)
	}
	return out
}

func TestRankEvent_Time(t *testing.T) {
	Convey("Given a time event with a tie and a placeholder", t, func() {
		teams := []string{"A", "B", "C"}
		results := cells(model.Time, map[string]string{"A": "10:00", "B": "10:00", "C": "--"})

		scores := ranking.RankEvent("WOD1_Tempo", teams, results, model.Time)

		Convey("Then tied teams share the minimum rank", func() {
			So(scores["A"].Points, ShouldEqual, 1)
			So(scores["B"].Points, ShouldEqual, 1)
		})

		Convey("Then the unreadable time ranks after every real time", func() {
			So(scores["C"].Points, ShouldEqual, 3)
			So(scores["C"].Display, ShouldEqual, "--")
		})

		Convey("Then every score is tagged with the event", func() {
			for _, s := range scores {
				So(s.Event, ShouldEqual, "WOD1_Tempo")
			}
		})
	})

	Convey("Given times and capped results", t, func() {
		teams := []string{"A", "B", "C", "D", "E"}
		results := cells(model.Time, map[string]string{
			"A": "CAP +3", "B": "12:30", "C": "CAP", "D": "CAP +1", "E": "9:15",
		})

		scores := ranking.RankEvent("WOD", teams, results, model.Time)

		Convey("Then lower scores rank better", func() {
			So(scores["E"].Points, ShouldEqual, 1)
			So(scores["B"].Points, ShouldEqual, 2)
			So(scores["D"].Points, ShouldEqual, 3)
			So(scores["A"].Points, ShouldEqual, 4)
			So(scores["C"].Points, ShouldEqual, 5)
		})

		Convey("Then the raw text is displayed", func() {
			So(scores["A"].Display, ShouldEqual, "CAP +3")
		})
	})
}

func TestRankEvent_Count(t *testing.T) {
	Convey("Given a count event with an unreadable and an absent team", t, func() {
		teams := []string{"A", "B", "C"}
		results := cells(model.Count, map[string]string{"A": "150", "B": "abnormal"})

		scores := ranking.RankEvent("WOD2_Reps", teams, results, model.Count)

		Convey("Then the numeric result ranks first", func() {
			So(scores["A"].Points, ShouldEqual, 1)
			So(scores["A"].Display, ShouldEqual, "150")
		})

		Convey("Then absent and unreadable teams get participants+1", func() {
			So(scores["C"].Points, ShouldEqual, 2)
			So(scores["C"].Display, ShouldEqual, ranking.AbsentDisplay)
			So(scores["B"].Points, ShouldEqual, 2)
			So(scores["B"].Display, ShouldEqual, "abnormal")
		})
	})

	Convey("Given a count event with ties", t, func() {
		teams := []string{"A", "B", "C", "D"}
		results := cells(model.Count, map[string]string{"A": "100", "B": "120", "C": "100", "D": "80"})

		scores := ranking.RankEvent("WOD", teams, results, model.Count)

		Convey("Then higher values rank better and ranks skip by the tie width", func() {
			So(scores["B"].Points, ShouldEqual, 1)
			So(scores["A"].Points, ShouldEqual, 2)
			So(scores["C"].Points, ShouldEqual, 2)
			So(scores["D"].Points, ShouldEqual, 4)
		})
	})
}

func TestRankEvent_NoParticipants(t *testing.T) {
	Convey("Given an event nobody attempted", t, func() {
		teams := []string{"A", "B"}
		results := cells(model.Count, map[string]string{"B": "n/a"})

		scores := ranking.RankEvent("WOD", teams, results, model.Count)

		Convey("Then every team gets zero points", func() {
			So(len(scores), ShouldEqual, 2)
			So(scores["A"].Points, ShouldEqual, 0)
			So(scores["B"].Points, ShouldEqual, 0)
			So(scores["B"].Display, ShouldEqual, "n/a")
		})
	})

	Convey("Given no teams at all", t, func() {
		scores := ranking.RankEvent("WOD", nil, nil, model.Time)
		So(scores, ShouldBeEmpty)
	})
}
