package table_test

import (
	"errors"
	"testing"

	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/scoring"
	"github.com/okian/wodboard/internal/domain/table"
	. "github.com/smartystreets/goconvey/convey"
)

func sheet(rows ...[]string) *table.Table {
	return &table.Table{
		Columns: []string{"Categoria", "Time", "Integrantes", "WOD1_Tempo_Resultado", " WOD2_Reps_Resultado "},
		Rows:    rows,
	}
}

func TestBuild(t *testing.T) {
	Convey("Given a well-formed sheet", t, func() {
		tbl := sheet(
			[]string{"Scaled", "Lobos", "Ana, Bia", "10:00", "150"},
			[]string{"RX", "Tigres", "Caio", "CAP +2", "  "},
			[]string{"", "", "", "", ""},
			[]string{"Scaled", "Ursos", "Dani", "--", "abnormal"},
			[]string{"RX", "Falcoes", "Eva"},
		)

		comp, stats, err := table.Build(tbl, table.DefaultSchema(), nil)

		Convey("Then it succeeds", func() {
			So(err, ShouldBeNil)
			So(comp, ShouldNotBeNil)
		})

		Convey("Then events come from the result columns", func() {
			So(len(comp.Events), ShouldEqual, 2)
			So(comp.Events[0].Name, ShouldEqual, "WOD1_Tempo")
			So(comp.Events[0].Kind, ShouldEqual, model.Time)
			So(comp.Events[1].Name, ShouldEqual, "WOD2_Reps")
			So(comp.Events[1].Kind, ShouldEqual, model.Count)
		})

		Convey("Then categories are sorted and keep input team order", func() {
			So(len(comp.Categories), ShouldEqual, 2)
			So(comp.Categories[0].Name, ShouldEqual, "RX")
			So(comp.Categories[0].TeamNames(), ShouldResemble, []string{"Tigres", "Falcoes"})
			So(comp.Categories[1].TeamNames(), ShouldResemble, []string{"Lobos", "Ursos"})
			So(comp.TeamCount(), ShouldEqual, 4)
		})

		Convey("Then cells are normalized to tri-state results", func() {
			lobos := comp.Categories[1].Teams[0]
			So(lobos.Result("WOD1_Tempo").Score, ShouldEqual, 600)
			So(lobos.Attributes, ShouldResemble, []model.Attribute{{Name: "Integrantes", Value: "Ana, Bia"}})

			tigres := comp.Categories[0].Teams[0]
			So(tigres.Result("WOD2_Reps").State, ShouldEqual, model.Absent)

			ursos := comp.Categories[1].Teams[1]
			So(ursos.Result("WOD1_Tempo").Score, ShouldEqual, scoring.WorstTime)
			So(ursos.Result("WOD2_Reps").State, ShouldEqual, model.Unscorable)
		})

		Convey("Then stats account for every cell", func() {
			So(stats.Rows, ShouldEqual, 4)
			So(stats.BlankRows, ShouldEqual, 1)
			So(stats.Scored, ShouldEqual, 4)
			So(stats.Unscorable, ShouldEqual, 1)
			So(stats.Absent, ShouldEqual, 3)
			So(comp.Attributes, ShouldResemble, []string{"Integrantes"})
		})
	})

	Convey("Given structural problems", t, func() {
		Convey("When the table is empty", func() {
			_, _, err := table.Build(&table.Table{}, table.DefaultSchema(), nil)
			So(errors.Is(err, table.ErrNoData), ShouldBeTrue)
		})

		Convey("When only blank rows are present", func() {
			_, _, err := table.Build(sheet([]string{" ", ""}), table.DefaultSchema(), nil)
			So(errors.Is(err, table.ErrNoData), ShouldBeTrue)
		})

		Convey("When the team column is missing", func() {
			tbl := &table.Table{Columns: []string{"Categoria", "Equipe"}, Rows: [][]string{{"RX", "A"}}}
			_, _, err := table.Build(tbl, table.DefaultSchema(), nil)
			So(errors.Is(err, table.ErrMissingColumn), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, `"Time"`)
		})

		Convey("When a row has no category or no team", func() {
			comp, stats, err := table.Build(sheet(
				[]string{"", "Lobos", "", "10:00", ""},
				[]string{"RX", "Ursos", "", "9:00", "40"},
				[]string{"RX", "nan", "", "8:00", "50"},
			), table.DefaultSchema(), nil)
			So(err, ShouldBeNil)
			So(stats.Rows, ShouldEqual, 1)
			So(stats.KeylessRows, ShouldResemble, []int{2, 4})
			So(comp.Categories, ShouldHaveLength, 1)
			So(comp.Categories[0].Teams, ShouldHaveLength, 1)
			So(comp.Categories[0].Teams[0].Name, ShouldEqual, "Ursos")
		})

		Convey("When every row lacks a category", func() {
			_, stats, err := table.Build(sheet([]string{"", "Lobos", "", "10:00", ""}), table.DefaultSchema(), nil)
			So(errors.Is(err, table.ErrNoData), ShouldBeTrue)
			So(stats.KeylessRows, ShouldResemble, []int{2})
		})

		Convey("When a team appears twice in a category", func() {
			_, _, err := table.Build(sheet(
				[]string{"RX", "Lobos", "", "10:00", ""},
				[]string{"RX", "Lobos", "", "11:00", ""},
			), table.DefaultSchema(), nil)
			So(errors.Is(err, table.ErrDuplicateTeam), ShouldBeTrue)
		})

		Convey("When the same team name is used in two categories", func() {
			comp, _, err := table.Build(sheet(
				[]string{"RX", "Lobos", "", "10:00", ""},
				[]string{"Scaled", "Lobos", "", "11:00", ""},
			), table.DefaultSchema(), nil)
			So(err, ShouldBeNil)
			So(len(comp.Categories), ShouldEqual, 2)
		})
	})

	Convey("Given a schema with a passthrough column absent from the sheet", t, func() {
		schema := table.DefaultSchema()
		schema.PassthroughColumns = []string{"Integrantes", "Box"}

		comp, stats, err := table.Build(sheet([]string{"RX", "Lobos", "Ana", "", ""}), schema, nil)

		So(err, ShouldBeNil)
		So(stats.MissingCols, ShouldResemble, []string{"Box"})
		So(comp.Attributes, ShouldResemble, []string{"Integrantes"})
	})
}
