package render_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/wodboard/internal/adapters/render"
	"github.com/okian/wodboard/internal/domain/types"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xuri/excelize/v2"
)

func board() *types.Board {
	return &types.Board{
		RunID:       "run-1",
		GeneratedAt: time.Date(2024, 3, 9, 15, 4, 5, 0, time.UTC),
		Events:      []types.Event{{Name: "WOD1", Kind: "count"}, {Name: "WOD2_Tempo", Kind: "time"}},
		Attributes:  []string{"Integrantes"},
		Categories: []types.Category{
			{Name: "RX", Rows: []types.LeaderboardRow{
				{Rank: 1, Team: "Lobos", Attributes: map[string]string{"Integrantes": "Ana & Bia"}, TotalPoints: 2,
					Results: []types.EventScore{{Event: "WOD1", Display: "150", Points: 1}, {Event: "WOD2_Tempo", Display: "10:00", Points: 1}}},
				{Rank: 2, Team: "Ursos", TotalPoints: 5,
					Results: []types.EventScore{{Event: "WOD1", Display: "--", Points: 3}, {Event: "WOD2_Tempo", Display: "CAP+2", Points: 2}}},
				{Rank: 3, Team: "Tigres", TotalPoints: 6,
					Results: []types.EventScore{{Event: "WOD1", Display: "abnormal", Points: 3}, {Event: "WOD2_Tempo", Display: "--", Points: 3}}},
			}},
			{Name: "Scaled/Masters", Rows: []types.LeaderboardRow{
				{Rank: 1, Team: "Falcoes", TotalPoints: 2,
					Results: []types.EventScore{{Event: "WOD1", Display: "99", Points: 1}, {Event: "WOD2_Tempo", Display: "7:30", Points: 1}}},
			}},
		},
	}
}

func TestHTML(t *testing.T) {
	Convey("Given a board and a report renderer", t, func() {
		h := render.NewHTML("", render.WithTitle("Open 2024"), render.WithLocation(time.FixedZone("BRT", -3*3600)))

		var buf bytes.Buffer
		err := h.Render(&buf, board())
		page := buf.String()

		Convey("The page carries title, local stamp and every team", func() {
			So(err, ShouldBeNil)
			So(page, ShouldContainSubstring, "<title>Open 2024</title>")
			So(page, ShouldContainSubstring, "Atualizado em 09/03/2024 12:04:05")
			So(page, ShouldContainSubstring, "<th>WOD2_Tempo</th>")
			So(page, ShouldContainSubstring, "Lobos")
			So(page, ShouldContainSubstring, "Falcoes")
			So(page, ShouldContainSubstring, `<span class="pts">3</span>`)
		})

		Convey("Passthrough values are escaped", func() {
			So(page, ShouldContainSubstring, "Ana &amp; Bia")
		})

		Convey("Category order is preserved", func() {
			So(strings.Index(page, "<h2>RX</h2>"), ShouldBeLessThan, strings.Index(page, "<h2>Scaled/Masters</h2>"))
		})

		Convey("A nil board is rejected", func() {
			So(errors.Is(h.Render(&buf, nil), render.ErrNilBoard), ShouldBeTrue)
		})
	})

	Convey("Given category names that are not valid anchors", t, func() {
		b := board()
		b.Categories[0].Name = "Elite Masters 35+"
		b.Categories[1].Name = "elite/masters 35"
		b.Categories = append(b.Categories, types.Category{Name: "***"}, types.Category{Name: "Iniciante Feminino"})

		var buf bytes.Buffer
		So(render.NewHTML("").Render(&buf, b), ShouldBeNil)
		page := buf.String()

		Convey("Each section gets a unique slug id", func() {
			So(page, ShouldContainSubstring, `<section id="elite-masters-35">`)
			So(page, ShouldContainSubstring, `<section id="elite-masters-35-2">`)
			So(page, ShouldContainSubstring, `<section id="category">`)
			So(page, ShouldContainSubstring, `<section id="iniciante-feminino">`)
		})
	})

	Convey("Given an output path", t, func() {
		path := filepath.Join(t.TempDir(), "site", "index.html")
		err := render.NewHTML(path).Emit(context.Background(), board())

		Convey("Emit writes the file and leaves no temporaries", func() {
			So(err, ShouldBeNil)
			data, readErr := os.ReadFile(path)
			So(readErr, ShouldBeNil)
			So(string(data), ShouldContainSubstring, "Atualizado em 09/03/2024 15:04:05")
			entries, _ := os.ReadDir(filepath.Dir(path))
			So(entries, ShouldHaveLength, 1)
		})
	})
}

func TestXLSX(t *testing.T) {
	Convey("Given a board exported as a workbook", t, func() {
		var buf bytes.Buffer
		So(render.WriteXLSX(&buf, board()), ShouldBeNil)

		f, err := excelize.OpenReader(&buf)
		So(err, ShouldBeNil)
		defer func() { _ = f.Close() }()

		Convey("Each category has a sanitized sheet", func() {
			So(f.GetSheetList(), ShouldResemble, []string{"RX", "Scaled_Masters"})
		})

		Convey("Rows carry rank, attributes, display and points", func() {
			rows, err := f.GetRows("RX")
			So(err, ShouldBeNil)
			So(rows[0], ShouldResemble, []string{"Rank", "Time", "Integrantes", "WOD1", "WOD1 pts", "WOD2_Tempo", "WOD2_Tempo pts", "Total"})
			So(rows[1], ShouldResemble, []string{"1", "Lobos", "Ana & Bia", "150", "1", "10:00", "1", "2"})
			So(rows, ShouldHaveLength, 4)
		})
	})

	Convey("Given categories whose names Excel would reject", t, func() {
		b := board()
		b.Categories[0].Name = "'Elite'"
		b.Categories[1].Name = "''"
		b.Categories = append(b.Categories, types.Category{Name: strings.Repeat("x", 30) + "'Elite"})

		var buf bytes.Buffer
		So(render.WriteXLSX(&buf, b), ShouldBeNil)

		f, err := excelize.OpenReader(&buf)
		So(err, ShouldBeNil)
		defer func() { _ = f.Close() }()

		Convey("Leading and trailing apostrophes are dropped", func() {
			So(f.GetSheetList(), ShouldResemble, []string{"Elite", "Category", strings.Repeat("x", 30)})
		})
	})

	Convey("Given an output path", t, func() {
		path := filepath.Join(t.TempDir(), "board.xlsx")

		Convey("Emit writes a readable workbook", func() {
			So(render.NewXLSX(path).Emit(context.Background(), board()), ShouldBeNil)
			f, err := excelize.OpenFile(path)
			So(err, ShouldBeNil)
			So(f.Close(), ShouldBeNil)
		})
	})
}

func TestJSON(t *testing.T) {
	Convey("Given an output path", t, func() {
		path := filepath.Join(t.TempDir(), "board.json")
		So(render.NewJSON(path).Emit(context.Background(), board()), ShouldBeNil)

		Convey("The document decodes back to the board", func() {
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			var got types.Board
			So(json.Unmarshal(data, &got), ShouldBeNil)
			So(got.RunID, ShouldEqual, "run-1")
			So(got.TeamCount(), ShouldEqual, 4)
		})

		Convey("A cancelled context stops the write", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			So(errors.Is(render.NewJSON(path).Emit(ctx, board()), context.Canceled), ShouldBeTrue)
		})
	})
}

func TestText(t *testing.T) {
	Convey("Given a terminal summary limited to two rows", t, func() {
		var buf bytes.Buffer
		So(render.NewText(&buf, 2).Emit(context.Background(), board()), ShouldBeNil)
		out := buf.String()

		Convey("It lists the top rows and counts the rest", func() {
			So(out, ShouldContainSubstring, "Lobos")
			So(out, ShouldContainSubstring, "CAP+2 (2)")
			So(out, ShouldNotContainSubstring, "Tigres")
			So(out, ShouldContainSubstring, "... 1 more")
			So(out, ShouldContainSubstring, "Falcoes")
		})
	})

	Convey("Given an empty board", t, func() {
		var buf bytes.Buffer
		So(render.NewText(&buf, 0).Emit(context.Background(), &types.Board{}), ShouldBeNil)

		Convey("It says so", func() {
			So(buf.String(), ShouldContainSubstring, "no teams")
		})
	})
}
