package config_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/wodboard/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should follow the competition sheet layout", func() {
			convey.So(cfg.Mode, convey.ShouldEqual, config.ModeGenerate)
			convey.So(cfg.CategoryColumn, convey.ShouldEqual, "Categoria")
			convey.So(cfg.TeamColumn, convey.ShouldEqual, "Time")
			convey.So(cfg.PassthroughColumns, convey.ShouldResemble, []string{"Integrantes"})
			convey.So(cfg.ResultSuffix, convey.ShouldEqual, "_Resultado")
			convey.So(cfg.TimeToken, convey.ShouldEqual, "tempo")
			convey.So(cfg.DecimalComma, convey.ShouldBeFalse)
			convey.So(cfg.OutputHTML, convey.ShouldEqual, "index.html")
			convey.So(cfg.Timezone, convey.ShouldEqual, "America/Sao_Paulo")
			convey.So(cfg.FetchTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.RefreshInterval(), convey.ShouldEqual, time.Minute)
		})

		convey.Convey("Then it is invalid until a source is configured", func() {
			err := cfg.Validate()
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)

			cfg.SourceFile = "results.csv"
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config with a source", t, func() {
		cfg := config.New()
		cfg.SourceURL = "https://example.com/pub?output=csv"

		convey.Convey("When the mode is unknown", func() {
			cfg.Mode = "daemon"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the source format is unknown", func() {
			cfg.SourceFormat = "ods"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When serving without an address", func() {
			cfg.Mode = config.ModeServe
			cfg.Addr = ""
			err := cfg.Validate()
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
		})

		convey.Convey("When the timezone does not exist", func() {
			cfg.Timezone = "Mars/Olympus_Mons"
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})

		convey.Convey("When the result suffix is blank", func() {
			cfg.ResultSuffix = " "
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
