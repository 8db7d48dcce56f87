package config_test

import (
	"errors"
	"testing"

	"github.com/puimuri/trainer/internal/config"
	"github.com/puimuri/trainer/internal/domain/builder"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, "127.0.0.1:8000")
			convey.So(cfg.FrontendDir, convey.ShouldEqual, "static")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.GradeTolerance, convey.ShouldEqual, 0.01)
			convey.So(cfg.Seed, convey.ShouldEqual, 0)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then its sampling settings match the builder defaults", func() {
			bc, err := cfg.BuilderConfig()
			convey.So(err, convey.ShouldBeNil)
			convey.So(bc, convey.ShouldResemble, builder.DefaultConfig())
		})
	})
}

func TestConfig_BuilderConfig(t *testing.T) {
	convey.Convey("Given custom sampling settings", t, func() {
		cfg := config.New()
		cfg.CurrentMin, cfg.CurrentMax = 1, 2
		cfg.Decimals = 3

		convey.Convey("Then they are carried into the builder config", func() {
			bc, err := cfg.BuilderConfig()
			convey.So(err, convey.ShouldBeNil)
			convey.So(bc.Current, convey.ShouldResemble, builder.Range{Min: 1, Max: 2})
			convey.So(bc.Decimals, convey.ShouldEqual, 3)
		})

		convey.Convey("When a range is inverted", func() {
			cfg.PowerMin, cfg.PowerMax = 10, 1

			convey.Convey("Then conversion and validation fail", func() {
				_, err := cfg.BuilderConfig()
				convey.So(errors.Is(err, builder.ErrMinLargerThanMax), convey.ShouldBeTrue)
				err = cfg.Validate()
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, builder.ErrMinLargerThanMax), convey.ShouldBeTrue)
			})
		})
	})
}
