package config_test

import (
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/medley/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Year, convey.ShouldEqual, time.Now().Year())
			convey.So(cfg.BPercent, convey.ShouldEqual, 120)
			convey.So(cfg.SheetName, convey.ShouldEqual, "Sheet1")
			convey.So(cfg.ProgressInterval, convey.ShouldEqual, 100)
			convey.So(cfg.Migrate, convey.ShouldBeFalse)
		})
	})
}
