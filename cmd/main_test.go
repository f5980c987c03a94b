package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/medley/internal/config"
	"github.com/okian/medley/pkg/logger"
)

func init() {
	_ = logger.Init()
}

func TestMainConfiguration(t *testing.T) {
	convey.Convey("Given the batch entrypoint", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			_ = os.Setenv("MEDLEY_DATABASE_URL", "postgres://localhost/medley")
			_ = os.Setenv("MEDLEY_SCY_SHEET", "scy.xlsx")
			_ = os.Setenv("MEDLEY_LCM_SHEET", "lcm.xlsx")
			_ = os.Setenv("MEDLEY_CLUB", "WAVE")
			defer func() {
				_ = os.Unsetenv("MEDLEY_DATABASE_URL")
				_ = os.Unsetenv("MEDLEY_SCY_SHEET")
				_ = os.Unsetenv("MEDLEY_LCM_SHEET")
				_ = os.Unsetenv("MEDLEY_CLUB")
			}()

			convey.Convey("Then configuration should be loadable", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Club, convey.ShouldEqual, "WAVE")
				convey.So(cfg.SCYSheet, convey.ShouldEqual, "scy.xlsx")
			})
		})

		convey.Convey("When configuration is incomplete", func() {
			convey.Convey("Then loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestMetricsServer(t *testing.T) {
	convey.Convey("Given a metrics server", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		srv := startMetricsServer(ctx, "127.0.0.1:0", logger.Get())
		defer func() {
			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Second)
			defer cancelShutdown()
			_ = srv.Shutdown(shutdownCtx)
		}()

		convey.Convey("Then it should start and shut down cleanly", func() {
			convey.So(srv, convey.ShouldNotBeNil)
			convey.So(srv.Handler, convey.ShouldNotBeNil)

			shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), time.Second)
			defer cancelShutdown()
			convey.So(srv.Shutdown(shutdownCtx), convey.ShouldBeNil)
		})
	})
}
