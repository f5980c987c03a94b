package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/medley/internal/config"
)

// configEnvVars lists every variable the loader understands, for cleanup.
var configEnvVars = []string{
	"MEDLEY_CONFIG",
	"MEDLEY_LOG_LEVEL",
	"MEDLEY_YEAR",
	"MEDLEY_B_PERCENT",
	"MEDLEY_CLUB",
	"MEDLEY_DATABASE_URL",
	"MEDLEY_SCY_SHEET",
	"MEDLEY_LCM_SHEET",
	"MEDLEY_SHEET_NAME",
	"MEDLEY_PROGRESS_INTERVAL",
	"MEDLEY_METRICS_ADDR",
	"MEDLEY_MIGRATE",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

// setRequiredEnv supplies the fields validation insists on.
func setRequiredEnv() {
	_ = os.Setenv("MEDLEY_DATABASE_URL", "postgres://localhost/medley")
	_ = os.Setenv("MEDLEY_SCY_SHEET", "scy.xlsx")
	_ = os.Setenv("MEDLEY_LCM_SHEET", "lcm.xlsx")
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading with only the required fields set", func() {
			clearConfigEnvVars()
			setRequiredEnv()
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then defaults fill the rest", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.BPercent, convey.ShouldEqual, 120)
				convey.So(cfg.SheetName, convey.ShouldEqual, "Sheet1")
				convey.So(cfg.ProgressInterval, convey.ShouldEqual, 100)
				convey.So(cfg.DatabaseURL, convey.ShouldEqual, "postgres://localhost/medley")
			})
		})

		convey.Convey("When loading with environment overrides", func() {
			clearConfigEnvVars()
			setRequiredEnv()
			_ = os.Setenv("MEDLEY_YEAR", "2025")
			_ = os.Setenv("MEDLEY_B_PERCENT", "110")
			_ = os.Setenv("MEDLEY_CLUB", "WAVE")
			_ = os.Setenv("MEDLEY_PROGRESS_INTERVAL", "25")
			_ = os.Setenv("MEDLEY_METRICS_ADDR", ":9090")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Year, convey.ShouldEqual, 2025)
				convey.So(cfg.BPercent, convey.ShouldEqual, 110)
				convey.So(cfg.Club, convey.ShouldEqual, "WAVE")
				convey.So(cfg.ProgressInterval, convey.ShouldEqual, 25)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
			})
		})

		convey.Convey("When loading with a YAML file", func() {
			clearConfigEnvVars()
			defer clearConfigEnvVars()

			yamlContent := `
log_level: debug
year: 2024
b_percent: 125
club: REEF
database_url: postgres://localhost/seasons
scy_sheet: /data/scy.xlsx
lcm_sheet: /data/lcm.xlsx
sheet_name: NQT
`
			path := filepath.Join(t.TempDir(), "medley.yaml")
			if err := os.WriteFile(path, []byte(yamlContent), 0o600); err != nil {
				t.Fatalf("write config file: %v", err)
			}
			_ = os.Setenv("MEDLEY_CONFIG", path)

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.Year, convey.ShouldEqual, 2024)
				convey.So(cfg.BPercent, convey.ShouldEqual, 125)
				convey.So(cfg.SheetName, convey.ShouldEqual, "NQT")
			})

			convey.Convey("And env still beats the file", func() {
				_ = os.Setenv("MEDLEY_B_PERCENT", "130")

				cfg, err := config.Load(ctx)

				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.BPercent, convey.ShouldEqual, 130)
			})
		})

		convey.Convey("When required fields are missing", func() {
			clearConfigEnvVars()
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails with the sentinel", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When b_percent is below 100", func() {
			clearConfigEnvVars()
			setRequiredEnv()
			_ = os.Setenv("MEDLEY_B_PERCENT", "90")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}
