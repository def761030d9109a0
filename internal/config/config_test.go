package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/pable/go-sb-charts/internal/config"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with defaults", t, func() {
		cfg := config.New()

		convey.Convey("Then it should target Bundesliga 2023/24 with the usual thresholds", func() {
			convey.So(cfg.CompetitionID, convey.ShouldEqual, 9)
			convey.So(cfg.SeasonID, convey.ShouldEqual, 281)
			convey.So(cfg.MinLinkPasses, convey.ShouldEqual, 5)
			convey.So(cfg.RosterSize, convey.ShouldEqual, 11)
			convey.So(cfg.HTTPTimeout(), convey.ShouldEqual, 30*time.Second)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}

func TestConfig_Load(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		clearEnv(t)

		convey.Convey("When loading with defaults only", func() {
			cfg, err := config.Load("")

			convey.Convey("Then defaults are kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(cfg.MinLinkPasses, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When loading with environment variables", func() {
			t.Setenv("SBCHARTS_MIN_LINK_PASSES", "3")
			t.Setenv("SBCHARTS_DATA_DIR", "/srv/open-data/data")
			t.Setenv("SBCHARTS_LOG_LEVEL", "debug")

			cfg, err := config.Load("")

			convey.Convey("Then env overrides defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.MinLinkPasses, convey.ShouldEqual, 3)
				convey.So(cfg.DataDir, convey.ShouldEqual, "/srv/open-data/data")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.RosterSize, convey.ShouldEqual, 11)
			})
		})

		convey.Convey("When loading a YAML file", func() {
			path := filepath.Join(t.TempDir(), "sbcharts.yaml")
			content := "competition_id: 43\nseason_id: 106\nmin_link_passes: 8\nlog_format: json\n"
			convey.So(os.WriteFile(path, []byte(content), 0o644), convey.ShouldBeNil)

			cfg, err := config.Load(path)

			convey.Convey("Then file values apply", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.CompetitionID, convey.ShouldEqual, 43)
				convey.So(cfg.SeasonID, convey.ShouldEqual, 106)
				convey.So(cfg.MinLinkPasses, convey.ShouldEqual, 8)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
			})
		})

		convey.Convey("When the file does not exist", func() {
			_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a threshold is negative", func() {
			t.Setenv("SBCHARTS_MIN_LINK_PASSES", "-1")

			_, err := config.Load("")

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "MinLinkPasses")
			})
		})

		convey.Convey("When neither a source URL nor a data dir is set", func() {
			path := filepath.Join(t.TempDir(), "sbcharts.yaml")
			convey.So(os.WriteFile(path, []byte("source_url: \"\"\n"), 0o644), convey.ShouldBeNil)

			_, err := config.Load(path)

			convey.Convey("Then validation rejects it", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}

// clearEnv unsets every variable the tests touch; goconvey re-enters the
// outer block for each leaf, so values set by one leaf must not leak into the next.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SBCHARTS_CONFIG", "SBCHARTS_MIN_LINK_PASSES", "SBCHARTS_DATA_DIR",
		"SBCHARTS_LOG_LEVEL", "SBCHARTS_SOURCE_URL",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}
