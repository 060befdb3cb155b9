package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/ringside/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

var configEnvVars = []string{
	"RINGSIDE_CONFIG",
	"RINGSIDE_ADDR",
	"RINGSIDE_LOG_LEVEL",
	"RINGSIDE_LOG_FORMAT",
	"RINGSIDE_ROSTER_PATH",
	"RINGSIDE_CATALOG_PATH",
	"RINGSIDE_SEED",
	"RINGSIDE_LEDGER_SIZE",
}

func clearConfigEnvVars() {
	for _, v := range configEnvVars {
		_ = os.Unsetenv(v)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()
		defer clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.New())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RINGSIDE_ADDR", ":8080")
			_ = os.Setenv("RINGSIDE_LOG_FORMAT", "json")
			_ = os.Setenv("RINGSIDE_ROSTER_PATH", "/data/roster.yaml")
			_ = os.Setenv("RINGSIDE_SEED", "42")
			_ = os.Setenv("RINGSIDE_LEDGER_SIZE", "64")

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.RosterPath, convey.ShouldEqual, "/data/roster.yaml")
				convey.So(cfg.Seed, convey.ShouldEqual, 42)
				convey.So(cfg.LedgerSize, convey.ShouldEqual, 64)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			_ = os.Setenv("RINGSIDE_CONFIG", writeConfig(t, `
addr: ":7000"
log_level: debug
catalog_path: ./configs/categories.yaml
seed: 9
`))

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should use the file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.CatalogPath, convey.ShouldEqual, "./configs/categories.yaml")
				convey.So(cfg.Seed, convey.ShouldEqual, 9)
				convey.So(cfg.LedgerSize, convey.ShouldEqual, 4096)
			})
		})

		convey.Convey("When both a file and env vars are set", func() {
			_ = os.Setenv("RINGSIDE_CONFIG", writeConfig(t, "addr: \":7000\"\nseed: 9\n"))
			_ = os.Setenv("RINGSIDE_SEED", "11")

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars win over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7000")
				convey.So(cfg.Seed, convey.ShouldEqual, 11)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("RINGSIDE_CONFIG", "/non/existent/file.yaml")

			_, err := config.Load(ctx)

			convey.Convey("Then it should fail to load", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When addr is set to empty", func() {
			_ = os.Setenv("RINGSIDE_ADDR", "")

			_, err := config.Load(ctx)

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a number cannot be parsed", func() {
			_ = os.Setenv("RINGSIDE_SEED", "not_a_number")

			_, err := config.Load(ctx)

			convey.Convey("Then decoding fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
