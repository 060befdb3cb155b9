package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/ringside/internal/config"
	"github.com/okian/ringside/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainApplicationIntegration(t *testing.T) {
	convey.Convey("Given the application wired from config", t, func() {
		dir := t.TempDir()
		rosterPath := filepath.Join(dir, "roster.yaml")
		convey.So(os.WriteFile(rosterPath, []byte(`
competitors:
  - {id: kai, name: Kai, alignment: face, popularity: 60, stamina: 80, proficiencies: [singles]}
  - {id: vex, name: Vex, alignment: heel, popularity: 55, stamina: 75}
`), 0o600), convey.ShouldBeNil)

		_ = os.Setenv("RINGSIDE_ROSTER_PATH", rosterPath)
		_ = os.Setenv("RINGSIDE_SEED", "7")
		defer func() {
			_ = os.Unsetenv("RINGSIDE_ROSTER_PATH")
			_ = os.Unsetenv("RINGSIDE_SEED")
		}()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cfg, err := config.Load(ctx)
		convey.So(err, convey.ShouldBeNil)
		convey.So(applyLogConfig(ctx, cfg), convey.ShouldBeNil)

		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		srv := newHTTPServer(ctx, cfg, svc)

		convey.Convey("Then the server uses the configured address and timeouts", func() {
			convey.So(srv.Addr, convey.ShouldEqual, ":9080")
			convey.So(srv.ReadHeaderTimeout, convey.ShouldEqual, readHeaderTimeout)
		})

		convey.Convey("Then a booking runs against the configured roster and seed", func() {
			req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"a":"kai","b":"vex","category":"singles"}`))
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, req)

			convey.So(w.Code, convey.ShouldEqual, http.StatusCreated)
			var body struct {
				Result struct {
					Seed int64 `json:"seed"`
				} `json:"result"`
			}
			convey.So(json.NewDecoder(w.Body).Decode(&body), convey.ShouldBeNil)
			convey.So(body.Result.Seed, convey.ShouldEqual, 7)
		})

		convey.Convey("Then metrics are served on /healthz", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "ringside_booking_roster_size 2")
		})

		convey.Convey("Then the API document is served", func() {
			w := httptest.NewRecorder()
			srv.Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, "/bookings/commit")
		})
	})
}

func TestApplyLogConfig(t *testing.T) {
	convey.Convey("Given log settings", t, func() {
		ctx := context.Background()
		defer func() {
			_ = logger.SetFormat("text")
			_ = logger.SetLevelString("info")
		}()

		convey.Convey("When the level is unknown", func() {
			cfg := config.New()
			cfg.LogLevel = "loud"

			convey.Convey("Then it falls back without failing", func() {
				convey.So(applyLogConfig(ctx, cfg), convey.ShouldBeNil)
			})
		})

		convey.Convey("When the format is unknown", func() {
			cfg := config.New()
			cfg.LogFormat = "xml"

			convey.Convey("Then it fails", func() {
				convey.So(applyLogConfig(ctx, cfg), convey.ShouldNotBeNil)
			})
		})
	})
}

func TestMainApplicationComponents(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then it returns once the context is done", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then a single update does not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
