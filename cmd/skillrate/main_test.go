package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	service "github.com/okian/skillrate/internal/app"
	"github.com/okian/skillrate/internal/config"
	"github.com/okian/skillrate/internal/domain/model"
	"github.com/okian/skillrate/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func run(args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	err := execute(args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func TestConvertCommand(t *testing.T) {
	convey.Convey("Given the convert command", t, func() {
		convey.Convey("When converting Elo 1000 to Ingo", func() {
			out, _, err := run("convert", "--from", "elo", "--to", "ingo", "--rating", "1000")
			var r model.Rating
			jerr := json.Unmarshal([]byte(out), &r)

			convey.Convey("Then it should print Ingo 230 as JSON", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(jerr, convey.ShouldBeNil)
				convey.So(r.System, convey.ShouldEqual, model.Ingo)
				convey.So(r.Rating, convey.ShouldEqual, 230.0)
				convey.So(*r.Age, convey.ShouldEqual, uint(26))
			})
		})

		convey.Convey("When converting Ingo with an age back to Elo", func() {
			out, _, err := run("convert", "--from", "ingo", "--to", "elo", "--rating", "100", "--age", "30")
			var r model.Rating
			_ = json.Unmarshal([]byte(out), &r)

			convey.Convey("Then it should print Elo 2040", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Rating, convey.ShouldEqual, 2040.0)
			})
		})

		convey.Convey("When converting an unsupported pair", func() {
			out, errOut, err := run("convert", "--from", "elo", "--to", "glicko", "--rating", "1000")

			convey.Convey("Then it should fail with a message and no output", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(out, convey.ShouldBeEmpty)
				convey.So(errOut, convey.ShouldContainSubstring, "unsupported conversion")
			})
		})

		convey.Convey("When a finite Ingo overflows Elo", func() {
			out, errOut, err := run("convert", "--from", "ingo", "--to", "elo", "--rating=-1e308")

			convey.Convey("Then it should report the range error instead of an encoding error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(out, convey.ShouldBeEmpty)
				convey.So(errOut, convey.ShouldContainSubstring, "out of range")
				convey.So(errOut, convey.ShouldNotContainSubstring, "encode output")
			})
		})

		convey.Convey("When a Glicko rating lacks its deviation", func() {
			_, _, err := run("convert", "--from", "glicko", "--to", "glicko", "--rating", "1500")

			convey.Convey("Then it should be rejected", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a required flag is missing", func() {
			_, _, err := run("convert", "--from", "elo", "--rating", "1000")

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the source system is unknown", func() {
			_, errOut, err := run("convert", "--from", "fide", "--to", "elo", "--rating", "2000")

			convey.Convey("Then it should name the flag", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errOut, convey.ShouldContainSubstring, "--from")
			})
		})
	})
}

func TestDefaultsCommand(t *testing.T) {
	convey.Convey("Given the defaults command", t, func() {
		convey.Convey("When asking for one system", func() {
			out, _, err := run("defaults", "trueskill")
			var r model.Rating
			_ = json.Unmarshal([]byte(out), &r)

			convey.Convey("Then it should print that default", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(r.Rating, convey.ShouldEqual, 25.0)
				convey.So(*r.Uncertainty, convey.ShouldEqual, 25.0/3.0)
			})
		})

		convey.Convey("When asking for all systems", func() {
			out, _, err := run("defaults")
			var all map[model.System]model.Rating
			jerr := json.Unmarshal([]byte(out), &all)

			convey.Convey("Then every system but DWZ should be listed", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(jerr, convey.ShouldBeNil)
				convey.So(len(all), convey.ShouldEqual, 5)
				_, hasDWZ := all[model.DWZ]
				convey.So(hasDWZ, convey.ShouldBeFalse)
				convey.So(all[model.Elo].Rating, convey.ShouldEqual, 1000.0)
			})
		})

		convey.Convey("When asking for DWZ", func() {
			_, errOut, err := run("defaults", "dwz")

			convey.Convey("Then it should report the missing default", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errOut, convey.ShouldContainSubstring, "no default")
			})
		})
	})
}

func TestSystemsCommand(t *testing.T) {
	convey.Convey("Given the systems command", t, func() {
		out, _, err := run("systems")
		var body systemsOutput
		jerr := json.Unmarshal([]byte(out), &body)

		convey.Convey("Then it should list systems and conversions", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(jerr, convey.ShouldBeNil)
			convey.So(len(body.Systems), convey.ShouldEqual, 6)
			convey.So(body.Conversions, convey.ShouldResemble, []string{"elo->dwz", "elo->ingo", "ingo->elo"})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the assembled HTTP handler", t, func() {
		if err := logger.Init(); err != nil {
			panic(err)
		}
		cfg := config.New()
		cfg.RateLimitEnabled = false
		svc := service.New(service.WithWorkerCount(1))
		ctx := context.Background()
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()
		h := newHandler(ctx, cfg, svc)

		for _, path := range []string{"/healthz", "/metrics", "/api/v1/systems", "/docs/openapi.yaml", "/docs/index.html"} {
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		}
	})
}

func TestRunServe(t *testing.T) {
	convey.Convey("Given a config listening on an ephemeral port", t, func() {
		cfg := config.New()
		cfg.Addr = "127.0.0.1:0"
		cfg.WorkerCount = 1
		cfg.LogLevel = "error"

		convey.Convey("When the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)
			go func() { done <- runServe(ctx, cfg) }()
			time.Sleep(100 * time.Millisecond)
			cancel()

			convey.Convey("Then it should shut down cleanly", func() {
				select {
				case err := <-done:
					convey.So(err, convey.ShouldBeNil)
				case <-time.After(5 * time.Second):
					convey.So("timeout", convey.ShouldBeEmpty)
				}
			})
		})
	})
}
