package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		Convey("When initializing with defaults", func() {
			err := Init()

			Convey("Then Get should return a logger", func() {
				So(err, ShouldBeNil)
				So(Get(), ShouldNotBeNil)
				So(Sync(), ShouldBeNil)
			})
		})

		Convey("When initializing with an unknown format", func() {
			err := InitWithOptions(Options{Format: "xml"})

			Convey("Then it should fail", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestLoggerJSON(t *testing.T) {
	Convey("Given a JSON logger writing to a buffer", t, func() {
		var buf bytes.Buffer
		So(InitWithOptions(Options{Format: "json", Writer: &buf}), ShouldBeNil)
		SetLevel(0)
		defer func() { _ = SetLevelString("info") }()

		Convey("When logging through a named logger", func() {
			Named("convert").Info(context.Background(), "converted",
				String("from", "elo"),
				Float64("rating", 230),
				Error(errors.New("boom")),
			)

			Convey("Then the record should carry fields, name and source", func() {
				var rec map[string]any
				So(json.Unmarshal(buf.Bytes(), &rec), ShouldBeNil)
				So(rec["msg"], ShouldEqual, "converted")
				So(rec["logger"], ShouldEqual, "convert")
				So(rec["from"], ShouldEqual, "elo")
				So(rec["rating"], ShouldEqual, 230.0)
				So(rec["error"], ShouldEqual, "boom")
				So(rec["source"], ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When the level filters a message", func() {
			So(SetLevelString("error"), ShouldBeNil)
			Get().Debug(context.Background(), "hidden")

			Convey("Then nothing should be written", func() {
				So(buf.Len(), ShouldEqual, 0)
			})
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level names", t, func() {
		Convey("Then known names should be accepted", func() {
			for _, l := range []string{"debug", "INFO", "", "warn", "warning", " error "} {
				So(SetLevelString(l), ShouldBeNil)
			}
		})

		Convey("Then unknown names should be rejected", func() {
			err := SetLevelString("verbose")
			So(err, ShouldNotBeNil)
			So(strings.Contains(err.Error(), "verbose"), ShouldBeTrue)
		})
	})
}
