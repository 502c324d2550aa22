package loadcheck

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/mood2emoji/internal/adapters/http/api"
	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func newServer() *httptest.Server {
	mux := http.NewServeMux()
	api.NewServer(app.New(), nil).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func testConfig(url string) *Config {
	return &Config{BaseURL: url, Requests: 60, Workers: 4, Timeout: 5 * time.Second}
}

func TestRun(t *testing.T) {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		t.Fatal(err)
	}

	Convey("Given a real server", t, func() {
		srv := newServer()
		defer srv.Close()

		Convey("Every sample gets its expected mood", func() {
			stats, err := Run(context.Background(), testConfig(srv.URL))
			So(err, ShouldBeNil)
			So(stats.Generated, ShouldEqual, 60)
			So(stats.Submitted, ShouldEqual, 60)
			So(stats.Matched, ShouldEqual, 60)
			So(stats.Failed, ShouldEqual, 0)
		})

		Convey("Invalid settings are rejected", func() {
			cfg := testConfig(srv.URL)
			cfg.Workers = 0
			_, err := Run(context.Background(), cfg)
			So(errors.Is(err, ErrConfig), ShouldBeTrue)
		})
	})

	Convey("Given a server that answers wrongly", t, func() {
		stub := http.NewServeMux()
		stub.HandleFunc("/healthz", func(http.ResponseWriter, *http.Request) {})
		stub.HandleFunc("/stats", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(app.Stats{})
		})
		stub.HandleFunc("/api/detect", func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(mood.Thresholds{}.Scored(1))
		})
		srv := httptest.NewServer(stub)
		defer srv.Close()

		stats, err := Run(context.Background(), testConfig(srv.URL))
		So(errors.Is(err, ErrMismatch), ShouldBeTrue)
		So(errors.Is(err, ErrStats), ShouldBeTrue)
		So(stats.Mismatched, ShouldBeGreaterThan, 0)
	})

	Convey("Given an unhealthy server", t, func() {
		srv := httptest.NewServer(http.NotFoundHandler())
		defer srv.Close()

		_, err := Run(context.Background(), testConfig(srv.URL))
		So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
	})
}

func TestGenerateRequests(t *testing.T) {
	if err := logger.InitWithWriter(io.Discard, logger.FormatText); err != nil {
		t.Fatal(err)
	}

	Convey("Requests carry unique ids and known samples", t, func() {
		stats := &Stats{}
		reqs, err := generateRequests(context.Background(), 20, DefaultSamples, stats)
		So(err, ShouldBeNil)
		So(reqs, ShouldHaveLength, 20)
		So(stats.Generated, ShouldEqual, 20)

		seen := map[string]bool{}
		for _, r := range reqs {
			So(seen[r.ID], ShouldBeFalse)
			seen[r.ID] = true
			So(DefaultSamples, ShouldContain, r.Sample)
		}
	})

	Convey("An empty sample set is an error", t, func() {
		_, err := generateRequests(context.Background(), 1, nil, &Stats{})
		So(errors.Is(err, ErrConfig), ShouldBeTrue)
	})
}
