package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/okian/mood2emoji/internal/adapters/http/site"
	"github.com/okian/mood2emoji/internal/config"
	"github.com/okian/mood2emoji/internal/domain/mood"
	"github.com/okian/mood2emoji/pkg/logger"
	"github.com/okian/mood2emoji/pkg/metrics"
	"github.com/smartystreets/goconvey/convey"
)

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When testing configuration loading", func() {
			_ = os.Setenv("MOOD_ADDR", ":8080")
			_ = os.Setenv("MOOD_MAX_CHARS", "50")
			_ = os.Setenv("MOOD_BAD_WORDS", "meanie")
			defer func() {
				_ = os.Unsetenv("MOOD_ADDR")
				_ = os.Unsetenv("MOOD_MAX_CHARS")
				_ = os.Unsetenv("MOOD_BAD_WORDS")
			}()

			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")

			convey.Convey("Then the service honors it", func() {
				svc := newService(cfg, logger.Nop())
				convey.So(svc.MaxChars(), convey.ShouldEqual, 50)

				res, err := svc.Detect(context.Background(), "you meanie")
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Reason, convey.ShouldEqual, mood.ReasonFiltered)

				res, err = svc.Detect(context.Background(), "I hate rain")
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.Reason, convey.ShouldEqual, mood.ReasonScored)
			})
		})
	})
}

func TestNewMux(t *testing.T) {
	convey.Convey("Given the full route table", t, func() {
		ctx := context.Background()
		svc := newService(config.New(), logger.Nop())
		notes, err := site.LoadTeacherNotes("")
		convey.So(err, convey.ShouldBeNil)

		mux, err := newMux(ctx, svc, notes, logger.Nop())
		convey.So(err, convey.ShouldBeNil)

		for _, path := range []string{"/", "/healthz", "/stats", "/openapi.yaml", "/api-docs", "/static/style.css"} {
			req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
		}

		convey.Convey("Then the JSON API answers", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/detect", strings.NewReader(`{"text":"This is terrible."}`))
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			convey.So(w.Code, convey.ShouldEqual, http.StatusOK)
			convey.So(w.Body.String(), convey.ShouldContainSubstring, mood.EmojiSad)
		})
	})
}

func TestReloadFunc(t *testing.T) {
	convey.Convey("Given a running service", t, func() {
		ctx := context.Background()
		svc := newService(config.New(), logger.Nop())
		reload := reloadFunc(ctx, svc, logger.Nop())

		convey.Convey("A valid config swaps words and thresholds", func() {
			before := reloads("ok")
			cfg := config.New()
			cfg.BadWords = []string{"grumpy"}
			cfg.PositiveThreshold = 0.6
			reload(cfg, nil)

			convey.So(reloads("ok"), convey.ShouldEqual, before+1)
			convey.So(svc.Thresholds().Positive, convey.ShouldEqual, 0.6)
			convey.So(svc.Filter().Contains("so grumpy"), convey.ShouldBeTrue)
			convey.So(svc.Filter().Contains("I hate it"), convey.ShouldBeFalse)
		})

		convey.Convey("Invalid thresholds are rejected", func() {
			before := reloads("rejected")
			cfg := config.New()
			cfg.PositiveThreshold, cfg.NegativeThreshold = -0.5, 0.5
			reload(cfg, nil)

			convey.So(reloads("rejected"), convey.ShouldEqual, before+1)
			convey.So(svc.Thresholds(), convey.ShouldResemble, mood.DefaultThresholds())
		})

		convey.Convey("A file failing validation counts as rejected", func() {
			before := reloads("rejected")
			reload(nil, fmt.Errorf("%w: negative_threshold above positive_threshold", config.ErrInvalidConfig))

			convey.So(reloads("rejected"), convey.ShouldEqual, before+1)
			convey.So(svc.Thresholds(), convey.ShouldResemble, mood.DefaultThresholds())
		})

		convey.Convey("Load errors are counted", func() {
			before := reloads("error")
			reload(nil, config.ErrLoadConfig)
			convey.So(reloads("error"), convey.ShouldEqual, before+1)
		})
	})
}

func TestWatchedReload(t *testing.T) {
	convey.Convey("Given a watched config file", t, func() {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		path := filepath.Join(t.TempDir(), "mood.yaml")
		convey.So(os.WriteFile(path, []byte("positive_threshold: 0.1\n"), 0o600), convey.ShouldBeNil)

		svc := newService(config.New(), logger.Nop())
		before := reloads("rejected")
		w, err := config.Watch(ctx, path, reloadFunc(ctx, svc, logger.Nop()))
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = w.Close() }()

		convey.Convey("When thresholds are written the wrong way round", func() {
			bad := []byte("positive_threshold: 0.1\nnegative_threshold: 0.5\n")
			convey.So(os.WriteFile(path, bad, 0o600), convey.ShouldBeNil)

			convey.Convey("Then the reload is rejected and settings stay", func() {
				deadline := time.Now().Add(5 * time.Second)
				for reloads("rejected") == before && time.Now().Before(deadline) {
					time.Sleep(20 * time.Millisecond)
				}
				convey.So(reloads("rejected"), convey.ShouldBeGreaterThan, before)
				convey.So(svc.Thresholds(), convey.ShouldResemble, mood.DefaultThresholds())
			})
		})
	})
}

func TestUpdateSystemMetrics(t *testing.T) {
	convey.Convey("Updating system metrics does not panic", t, func() {
		convey.So(updateSystemMetrics, convey.ShouldNotPanic)
	})
}

// reloads reads the config reload counter for outcome from the metrics registry.
func reloads(outcome string) float64 {
	families, err := metrics.GetRegistry().Gather()
	if err != nil {
		return -1
	}
	for _, mf := range families {
		if mf.GetName() != "mood2emoji_detector_config_reloads_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "outcome" && l.GetValue() == outcome {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}
