package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options on a fresh registry", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))
			So(manager, ShouldNotBeNil)
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test"),
				WithSubsystem("unit"),
				WithHistogramBuckets([]float64{1, 5, 10}),
				WithConstLabels(map[string]string{"env": "test"}),
				WithPrometheusRegistry(registry),
			)
			manager.RecordDetection("happy", "scored")

			Convey("Then metric names follow the namespace", func() {
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				var names []string
				for _, f := range families {
					names = append(names, f.GetName())
				}
				So(names, ShouldContain, "test_unit_detections_total")
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		registry := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(registry))

		Convey("When recording detections", func() {
			m.RecordDetection("sad", "scored")
			m.RecordDetection("sad", "scored")
			m.RecordDetection("neutral", "filtered")

			Convey("Then counters are split by labels", func() {
				So(testutil.ToFloat64(m.detections.WithLabelValues("sad", "scored")), ShouldEqual, 2)
				So(testutil.ToFloat64(m.detections.WithLabelValues("neutral", "filtered")), ShouldEqual, 1)
			})
		})

		Convey("When recording filter hits", func() {
			m.RecordFilterHit("hate")
			So(testutil.ToFloat64(m.filterHits.WithLabelValues("hate")), ShouldEqual, 1)
		})

		Convey("When observing polarity", func() {
			m.ObservePolarity(0.5)
			m.ObservePolarity(-1)
			So(testutil.CollectAndCount(m.polarity), ShouldEqual, 1)
		})
	})
}

func TestGlobalRecording(t *testing.T) {
	Convey("Given the global metrics helpers", t, func() {
		So(func() {
			RecordDetection("happy", "scored")
			ObservePolarity(0.3)
			RecordFilterHit("dumb")
			RecordAnalyzerLatency(0.2)
			RecordAnalyzerError()
			RecordRejectedTooLong()
			RecordTeacherModeView()
			RecordConfigReload("ok")
			RecordHTTPRequest("detect", "POST", "200")
			RecordHTTPRequestDuration("detect", "POST", "200", 1.5)
			RecordErrorByType("client_error", "medium")
			RecordErrorByEndpoint("detect", "POST", "client_error")
			UpdateSystemMemoryUsage(1024)
			UpdateSystemGoroutineCount(8)
		}, ShouldNotPanic)

		Convey("Then the custom registry exposes them", func() {
			families, err := GetRegistry().Gather()
			So(err, ShouldBeNil)
			var sb strings.Builder
			for _, f := range families {
				sb.WriteString(f.GetName())
				sb.WriteString("\n")
			}
			So(sb.String(), ShouldContainSubstring, "mood2emoji_detector_detections_total")
			So(sb.String(), ShouldContainSubstring, "mood2emoji_detector_polarity")
			So(sb.String(), ShouldContainSubstring, "mood2emoji_detector_http_requests_total")
		})
	})
}
