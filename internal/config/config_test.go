package config_test

import (
	"testing"

	"github.com/okian/mood2emoji/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.MaxChars, convey.ShouldEqual, 200)
			convey.So(cfg.PositiveThreshold, convey.ShouldEqual, 0.1)
			convey.So(cfg.NegativeThreshold, convey.ShouldEqual, -0.1)
			convey.So(cfg.BadWords, convey.ShouldResemble, []string{"hate", "stupid", "idiot", "dumb", "shut up"})
			convey.So(cfg.WatchConfig, convey.ShouldBeFalse)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("And BadWords does not alias the filter defaults", func() {
			cfg.BadWords[0] = "changed"
			convey.So(config.New().BadWords[0], convey.ShouldEqual, "hate")
		})
	})
}
