package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/mood2emoji/internal/adapters/http/api"
	"github.com/okian/mood2emoji/internal/adapters/http/site"
	"github.com/okian/mood2emoji/internal/adapters/http/swagger"
	app "github.com/okian/mood2emoji/internal/app"
	"github.com/okian/mood2emoji/internal/config"
	"github.com/okian/mood2emoji/internal/domain/filter"
	"github.com/okian/mood2emoji/internal/domain/sentiment"
	"github.com/okian/mood2emoji/pkg/logger"
	"github.com/okian/mood2emoji/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	if err := logger.SetFormat(cfg.LogFormat); err != nil {
		os.Stderr.WriteString("invalid log_format, using text: " + err.Error() + "\n")
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := newService(cfg, loggerInstance)

	notes, err := site.LoadTeacherNotes(cfg.TeacherNotesFile)
	if err != nil {
		loggerInstance.Error(ctx, "failed to load teacher notes", logger.String("path", cfg.TeacherNotesFile), logger.Error(err))
		return
	}

	mux, err := newMux(ctx, svc, notes, loggerInstance)
	if err != nil {
		loggerInstance.Error(ctx, "failed to build routes", logger.Error(err))
		return
	}

	if path := os.Getenv(config.EnvConfigFile); cfg.WatchConfig && path != "" {
		w, err := config.Watch(ctx, path, reloadFunc(ctx, svc, loggerInstance))
		if err != nil {
			loggerInstance.Warn(ctx, "config watch disabled", logger.String("path", path), logger.Error(err))
		} else {
			defer func() { _ = w.Close() }()
			loggerInstance.Info(ctx, "watching config", logger.String("path", path))
		}
	}

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			loggerInstance.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()
	loggerInstance.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	loggerInstance.Info(ctx, "server stopped")
}

// newService builds the detection pipeline from configuration.
func newService(cfg *config.Config, l logger.Logger) *app.Service {
	return app.New(
		app.WithLogger(l.Named("service")),
		app.WithAnalyzer(sentiment.NewLexiconAnalyzer(sentiment.WithLexicon(cfg.Lexicon))),
		app.WithFilter(filter.New(filter.WithWords(cfg.BadWords))),
		app.WithThresholds(cfg.Thresholds()),
		app.WithMaxChars(cfg.MaxChars),
	)
}

// newMux registers the JSON API, the API docs and the browser form.
func newMux(ctx context.Context, svc *app.Service, notes *site.TeacherNotes, l logger.Logger) (*http.ServeMux, error) {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)
	api.NewServer(svc, l.Named("api")).Register(ctx, mux)

	page, err := site.New(svc, site.WithLogger(l.Named("site")), site.WithTeacherNotes(notes))
	if err != nil {
		return nil, err
	}
	page.Register(ctx, mux)
	return mux, nil
}

// reloadFunc applies bad words and thresholds from a changed config file.
// Other keys need a restart. A file that fails validation counts as rejected;
// one that cannot be read or parsed counts as an error.
func reloadFunc(ctx context.Context, svc *app.Service, l logger.Logger) config.ReloadFunc {
	return func(cfg *config.Config, err error) {
		if errors.Is(err, config.ErrInvalidConfig) {
			metrics.RecordConfigReload("rejected")
			l.Warn(ctx, "config reload rejected; keeping current settings", logger.Error(err))
			return
		}
		if err != nil {
			metrics.RecordConfigReload("error")
			l.Warn(ctx, "config reload failed", logger.Error(err))
			return
		}
		if err := svc.Reconfigure(ctx, cfg.BadWords, cfg.Thresholds()); err != nil {
			metrics.RecordConfigReload("rejected")
			return
		}
		metrics.RecordConfigReload("ok")
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
