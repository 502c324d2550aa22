package config

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/knadh/koanf/providers/file"
)

// ReloadFunc receives a freshly loaded Config, or the error that prevented it.
type ReloadFunc func(cfg *Config, err error)

// Watcher reloads the configuration whenever the YAML file changes.
type Watcher struct {
	path     string
	provider *file.File
	once     sync.Once
	closeErr error
}

// Watch starts watching path and calls onReload after every change. The watch
// ends when ctx is cancelled or Close is called.
func Watch(ctx context.Context, path string, onReload ReloadFunc) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: watch requires a config file", ErrInvalidConfig)
	}
	if onReload == nil {
		return nil, errors.New("config: nil reload callback")
	}

	w := &Watcher{path: path, provider: file.Provider(path)}
	err := w.provider.Watch(func(_ interface{}, werr error) {
		if werr != nil {
			onReload(nil, fmt.Errorf("%w: watch %s: %w", ErrLoadConfig, path, werr))
			return
		}
		onReload(LoadFile(ctx, path))
	})
	if err != nil {
		return nil, fmt.Errorf("%w: watch %s: %w", ErrLoadConfig, path, err)
	}

	go func() {
		<-ctx.Done()
		_ = w.Close()
	}()
	return w, nil
}

// Close stops the watch. Calling it more than once is safe.
func (w *Watcher) Close() error {
	if w == nil || w.provider == nil {
		return nil
	}
	w.once.Do(func() {
		if err := w.provider.Unwatch(); err != nil {
			w.closeErr = fmt.Errorf("config: unwatch %s: %w", w.path, err)
		}
	})
	return w.closeErr
}
