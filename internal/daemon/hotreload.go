package daemon

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jmylchreest/tzclock/internal/config"
)

// defaultDebounce coalesces the burst of events editors emit on save.
const defaultDebounce = 200 * time.Millisecond

// ConfigWatcher watches the config file and its themes directory for changes
// and validates new configs before handing them on.
type ConfigWatcher struct {
	mu     sync.RWMutex
	logger *slog.Logger

	configPath string
	themesDir  string
	debounce   time.Duration

	// Current valid config
	currentConfig *config.Config

	// Callbacks
	onReloadCallback func(newConfig *config.Config)
	onErrorCallback  func(err error)

	watcher *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}

	running bool
}

// NewConfigWatcher creates a watcher for the config file at configPath.
// themesDir may be empty.
func NewConfigWatcher(configPath, themesDir string, logger *slog.Logger) *ConfigWatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConfigWatcher{
		logger:     logger,
		configPath: configPath,
		themesDir:  themesDir,
		debounce:   defaultDebounce,
	}
}

// SetDebounce sets how long to wait after the last event before reloading.
func (w *ConfigWatcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// SetReloadCallback sets the callback invoked with each valid new config.
func (w *ConfigWatcher) SetReloadCallback(callback func(newConfig *config.Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onReloadCallback = callback
}

// SetErrorCallback sets the callback invoked when a changed config fails to
// load or validate. The previous config stays current.
func (w *ConfigWatcher) SetErrorCallback(callback func(err error)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onErrorCallback = callback
}

// Start begins watching. Directories are watched rather than files so that
// atomic renames by editors are seen.
func (w *ConfigWatcher) Start(ctx context.Context, initialConfig *config.Config) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dirs := []string{filepath.Dir(w.configPath)}
	if w.themesDir != "" {
		dirs = append(dirs, w.themesDir)
	}
	watched := 0
	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			w.logger.Debug("cannot watch directory", "path", dir, "error", err)
			continue
		}
		watched++
	}
	if watched == 0 {
		_ = watcher.Close()
		return &WatchError{Path: filepath.Dir(w.configPath)}
	}

	w.watcher = watcher
	w.currentConfig = initialConfig
	w.stopCh = make(chan struct{})
	w.doneCh = make(chan struct{})
	w.running = true

	go w.watchLoop(ctx, watcher, w.stopCh, w.doneCh)

	w.logger.Debug("config watcher started", "path", w.configPath, "themes", w.themesDir)
	return nil
}

// Stop stops watching.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	close(w.stopCh)
	doneCh := w.doneCh
	watcher := w.watcher
	w.mu.Unlock()

	<-doneCh
	_ = watcher.Close()
	w.logger.Debug("config watcher stopped")
}

// GetCurrentConfig returns the current valid configuration.
func (w *ConfigWatcher) GetCurrentConfig() *config.Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.currentConfig
}

// watchLoop receives fsnotify events and reloads after a quiet period.
func (w *ConfigWatcher) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, stopCh <-chan struct{}, doneCh chan<- struct{}) {
	defer close(doneCh)

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !w.relevant(event) {
				continue
			}
			w.mu.RLock()
			debounce := w.debounce
			w.mu.RUnlock()
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watcher error", "error", err)

		case <-pending:
			pending = nil
			w.reload()
		}
	}
}

// relevant reports whether an event concerns the config file or a theme.
func (w *ConfigWatcher) relevant(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}
	if filepath.Clean(event.Name) == filepath.Clean(w.configPath) {
		return true
	}
	return w.themesDir != "" &&
		filepath.Dir(event.Name) == filepath.Clean(w.themesDir) &&
		filepath.Ext(event.Name) == ".css"
}

// reload loads and validates the config file.
func (w *ConfigWatcher) reload() {
	w.mu.RLock()
	onReload := w.onReloadCallback
	onError := w.onErrorCallback
	w.mu.RUnlock()

	newConfig, err := config.LoadConfig(w.configPath)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous config", "path", w.configPath, "error", err)
		if onError != nil {
			onError(err)
		}
		return
	}

	w.mu.Lock()
	w.currentConfig = newConfig
	w.mu.Unlock()

	w.logger.Info("config reloaded", "path", w.configPath)
	if onReload != nil {
		onReload(newConfig)
	}
}

// WatchError is returned when no directory could be watched.
type WatchError struct {
	Path string
}

func (e *WatchError) Error() string {
	return "no watchable directory for " + e.Path
}
