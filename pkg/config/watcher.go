package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce groups bursts of writes from editors into one reload.
const DefaultDebounce = 200 * time.Millisecond

// Watcher keeps a resolved Config current while the project's .env or
// .routejump/config.yaml change on disk.
//
// Usage:
//
//	w, err := config.NewWatcher(loader, logger)
//	if err != nil {
//	    return err
//	}
//	if err := w.Start(); err != nil {
//	    return err
//	}
//	defer w.Stop()
//
//	cmd := w.Current().ArtisanCommand
type Watcher struct {
	watcher  *fsnotify.Watcher
	loader   Loader
	logger   *slog.Logger
	debounce time.Duration

	// OnChange is called after every successful reload. Set before Start.
	OnChange func(*Config)

	current *Config
	cfgMu   sync.RWMutex

	timer   *time.Timer
	timerMu sync.Mutex

	stopChan chan struct{}
	stopped  bool
	mu       sync.Mutex
}

// NewWatcher loads the configuration once and prepares a watcher for it.
func NewWatcher(loader Loader, logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	loader.Logger = logger

	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create config watcher: %w", err)
	}

	return &Watcher{
		watcher:  fsw,
		loader:   loader,
		logger:   logger,
		debounce: DefaultDebounce,
		current:  cfg,
		stopChan: make(chan struct{}),
	}, nil
}

// SetDebounce changes the reload delay. Call before Start.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Current returns the most recently loaded configuration.
func (w *Watcher) Current() *Config {
	w.cfgMu.RLock()
	defer w.cfgMu.RUnlock()
	return w.current
}

// Start watches the project root and, if present, its .routejump directory.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("watcher already stopped")
	}
	w.mu.Unlock()

	root := w.loader.Root
	if err := w.watcher.Add(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	w.watchSettingsDir()

	w.logger.Debug("Config watcher started", "root", root)

	go w.eventLoop()
	return nil
}

// Stop ends watching. Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.stopChan)

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.timerMu.Unlock()

	return w.watcher.Close()
}

func (w *Watcher) watchSettingsDir() {
	dir := filepath.Join(w.loader.Root, DirName)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}
	if err := w.watcher.Add(dir); err != nil {
		w.logger.Warn("Failed to watch settings directory", "path", dir, "error", err)
	}
}

func (w *Watcher) eventLoop() {
	for {
		select {
		case <-w.stopChan:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("Config watcher error", "error", err)
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	base := filepath.Base(event.Name)

	// .routejump created after Start: begin watching inside it.
	if base == DirName && event.Has(fsnotify.Create) {
		w.watchSettingsDir()
		w.scheduleReload()
		return
	}

	if !isConfigFile(w.loader.Root, event.Name) {
		return
	}

	w.logger.Debug("Config event", "op", event.Op.String(), "file", event.Name)
	w.scheduleReload()
}

func isConfigFile(root, path string) bool {
	switch filepath.Clean(path) {
	case filepath.Join(root, ".env"), Path(root):
		return true
	}
	return false
}

func (w *Watcher) scheduleReload() {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// Reload re-resolves the configuration immediately.
func (w *Watcher) Reload() (*Config, error) {
	cfg, err := w.loader.Load()
	if err != nil {
		return nil, err
	}

	w.cfgMu.Lock()
	previous := w.current
	w.current = cfg
	w.cfgMu.Unlock()

	if previous == nil || *previous != *cfg {
		w.logger.Info("Configuration reloaded",
			"artisan_command", cfg.ArtisanCommand,
			"source", cfg.Source)
	}
	return cfg, nil
}

func (w *Watcher) reload() {
	w.mu.Lock()
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	cfg, err := w.Reload()
	if err != nil {
		w.logger.Warn("Failed to reload configuration", "error", err)
		return
	}
	if w.OnChange != nil {
		w.OnChange(cfg)
	}
}
