package config

import (
	"errors"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces bursts of write events from editors that save
// via rename or multiple writes.
const watchDebounce = 200 * time.Millisecond

// ErrNoConfigPath means Watch was called on a manager without a file.
var ErrNoConfigPath = errors.New("config: no file path to watch")

// Watch reloads the snapshot whenever the config file changes. It blocks
// until Close is called or the watcher fails; run it on its own
// goroutine. The parent directory is watched so atomic-rename saves are
// seen too.
func (m *Manager) Watch(log *slog.Logger) error {
	if m.path == "" {
		return ErrNoConfigPath
	}
	if log == nil {
		log = slog.Default()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(m.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	target, err := filepath.Abs(m.path)
	if err != nil {
		return err
	}

	var debounce *time.Timer
	reload := func() {
		if err := m.Reload(); err != nil {
			log.Error("config reload failed", "path", m.path, "error", err)
			return
		}
		log.Info("config reloaded", "path", m.path)
	}

	for {
		select {
		case <-m.stopWatch:
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("config watcher error", "error", err)
		}
	}
}
