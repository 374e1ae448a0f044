package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay batches the bursts of events that a single save produces.
const reloadDelay = 200 * time.Millisecond

// watch reloads the parameters whenever the parameter file, or a parameter
// file in the parameter directory, changes. A failed reload is logged and the
// previous parameters stay in use. Subdirectories of a parameter directory
// are not watched. It returns when ctx is cancelled.
func (a *App) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	path := filepath.Clean(a.config.ParamsPath)
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to access %s: %w", path, err)
	}
	// Editors often replace files on save, so a single file is watched
	// through its directory.
	dir, match := path, isParamFile
	if !info.IsDir() {
		dir = filepath.Dir(path)
		match = func(name string) bool { return filepath.Clean(name) == path }
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	a.logger.Info("Watching parameters for changes.", "path", path)

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !match(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			a.logger.Debug("Parameter file event.", "name", event.Name, "op", event.Op.String())
			timer.Reset(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			a.logger.Error("File watcher error.", "error", err)
		case <-timer.C:
			a.reload(ctx)
		}
	}
}

func (a *App) reload(ctx context.Context) {
	set, required, err := a.resolve(ctx)
	if err != nil {
		a.logger.Warn("Parameter reload failed, keeping previous values.", "error", err)
		return
	}
	a.swap(set, required)
	a.logger.Info("Parameters reloaded.", "path", a.config.ParamsPath)
}

func isParamFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl", ".yaml", ".yml":
		return true
	default:
		return false
	}
}
