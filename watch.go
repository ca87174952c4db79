package folio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events into one rebuild.
const DefaultDebounce = 300 * time.Millisecond

// WatchDirs returns the directories whose changes trigger a rebuild. The
// template is not watched: the root route overwrites it on every build.
func (s *Site) WatchDirs() []string {
	return []string{s.Config.BlogPath(), s.Config.PortfolioPath()}
}

// Watch calls rebuild after content changes until ctx is cancelled. Events
// arriving within debounce of each other cause a single rebuild, and rebuilds
// never overlap.
func (s *Site) Watch(ctx context.Context, debounce time.Duration, rebuild func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer watcher.Close()

	for _, dir := range s.WatchDirs() {
		if err := addDirsRecursive(watcher, dir); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				s.logger.Warn("watch directory missing", attrPath(dir))
				continue
			}
			return err
		}
	}

	rebuildReq, trigger := setupRebuildDebouncer(debounce)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) && isDir(ev.Name) {
				if err := addDirsRecursive(watcher, ev.Name); err != nil {
					s.logger.Warn("watch new directory", attrPath(ev.Name), attrError(err))
				}
			}
			s.logger.Debug("content changed", attrFile(ev.Name), slog.String("op", ev.Op.String()))
			trigger()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watcher error", attrError(err))
		case <-rebuildReq:
			rebuild(ctx)
		}
	}
}

func relevantEvent(ev fsnotify.Event) bool {
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}

func setupRebuildDebouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	rebuildReq := make(chan struct{}, 1)

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case rebuildReq <- struct{}{}:
			default:
			}
		})
	}
	return rebuildReq, trigger
}

func addDirsRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
