package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/apisite/internal/logfields"
)

// DefaultDebounce collapses bursts of file events into one refresh.
const DefaultDebounce = 500 * time.Millisecond

// Watch refreshes the site whenever a file in dirs changes, until ctx is
// done. Directories that do not exist are skipped; sub-directories are
// watched recursively as they existed at start.
func (s *Site) Watch(ctx context.Context, debounce time.Duration, dirs ...string) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := 0
	for _, dir := range dirs {
		n, err := addTree(watcher, dir)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watched += n
	}
	if watched == 0 {
		return fmt.Errorf("no watchable directories in %v", dirs)
	}
	s.logger.InfoContext(ctx, "Watching for changes", "dirs", dirs)

	var (
		timer  *time.Timer
		fire   <-chan time.Time
		events int
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ignoredEvent(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_, _ = addTree(watcher, ev.Name)
				}
			}
			s.logger.DebugContext(ctx, "Change detected", logfields.Path(ev.Name), "op", ev.Op.String())
			events++
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			s.logger.InfoContext(ctx, "Refreshing after file changes", "events", events)
			events = 0
			if _, err := s.Refresh(ctx); err != nil && ctx.Err() == nil {
				s.logger.WarnContext(ctx, "Refresh after change failed", logfields.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.ErrorContext(ctx, "File watcher error", logfields.Error(err))
		}
	}
}

// addTree watches dir and its sub-directories. A missing dir adds nothing.
func addTree(w *fsnotify.Watcher, dir string) (int, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return 0, nil
	}
	n := 0
	err := filepath.WalkDir(dir, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return err
		}
		n++
		return nil
	})
	return n, err
}

// ignoredEvent filters editor noise: chmod-only events and dot-files.
func ignoredEvent(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return true
	}
	return strings.HasPrefix(filepath.Base(ev.Name), ".")
}
