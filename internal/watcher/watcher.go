// Package watcher reports changes to files matching glob patterns, using
// fsnotify with per-file debouncing.
package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/pkg/utils"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher watches the directories holding files that match its patterns
// and invokes callbacks when a matching file changes or disappears.
type Watcher struct {
	patterns []string
	onChange func(path string)
	onRemove func(path string)
	debounce time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	timers   map[string]*time.Timer
	dirs     []string
	done     chan struct{}
	started  bool
	stopOnce sync.Once
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets a logger for debug output.
func WithLogger(l *zap.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// WithDebounce sets how long a file must be quiet before onChange fires.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// NewWatcher creates a watcher for patterns, which are file paths or
// doublestar globs such as "seeds/**/*.yaml". Relative patterns are
// resolved against the working directory.
func NewWatcher(patterns []string, onChange, onRemove func(path string), opts ...Option) *Watcher {
	w := &Watcher{
		onChange: onChange,
		onRemove: onRemove,
		debounce: defaultDebounce,
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, p := range patterns {
		if abs, err := filepath.Abs(p); err == nil {
			p = abs
		}
		w.patterns = append(w.patterns, filepath.ToSlash(filepath.Clean(p)))
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = utils.OrNop(w.logger)
	return w
}

// Start begins watching. It runs until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.started {
		return nil
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	for _, p := range w.patterns {
		if err := w.addPatternLocked(fw, p); err != nil {
			_ = fw.Close()
			w.dirs = nil
			return err
		}
	}
	w.watcher = fw
	w.started = true
	w.logger.Debug("watcher started", zap.Strings("patterns", w.patterns), zap.Strings("dirs", w.dirs))
	go w.run(ctx, fw)
	return nil
}

// addPatternLocked watches the static base directory of pattern, and every
// directory below it when the pattern spans directories.
func (w *Watcher) addPatternLocked(fw *fsnotify.Watcher, pattern string) error {
	base, rest := doublestar.SplitPattern(pattern)
	if rest == "" || !strings.ContainsAny(rest, "*?[{") {
		base = filepath.ToSlash(filepath.Dir(filepath.FromSlash(pattern)))
	}
	root := filepath.FromSlash(base)
	if _, err := os.Stat(root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !strings.Contains(rest, "**") {
		return w.addDirLocked(fw, root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.addDirLocked(fw, path)
		}
		return nil
	})
}

func (w *Watcher) addDirLocked(fw *fsnotify.Watcher, dir string) error {
	for _, d := range w.dirs {
		if d == dir {
			return nil
		}
	}
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dirs = append(w.dirs, dir)
	return nil
}

func (w *Watcher) run(ctx context.Context, fw *fsnotify.Watcher) {
	for {
		select {
		case <-ctx.Done():
			w.Stop()
			return
		case <-w.done:
			return
		case ev, ok := <-fw.Events:
			if !ok {
				return
			}
			w.handleEvent(fw, ev)
		case err, ok := <-fw.Errors:
			if !ok {
				return
			}
			w.logger.Debug("watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(fw *fsnotify.Watcher, ev fsnotify.Event) {
	path := ev.Name
	switch {
	case ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write):
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.handleNewDirectory(fw, path)
			return
		}
		if w.Matches(path) {
			w.logger.Debug("watched file changed", zap.String("op", ev.Op.String()), zap.String("path", path))
			w.schedule(path)
		}
	case ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename):
		if !w.Matches(path) {
			return
		}
		w.cancel(path)
		w.logger.Debug("watched file removed", zap.String("path", path))
		if w.onRemove != nil {
			w.onRemove(path)
		}
	}
}

// handleNewDirectory starts watching dir when a "**" pattern could match
// files inside it, and reports files already there.
func (w *Watcher) handleNewDirectory(fw *fsnotify.Watcher, dir string) {
	if !w.coversDir(dir) {
		return
	}
	_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			w.mu.Lock()
			if w.started {
				if err := w.addDirLocked(fw, path); err != nil {
					w.logger.Debug("watcher failed to add directory", zap.String("path", path), zap.Error(err))
				}
			}
			w.mu.Unlock()
			return nil
		}
		if w.Matches(path) {
			w.schedule(path)
		}
		return nil
	})
}

func (w *Watcher) coversDir(dir string) bool {
	dir = filepath.ToSlash(dir)
	for _, p := range w.patterns {
		base, rest := doublestar.SplitPattern(p)
		if strings.Contains(rest, "**") && (dir == base || strings.HasPrefix(dir, base+"/")) {
			return true
		}
	}
	return false
}

// Matches reports whether path matches any of the watched patterns.
func (w *Watcher) Matches(path string) bool {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.ToSlash(filepath.Clean(path))
	for _, p := range w.patterns {
		if ok, err := doublestar.Match(p, path); err == nil && ok {
			return true
		}
	}
	return false
}

// Files returns the existing files matching the watched patterns.
func (w *Watcher) Files() ([]string, error) {
	return Glob(w.patterns...)
}

// Glob expands patterns to the sorted, de-duplicated set of matching files.
func Glob(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(filepath.FromSlash(p), doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				out = append(out, m)
			}
		}
	}
	return out, nil
}

func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.started {
		return
	}
	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		if w.onChange != nil {
			w.onChange(path)
		}
	})
}

func (w *Watcher) cancel(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Stop()
		delete(w.timers, path)
	}
}

// Dirs returns the directories currently watched.
func (w *Watcher) Dirs() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.dirs...)
}

// Stop stops the watcher and releases resources.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.started {
		w.mu.Unlock()
		return
	}
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	_ = w.watcher.Close()
	w.watcher = nil
	w.started = false
	w.mu.Unlock()
	w.stopOnce.Do(func() { close(w.done) })
}
