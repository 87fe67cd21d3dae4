package questions

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/internal/watcher"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// Syncer copies seed files into storage.
type Syncer struct {
	store   storage.Storage
	pattern string
	logger  *zap.Logger

	mu      sync.Mutex
	watcher *watcher.Watcher
}

// NewSyncer returns a Syncer reading pattern, a file path or glob. An
// empty pattern uses the built-in question bank.
func NewSyncer(store storage.Storage, pattern string, logger *zap.Logger) *Syncer {
	return &Syncer{store: store, pattern: pattern, logger: utils.OrNop(logger)}
}

// Load reads the configured seed.
func (s *Syncer) Load() ([]models.Question, error) {
	if s.pattern == "" {
		return Default()
	}
	files, err := watcher.Glob(s.pattern)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no question files match %q", s.pattern)
	}
	return LoadFiles(files)
}

// SeedIfEmpty loads the seed when storage holds no questions. It reports
// whether anything was written.
func (s *Syncer) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.store.CountQuestions(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count questions: %w", err)
	}
	if n > 0 {
		return false, nil
	}
	if err := s.Reload(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Reload replaces the stored question bank with the seed contents.
func (s *Syncer) Reload(ctx context.Context) error {
	qs, err := s.Load()
	if err != nil {
		return err
	}
	if err := s.store.ReplaceQuestions(ctx, qs); err != nil {
		return fmt.Errorf("failed to store questions: %w", err)
	}
	s.logger.Info("question bank loaded", zap.Int("questions", len(qs)), zap.String("source", s.source()))
	return nil
}

func (s *Syncer) source() string {
	if s.pattern == "" {
		return "built-in"
	}
	return s.pattern
}

// Watch reloads the question bank whenever a seed file changes. A reload
// that fails leaves the stored questions untouched. It returns once the
// watcher is running; the watcher stops with ctx.
func (s *Syncer) Watch(ctx context.Context, opts ...watcher.Option) error {
	if s.pattern == "" {
		return fmt.Errorf("no seed path to watch")
	}
	reload := func(path string) {
		if err := s.Reload(ctx); err != nil {
			s.logger.Error("question reload failed", zap.String("path", path), zap.Error(err))
		}
	}
	opts = append([]watcher.Option{watcher.WithLogger(s.logger)}, opts...)
	w := watcher.NewWatcher([]string{s.pattern}, reload, reload, opts...)
	if err := w.Start(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	s.watcher = w
	s.mu.Unlock()
	return nil
}

// Stop stops a running watch.
func (s *Syncer) Stop() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()
	if w != nil {
		w.Stop()
	}
}
