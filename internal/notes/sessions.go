package notes

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/hyperjump/notegraph/internal/storage"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// Sessions hands out one Store per user, opening it on first use.
type Sessions struct {
	mu      sync.Mutex
	storage storage.Storage
	opts    []Option
	logger  *zap.Logger
	stores  map[string]*Store
}

// NewSessions returns a registry whose stores are opened against st with opts.
func NewSessions(st storage.Storage, logger *zap.Logger, opts ...Option) *Sessions {
	logger = utils.OrNop(logger)
	return &Sessions{
		storage: st,
		opts:    append([]Option{WithLogger(logger)}, opts...),
		logger:  logger,
		stores:  make(map[string]*Store),
	}
}

// Get returns userID's session, opening it if needed.
func (r *Sessions) Get(ctx context.Context, userID string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.stores[userID]; ok {
		return s, nil
	}
	s, err := Open(ctx, r.storage, userID, r.opts...)
	if err != nil {
		return nil, err
	}
	r.stores[userID] = s
	r.logger.Debug("note session opened", zap.String("user", userID))
	return s, nil
}

// End closes and forgets userID's session. It reports whether one was open.
func (r *Sessions) End(userID string) bool {
	r.mu.Lock()
	s, ok := r.stores[userID]
	delete(r.stores, userID)
	r.mu.Unlock()
	if ok {
		s.Close()
		r.logger.Debug("note session closed", zap.String("user", userID))
	}
	return ok
}

// CloseAll ends every open session.
func (r *Sessions) CloseAll() {
	r.mu.Lock()
	stores := r.stores
	r.stores = make(map[string]*Store)
	r.mu.Unlock()
	for _, s := range stores {
		s.Close()
	}
}
