package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// UserHeader carries the caller's user id.
const UserHeader = "X-User-ID"

type userKey struct{}

func (s *Server) withUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := strings.TrimSpace(r.Header.Get(UserHeader))
		if user == "" {
			user = s.config.Notes.DefaultUser
		}
		if user == "" {
			s.respondError(w, http.StatusUnauthorized, "user id is required")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	})
}

func userFrom(ctx context.Context) string {
	u, _ := ctx.Value(userKey{}).(string)
	return u
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

// aiGuard throttles AI requests per user and allows one in flight at a time.
type aiGuard struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
	busy     map[string]bool
}

func newAIGuard(perSecond float64, burst int) *aiGuard {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	if burst <= 0 {
		burst = 1
	}
	return &aiGuard{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
		busy:     make(map[string]bool),
	}
}

// acquire reports why a request may not start, or "" after marking the user busy.
func (g *aiGuard) acquire(user string) string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.busy[user] {
		return "a request is already in progress"
	}
	l, ok := g.limiters[user]
	if !ok {
		l = rate.NewLimiter(g.limit, g.burst)
		g.limiters[user] = l
	}
	if !l.Allow() {
		return "rate limit exceeded"
	}
	g.busy[user] = true
	return ""
}

func (g *aiGuard) release(user string) {
	g.mu.Lock()
	delete(g.busy, user)
	g.mu.Unlock()
}

// withAIGuard rejects AI requests over the user's rate or while another of
// the user's AI requests is in flight.
func (s *Server) withAIGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := userFrom(r.Context())
		if reason := s.guard.acquire(user); reason != "" {
			s.respondError(w, http.StatusTooManyRequests, reason)
			return
		}
		defer s.guard.release(user)
		next.ServeHTTP(w, r)
	})
}
