// Package ai adapts the chat, web search and text generation services used
// by the assistant. Each adapter issues one request per call with no retries.
package ai

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hyperjump/notegraph/pkg/utils"
	"go.uber.org/zap"
)

var (
	// ErrUpstream wraps any failure reported by a remote AI service.
	ErrUpstream = errors.New("upstream AI service failed")
	// ErrEmptyInput is returned when the query, message or prompt is blank.
	ErrEmptyInput = errors.New("input is required")
	// ErrNotConfigured is returned when an adapter has no API key.
	ErrNotConfigured = errors.New("API key not configured")
)

// FailureMessage is the single user-facing text for failed AI requests.
const FailureMessage = "AI could not produce an answer"

// Chat sends one user message to a chat model and returns the reply.
type Chat interface {
	Complete(ctx context.Context, message string) (string, error)
}

// Option configures an adapter.
type Option func(*options)

type options struct {
	logger     *zap.Logger
	httpClient *http.Client
}

// WithLogger sets the adapter logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithHTTPClient sets the HTTP client used for upstream calls.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithTimeout uses an HTTP client bounded by d. Zero leaves the default client.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.httpClient = &http.Client{Timeout: d}
		}
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = utils.OrNop(o.logger)
	if o.httpClient == nil {
		o.httpClient = http.DefaultClient
	}
	return o
}
