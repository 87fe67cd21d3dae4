package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiChat talks to the Gemini API.
type GeminiChat struct {
	client *genai.Client
	cfg    config.ChatConfig
	logger *zap.Logger
}

// NewGeminiChat returns a Gemini chat adapter. Without an API key the
// adapter is created but every call fails with ErrNotConfigured.
func NewGeminiChat(ctx context.Context, cfg config.ChatConfig, opts ...Option) (*GeminiChat, error) {
	o := buildOptions(opts)
	g := &GeminiChat{cfg: cfg, logger: o.logger}
	if cfg.APIKey == "" {
		return g, nil
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: o.httpClient,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	g.client = client
	return g, nil
}

// Complete sends message with the configured system instruction.
func (g *GeminiChat) Complete(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyInput
	}
	if g.client == nil {
		return "", fmt.Errorf("%w: chat", ErrNotConfigured)
	}

	gc := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.cfg.Temperature),
	}
	if g.cfg.MaxTokens > 0 {
		gc.MaxOutputTokens = int32(g.cfg.MaxTokens)
	}
	if g.cfg.SystemPrompt != "" {
		gc.SystemInstruction = genai.NewContentFromText(g.cfg.SystemPrompt, genai.RoleUser)
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, genai.Text(message), gc)
	if err != nil {
		g.logger.Warn("gemini generate failed", zap.String("model", g.cfg.Model), zap.Error(err))
		return "", fmt.Errorf("%w: gemini: %v", ErrUpstream, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return NoResponse, nil
	}
	text := resp.Text()
	if text == "" {
		return NoResponse, nil
	}
	return text, nil
}
