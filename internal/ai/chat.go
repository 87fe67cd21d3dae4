package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/config"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// NoResponse is returned when the chat model replies with no content.
const NoResponse = "No response generated"

// NewChat returns the chat backend selected by cfg.Provider.
func NewChat(ctx context.Context, cfg config.ChatConfig, opts ...Option) (Chat, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return NewGeminiChat(ctx, cfg, opts...)
	case config.ProviderOpenAI, "":
		return NewOpenAIChat(cfg, opts...), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.Provider)
	}
}

// OpenAIChat talks to any OpenAI-compatible chat completion endpoint.
type OpenAIChat struct {
	client *openai.Client
	cfg    config.ChatConfig
	logger *zap.Logger
}

// NewOpenAIChat returns a chat adapter for cfg.BaseURL.
func NewOpenAIChat(cfg config.ChatConfig, opts ...Option) *OpenAIChat {
	o := buildOptions(opts)
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	clientConfig.HTTPClient = o.httpClient
	return &OpenAIChat{
		client: openai.NewClientWithConfig(clientConfig),
		cfg:    cfg,
		logger: o.logger,
	}
}

// Complete sends message with the configured system prompt.
func (c *OpenAIChat) Complete(ctx context.Context, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyInput
	}
	if c.cfg.APIKey == "" {
		return "", fmt.Errorf("%w: chat", ErrNotConfigured)
	}

	var messages []openai.ChatCompletionMessage
	if c.cfg.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: c.cfg.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: message})

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		c.logger.Warn("chat completion failed", zap.String("model", c.cfg.Model), zap.Error(err))
		return "", fmt.Errorf("%w: chat completion: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return NoResponse, nil
	}
	return resp.Choices[0].Message.Content, nil
}
