package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/hyperjump/notegraph/internal/config"
	"go.uber.org/zap"
)

// minGeneratedRunes is the shortest generation kept as-is.
const minGeneratedRunes = 10

// UnavailableMessage is returned to callers when generation fails outright.
const UnavailableMessage = "The AI text generation service is temporarily unavailable. Please try again later or use the other AI features available."

// Generation is the outcome of a text generation call.
type Generation struct {
	Text string
	// Loading is set when the upstream model was still loading and Text is a placeholder.
	Loading bool
}

type generateRequest struct {
	Inputs     string             `json:"inputs"`
	Parameters generateParameters `json:"parameters"`
	Options    generateOptions    `json:"options"`
}

type generateParameters struct {
	MaxNewTokens   int      `json:"max_new_tokens"`
	Temperature    float64  `json:"temperature"`
	DoSample       bool     `json:"do_sample"`
	ReturnFullText bool     `json:"return_full_text"`
	Stop           []string `json:"stop"`
}

type generateOptions struct {
	WaitForModel bool `json:"wait_for_model"`
	UseCache     bool `json:"use_cache"`
}

// generatedFields covers the object shapes the inference API returns.
type generatedFields struct {
	GeneratedText string `json:"generated_text"`
	Text          string `json:"text"`
}

func (g generatedFields) pick() string {
	if g.GeneratedText != "" {
		return strings.TrimSpace(g.GeneratedText)
	}
	return strings.TrimSpace(g.Text)
}

// GenerateClient calls a Hugging Face style text generation endpoint.
type GenerateClient struct {
	cfg    config.GenerateConfig
	http   *http.Client
	logger *zap.Logger
}

// NewGenerateClient returns a generation adapter.
func NewGenerateClient(cfg config.GenerateConfig, opts ...Option) *GenerateClient {
	o := buildOptions(opts)
	return &GenerateClient{cfg: cfg, http: o.httpClient, logger: o.logger}
}

// Generate sends prompt to the model. A 503 from upstream is treated as
// success with a loading placeholder.
func (c *GenerateClient) Generate(ctx context.Context, prompt string) (*Generation, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyInput
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: generate", ErrNotConfigured)
	}

	body, err := json.Marshal(generateRequest{
		Inputs: prompt,
		Parameters: generateParameters{
			MaxNewTokens: c.cfg.MaxNewTokens,
			Temperature:  c.cfg.Temperature,
			DoSample:     true,
			Stop:         []string{"</s>", "\n\n"},
		},
		Options: generateOptions{WaitForModel: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("generate request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: generate: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read generate response: %v", ErrUpstream, err)
	}

	if resp.StatusCode == http.StatusServiceUnavailable {
		c.logger.Info("generation model loading, returning placeholder")
		return &Generation{Text: LoadingPlaceholder(prompt), Loading: true}, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("generate returned error status", zap.Int("status", resp.StatusCode), zap.ByteString("body", data))
		return nil, fmt.Errorf("%w: generate API error: %d %s", ErrUpstream, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	text := stripEcho(ParseGenerated(data), prompt)
	if utf8.RuneCountInString(text) < minGeneratedRunes {
		text = EducationalPlaceholder(prompt)
	}
	return &Generation{Text: text}, nil
}

// ParseGenerated extracts generated text from a response body. It accepts,
// in order, a list whose first element carries generated_text or text, or a
// single object carrying either field. Anything else yields "".
func ParseGenerated(data []byte) string {
	var list []generatedFields
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			return ""
		}
		return list[0].pick()
	}
	var obj generatedFields
	if err := json.Unmarshal(data, &obj); err == nil {
		return obj.pick()
	}
	return ""
}

func stripEcho(text, prompt string) string {
	if text == "" {
		return text
	}
	if i := strings.Index(text, prompt); i >= 0 {
		return strings.TrimSpace(text[i+len(prompt):])
	}
	return text
}

// LoadingPlaceholder is the text returned while the model is loading.
func LoadingPlaceholder(prompt string) string {
	return fmt.Sprintf("Generated response for: \"%s\"\n\nThis is an educational response about your query. The AI model is currently loading - please try again in a moment for a more detailed response.", prompt)
}

// EducationalPlaceholder replaces generations too short to be useful.
func EducationalPlaceholder(prompt string) string {
	return fmt.Sprintf("Educational response for: \"%s\"\n\nThis topic involves important concepts that would benefit from further exploration. Consider researching the fundamentals and practical applications of this subject.", prompt)
}
