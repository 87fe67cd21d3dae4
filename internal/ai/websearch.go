package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/hyperjump/notegraph/internal/config"
	"go.uber.org/zap"
)

// SearchHit is one source returned by the research service.
type SearchHit struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

// SearchResult is the decoded research response.
type SearchResult struct {
	Answer  string      `json:"answer"`
	Results []SearchHit `json:"results"`
}

type searchRequest struct {
	Query             string `json:"query"`
	SearchDepth       string `json:"search_depth"`
	IncludeAnswer     bool   `json:"include_answer"`
	IncludeRawContent bool   `json:"include_raw_content"`
	MaxResults        int    `json:"max_results"`
}

// SearchClient calls a Tavily-style web research endpoint.
type SearchClient struct {
	cfg    config.WebSearchConfig
	http   *http.Client
	logger *zap.Logger
}

// NewSearchClient returns a research adapter.
func NewSearchClient(cfg config.WebSearchConfig, opts ...Option) *SearchClient {
	o := buildOptions(opts)
	return &SearchClient{cfg: cfg, http: o.httpClient, logger: o.logger}
}

// Search runs query and returns the results formatted as markdown.
func (c *SearchClient) Search(ctx context.Context, query string) (string, error) {
	res, err := c.Query(ctx, query)
	if err != nil {
		return "", err
	}
	return FormatResearch(query, res), nil
}

// Query runs query and returns the decoded response.
func (c *SearchClient) Query(ctx context.Context, query string) (*SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyInput
	}
	if c.cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: search", ErrNotConfigured)
	}

	body, err := json.Marshal(searchRequest{
		Query:         query,
		SearchDepth:   c.cfg.Depth,
		IncludeAnswer: true,
		MaxResults:    c.cfg.MaxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("search request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: search: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("search returned error status", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: search API error: %s", ErrUpstream, http.StatusText(resp.StatusCode))
	}

	var out SearchResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrUpstream, err)
	}
	return &out, nil
}

// FormatResearch renders a research response as a markdown document.
func FormatResearch(query string, res *SearchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Research Results for: \"%s\"\n\n", query)
	if res == nil {
		return b.String()
	}
	if res.Answer != "" {
		fmt.Fprintf(&b, "## Summary\n%s\n\n", res.Answer)
	}
	if len(res.Results) > 0 {
		b.WriteString("## Sources\n\n")
		for i, r := range res.Results {
			fmt.Fprintf(&b, "### %d. %s\n", i+1, r.Title)
			fmt.Fprintf(&b, "**URL:** %s\n", r.URL)
			fmt.Fprintf(&b, "**Content:** %s\n\n", r.Content)
		}
	}
	return b.String()
}
