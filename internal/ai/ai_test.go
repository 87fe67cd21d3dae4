package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/notegraph/internal/config"
	"github.com/hyperjump/notegraph/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatConfig(baseURL string) config.ChatConfig {
	return config.ChatConfig{
		Provider:     config.ProviderOpenAI,
		BaseURL:      baseURL,
		APIKey:       "test-key",
		Model:        "llama3-8b-8192",
		SystemPrompt: "You are a tutor.",
		MaxTokens:    1024,
		Temperature:  0.7,
	}
}

func TestOpenAIChat_Complete(t *testing.T) {
	var got struct {
		Model     string `json:"model"`
		MaxTokens int    `json:"max_tokens"`
		Messages  []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":"A stack is LIFO."},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	chat := NewOpenAIChat(chatConfig(srv.URL))
	out, err := chat.Complete(context.Background(), "What is a stack?")
	require.NoError(t, err)
	assert.Equal(t, "A stack is LIFO.", out)

	assert.Equal(t, "llama3-8b-8192", got.Model)
	assert.Equal(t, 1024, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "What is a stack?", got.Messages[1].Content)
}

func TestOpenAIChat_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"x","object":"chat.completion","choices":[]}`))
	}))
	defer srv.Close()

	out, err := NewOpenAIChat(chatConfig(srv.URL)).Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, NoResponse, out)
}

func TestOpenAIChat_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	}))
	defer srv.Close()

	_, err := NewOpenAIChat(chatConfig(srv.URL)).Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = NewOpenAIChat(chatConfig(srv.URL)).Complete(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrEmptyInput)

	cfg := chatConfig(srv.URL)
	cfg.APIKey = ""
	_, err = NewOpenAIChat(cfg).Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestNewChat(t *testing.T) {
	c, err := NewChat(context.Background(), chatConfig("http://localhost"))
	require.NoError(t, err)
	assert.IsType(t, &OpenAIChat{}, c)

	c, err = NewChat(context.Background(), config.ChatConfig{Provider: config.ProviderGemini, Model: "gemini-2.0-flash"})
	require.NoError(t, err)
	_, err = c.Complete(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewChat(context.Background(), config.ChatConfig{Provider: "carrier-pigeon"})
	assert.Error(t, err)
}

func TestSearchClient(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer tv-key", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"answer":"Heaps are trees.","results":[{"title":"Heap","url":"https://example.com/heap","content":"A heap is..."}]}`))
	}))
	defer srv.Close()

	c := NewSearchClient(config.WebSearchConfig{URL: srv.URL, APIKey: "tv-key", MaxResults: 5, Depth: "advanced"})
	out, err := c.Search(context.Background(), "binary heap")
	require.NoError(t, err)

	assert.Equal(t, "binary heap", got["query"])
	assert.Equal(t, "advanced", got["search_depth"])
	assert.Equal(t, true, got["include_answer"])
	assert.Equal(t, float64(5), got["max_results"])

	want := "# Research Results for: \"binary heap\"\n\n" +
		"## Summary\nHeaps are trees.\n\n" +
		"## Sources\n\n" +
		"### 1. Heap\n**URL:** https://example.com/heap\n**Content:** A heap is...\n\n"
	assert.Equal(t, want, out)
}

func TestSearchClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewSearchClient(config.WebSearchConfig{URL: srv.URL, APIKey: "k"})
	_, err := c.Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = c.Search(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = NewSearchClient(config.WebSearchConfig{URL: srv.URL}).Search(context.Background(), "q")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestFormatResearch_NoAnswer(t *testing.T) {
	out := FormatResearch("q", &SearchResult{})
	assert.Equal(t, "# Research Results for: \"q\"\n\n", out)
}

func generateServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 300, req.Parameters.MaxNewTokens)
		assert.True(t, req.Options.WaitForModel)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func generateConfig(url string) config.GenerateConfig {
	return config.GenerateConfig{URL: url, APIKey: "hf", MaxNewTokens: 300, Temperature: 0.7}
}

func TestGenerateClient(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
		load   bool
	}{
		{
			name:   "list with echoed prompt",
			status: http.StatusOK,
			body:   `[{"generated_text":"Summarize: graphs  Graphs model pairwise relations."}]`,
			want:   "Graphs model pairwise relations.",
		},
		{
			name:   "object text field",
			status: http.StatusOK,
			body:   `{"text":"  A summary that is long enough.  "}`,
			want:   "A summary that is long enough.",
		},
		{
			name:   "too short",
			status: http.StatusOK,
			body:   `[{"generated_text":"ok"}]`,
			want:   EducationalPlaceholder("Summarize: graphs"),
		},
		{
			name:   "unknown shape",
			status: http.StatusOK,
			body:   `"just a string"`,
			want:   EducationalPlaceholder("Summarize: graphs"),
		},
		{
			name:   "model loading",
			status: http.StatusServiceUnavailable,
			body:   `{"error":"Model is loading"}`,
			want:   LoadingPlaceholder("Summarize: graphs"),
			load:   true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := generateServer(t, tt.status, tt.body)
			defer srv.Close()

			g, err := NewGenerateClient(generateConfig(srv.URL)).Generate(context.Background(), "Summarize: graphs")
			require.NoError(t, err)
			assert.Equal(t, tt.want, g.Text)
			assert.Equal(t, tt.load, g.Loading)
		})
	}
}

func TestGenerateClient_LoadingEmbedsPrompt(t *testing.T) {
	srv := generateServer(t, http.StatusServiceUnavailable, "")
	defer srv.Close()

	g, err := NewGenerateClient(generateConfig(srv.URL)).Generate(context.Background(), "explain tries")
	require.NoError(t, err)
	assert.NotEmpty(t, g.Text)
	assert.Contains(t, g.Text, `"explain tries"`)
}

func TestGenerateClient_Errors(t *testing.T) {
	srv := generateServer(t, http.StatusInternalServerError, "oops")
	defer srv.Close()

	_, err := NewGenerateClient(generateConfig(srv.URL)).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrUpstream)

	_, err = NewGenerateClient(generateConfig(srv.URL)).Generate(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = NewGenerateClient(config.GenerateConfig{URL: srv.URL}).Generate(context.Background(), "p")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestParseGenerated(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`[{"generated_text":" a "}]`, "a"},
		{`[{"generated_text":"","text":"t"}]`, "t"},
		{`{"generated_text":"g"}`, "g"},
		{`{"text":"x"}`, "x"},
		{`[]`, ""},
		{`42`, ""},
		{`not json`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseGenerated([]byte(tt.body)))
		})
	}
}

type fakeChat struct{ reply string }

func (f fakeChat) Complete(_ context.Context, m string) (string, error) { return f.reply + m, nil }

type fakeResearch struct{ err error }

func (f fakeResearch) Search(_ context.Context, q string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "research:" + q, nil
}

type fakeGenerate struct{ prompt string }

func (f *fakeGenerate) Generate(_ context.Context, p string) (*Generation, error) {
	f.prompt = p
	return &Generation{Text: "gen"}, nil
}

type fakeCreator struct {
	title, content, folder, source string
}

func (f *fakeCreator) CreateAI(_ context.Context, title, content, folder, source string) (*models.Note, error) {
	f.title, f.content, f.folder, f.source = title, content, folder, source
	return &models.Note{ID: "n1", Title: title, Content: content, Folder: folder}, nil
}

func TestAssistant_Ask(t *testing.T) {
	gen := &fakeGenerate{}
	a := NewAssistant(fakeChat{reply: "chat:"}, fakeResearch{}, gen, nil)
	ctx := context.Background()

	out, err := a.Ask(ctx, ModeExplain, "trees")
	require.NoError(t, err)
	assert.Equal(t, "chat:trees", out)

	out, err = a.Ask(ctx, ModeResearch, "tries")
	require.NoError(t, err)
	assert.Equal(t, "research:tries", out)

	out, err = a.Ask(ctx, ModeSummarize, "heaps")
	require.NoError(t, err)
	assert.Equal(t, "gen", out)
	assert.Equal(t, "Summarize: heaps", gen.prompt)

	_, err = a.Ask(ctx, ModeExplain, " ")
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = a.Ask(ctx, Mode("studyplan"), "x")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestAssistant_FailureMessage(t *testing.T) {
	a := NewAssistant(nil, fakeResearch{err: ErrUpstream}, nil, nil)

	_, err := a.Ask(context.Background(), ModeResearch, "q")
	require.Error(t, err)
	assert.Equal(t, FailureMessage, UserMessage(err))

	_, err = a.Ask(context.Background(), ModeExplain, "q")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Equal(t, FailureMessage, UserMessage(err))

	assert.Equal(t, ErrEmptyInput.Error(), UserMessage(ErrEmptyInput))
	assert.Empty(t, UserMessage(nil))
}

func TestAssistant_SaveAsNote(t *testing.T) {
	a := NewAssistant(nil, nil, nil, nil)
	store := &fakeCreator{}

	query := "Explain the difference between BFS and DFS traversal"
	n, err := a.SaveAsNote(context.Background(), store, ModeExplain, query, "answer")
	require.NoError(t, err)
	assert.Equal(t, "n1", n.ID)
	assert.Equal(t, "Explain Generated: Explain the difference between...", store.title)
	assert.Equal(t, models.FolderAI, store.folder)
	assert.Equal(t, "explain", store.source)

	_, err = a.SaveAsNote(context.Background(), store, ModeExplain, query, "")
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode(" Research ")
	require.NoError(t, err)
	assert.Equal(t, ModeResearch, m)
	assert.Equal(t, "Research", m.Title())

	_, err = ParseMode("poetry")
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.True(t, strings.HasPrefix(SavedTitle(ModeSummarize, "x"), "Summarize Generated: x"))
}
