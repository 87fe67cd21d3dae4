package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
	"go.uber.org/zap"
)

// Mode selects which service answers an assistant query.
type Mode string

// Assistant modes. Each value is also recorded as the source of saved notes.
const (
	ModeExplain   Mode = "explain"
	ModeResearch  Mode = "research"
	ModeSummarize Mode = "summarize"
)

// SummarizePrefix is prepended to queries in summarize mode.
const SummarizePrefix = "Summarize: "

const savedTitleQueryLen = 30

// ErrUnknownMode is returned for an unsupported assistant mode.
var ErrUnknownMode = errors.New("unknown assistant mode")

// ParseMode validates s as an assistant mode.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeExplain, ModeResearch, ModeSummarize:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Title returns the mode name with its first letter upper-cased.
func (m Mode) Title() string {
	if m == "" {
		return ""
	}
	return strings.ToUpper(string(m[:1])) + string(m[1:])
}

// Researcher returns research results as markdown.
type Researcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// TextGenerator completes a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (*Generation, error)
}

// NoteCreator stores generated text as a note.
type NoteCreator interface {
	CreateAI(ctx context.Context, title, content, folder, sourceAPI string) (*models.Note, error)
}

// Assistant routes a query to one of the AI services by mode.
type Assistant struct {
	chat     Chat
	research Researcher
	generate TextGenerator
	logger   *zap.Logger
}

// NewAssistant returns an Assistant. Any service may be nil; queries for
// that mode then fail with ErrNotConfigured.
func NewAssistant(chat Chat, research Researcher, generate TextGenerator, logger *zap.Logger) *Assistant {
	return &Assistant{
		chat:     chat,
		research: research,
		generate: generate,
		logger:   utils.OrNop(logger),
	}
}

// Ask answers query using the service for mode.
func (a *Assistant) Ask(ctx context.Context, mode Mode, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrEmptyInput
	}
	var (
		out string
		err error
	)
	switch mode {
	case ModeExplain:
		if a.chat == nil {
			return "", fmt.Errorf("%w: chat", ErrNotConfigured)
		}
		out, err = a.chat.Complete(ctx, query)
	case ModeResearch:
		if a.research == nil {
			return "", fmt.Errorf("%w: search", ErrNotConfigured)
		}
		out, err = a.research.Search(ctx, query)
	case ModeSummarize:
		if a.generate == nil {
			return "", fmt.Errorf("%w: generate", ErrNotConfigured)
		}
		var g *Generation
		g, err = a.generate.Generate(ctx, SummarizePrefix+query)
		if g != nil {
			out = g.Text
		}
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	if err != nil {
		a.logger.Debug("assistant query failed", zap.String("mode", string(mode)), zap.Error(err))
		return "", err
	}
	return out, nil
}

// SavedTitle is the note title used when an answer is saved.
func SavedTitle(mode Mode, query string) string {
	return fmt.Sprintf("%s Generated: %s...", mode.Title(), truncateRunes(query, savedTitleQueryLen))
}

// SaveAsNote stores content as an AI note in the AI Generated folder.
func (a *Assistant) SaveAsNote(ctx context.Context, store NoteCreator, mode Mode, query, content string) (*models.Note, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyInput
	}
	n, err := store.CreateAI(ctx, SavedTitle(mode, query), content, models.FolderAI, string(mode))
	if err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}
	return n, nil
}

// UserMessage maps err to the text shown to the user.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrUnknownMode):
		return err.Error()
	default:
		return FailureMessage
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
