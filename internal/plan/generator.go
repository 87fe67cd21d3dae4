package plan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
	"go.uber.org/zap"
)

// DefaultDays is the plan length used when a request leaves it unset.
const DefaultDays = 30

// MaxDays bounds a single structured plan.
const MaxDays = 365

// Completer sends one message to a chat model and returns its reply.
type Completer interface {
	Complete(ctx context.Context, message string) (string, error)
}

// WeekProblem is one problem in a chat-produced week plan.
type WeekProblem struct {
	Title         string `json:"title"`
	Difficulty    string `json:"difficulty"`
	Topic         string `json:"topic"`
	URL           string `json:"url"`
	EstimatedTime string `json:"estimated_time"`
}

// WeekPlan is one week of a chat-produced week plan.
type WeekPlan struct {
	Week     int           `json:"week"`
	Focus    string        `json:"focus"`
	Problems []WeekProblem `json:"problems"`
}

// Generator produces structured plans through a chat model with a local fallback.
type Generator struct {
	chat   Completer
	logger *zap.Logger
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithLogger sets the generator logger.
func WithLogger(l *zap.Logger) GeneratorOption {
	return func(g *Generator) { g.logger = l }
}

// NewGenerator returns a Generator. chat may be nil, in which case every
// request is served by SyntheticPlan.
func NewGenerator(chat Completer, opts ...GeneratorOption) *Generator {
	g := &Generator{chat: chat}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = utils.OrNop(g.logger)
	return g
}

// ValidateRequest fills defaults and checks required fields in place.
func ValidateRequest(req *models.PlanRequest) error {
	req.Level = strings.ToLower(strings.TrimSpace(req.Level))
	req.Platform = strings.TrimSpace(req.Platform)
	if req.Days == 0 {
		req.Days = DefaultDays
	}
	if req.Level == "" || req.HoursPerDay == 0 || req.Platform == "" {
		return fmt.Errorf("%w: level, hours per day and platform are required", ErrInvalidInput)
	}
	if !ValidLevel(req.Level) {
		return fmt.Errorf("%w: unknown level %q", ErrInvalidInput, req.Level)
	}
	if req.Days < 0 || req.Days > MaxDays {
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidInput, MaxDays)
	}
	if req.HoursPerDay < 0 || req.HoursPerDay > 24 {
		return fmt.Errorf("%w: hours per day must be between 1 and 24", ErrInvalidInput)
	}
	return nil
}

// Generate builds a day-by-day plan. An unusable chat reply is replaced by
// SyntheticPlan and marked as a fallback; a failed chat call is returned.
func (g *Generator) Generate(ctx context.Context, req models.PlanRequest) (*models.StructuredPlan, error) {
	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}
	if g.chat == nil {
		return g.fallback(req), nil
	}

	reply, err := g.chat.Complete(ctx, BuildDayPlanPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("failed to generate plan: %w", err)
	}
	days, err := ExtractDayPlan(reply)
	if err != nil || len(days) == 0 {
		g.logger.Debug("chat reply had no usable plan, using synthetic plan",
			zap.Int("days", req.Days), zap.String("level", req.Level), zap.Error(err))
		return g.fallback(req), nil
	}
	return &models.StructuredPlan{Request: req, Days: days}, nil
}

func (g *Generator) fallback(req models.PlanRequest) *models.StructuredPlan {
	return &models.StructuredPlan{
		Request:  req,
		Days:     SyntheticPlan(req.Days, req.Level, req.HoursPerDay, req.Platform),
		Fallback: true,
	}
}

var jsonObjectRE = regexp.MustCompile(`\{[\s\S]*\}`)

// ErrNoChat is returned when an operation needs a chat model and none is configured.
var ErrNoChat = errors.New("chat model not configured")

// GenerateWeekPlan asks the chat model for a week-by-week problem list.
// There is no local fallback for this shape.
func (g *Generator) GenerateWeekPlan(ctx context.Context, weeks, hoursPerWeek int, difficulties []string) ([]WeekPlan, error) {
	if weeks <= 0 || hoursPerWeek <= 0 {
		return nil, fmt.Errorf("%w: weeks and hours per week must be positive", ErrInvalidInput)
	}
	if g.chat == nil {
		return nil, ErrNoChat
	}
	reply, err := g.chat.Complete(ctx, BuildWeekPlanPrompt(weeks, hoursPerWeek, difficulties))
	if err != nil {
		return nil, fmt.Errorf("failed to generate week plan: %w", err)
	}
	raw := jsonObjectRE.FindString(reply)
	if raw == "" {
		return nil, ErrNoPlan
	}
	var out struct {
		Weeks []WeekPlan `json:"weeks"`
	}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPlan, err)
	}
	return out.Weeks, nil
}
