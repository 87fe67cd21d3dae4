// Package plan builds study plans: a time-budgeted packing of the question
// bank, and day-by-day plans parsed from chat output or synthesised locally.
package plan

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// ErrInvalidInput is returned for missing or out-of-range plan parameters.
var ErrInvalidInput = errors.New("invalid plan input")

// Bounds on Pack input. MaxMinutes caps a single parsed duration so that
// oversized estimates stay over any budget instead of wrapping.
const (
	MaxWeeks        = 520
	MaxHoursPerWeek = 168
	MaxMinutes      = 1 << 30
)

// ParseMinutes reads the leading integer of a free-text duration such as
// "15 mins". Leading whitespace and one sign are allowed. Text with no
// leading digits yields 0. The magnitude saturates at MaxMinutes.
func ParseMinutes(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	for i := 0; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		n = n*10 + int(s[i]-'0')
		if n >= MaxMinutes {
			n = MaxMinutes
			break
		}
	}
	if neg {
		return -n
	}
	return n
}

// Pack selects questions in order while the running total of estimated
// minutes stays within weeks*hoursPerWeek*60. Scanning stops at the first
// question that would overflow the budget, so the selection is always a
// prefix of questions. The selection is then cut into weeks contiguous
// buckets of ceil(n/weeks) questions; trailing buckets may be short or empty.
func Pack(questions []models.Question, weeks, hoursPerWeek int) (*models.DynamicPlan, error) {
	if weeks <= 0 || weeks > MaxWeeks {
		return nil, fmt.Errorf("%w: weeks must be between 1 and %d, got %d", ErrInvalidInput, MaxWeeks, weeks)
	}
	if hoursPerWeek < 0 || hoursPerWeek > MaxHoursPerWeek {
		return nil, fmt.Errorf("%w: hours per week must be between 0 and %d, got %d", ErrInvalidInput, MaxHoursPerWeek, hoursPerWeek)
	}

	budget := weeks * hoursPerWeek * 60
	selected := []models.Question{}
	sum := 0
	for _, q := range questions {
		mins := ParseMinutes(q.EstimatedTime)
		if sum+mins > budget {
			break
		}
		selected = append(selected, q)
		sum += mins
	}

	perWeek := (len(selected) + weeks - 1) / weeks
	weekWise := make([][]models.Question, weeks)
	for i := range weekWise {
		start := min(i*perWeek, len(selected))
		end := min((i+1)*perWeek, len(selected))
		weekWise[i] = selected[start:end:end]
	}

	summary := models.PlanSummary{
		TotalQuestions: len(selected),
		TotalMinutes:   sum,
		Difficulty:     map[string]int{},
		Topics:         map[string]int{},
	}
	for _, q := range selected {
		summary.Difficulty[utils.TitleCase(q.Difficulty)]++
		summary.Topics[strings.TrimSpace(q.Topic)]++
	}

	return &models.DynamicPlan{WeekWise: weekWise, Summary: summary}, nil
}
