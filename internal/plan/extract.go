package plan

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/hyperjump/notegraph/internal/models"
)

// ErrNoPlan is returned when chat output carries no parsable day array.
var ErrNoPlan = errors.New("no day plan found in response")

var jsonArrayRE = regexp.MustCompile(`\[[\s\S]*\]`)

// ExtractDayPlan pulls the outermost JSON array out of free text and
// decodes it as a list of days.
func ExtractDayPlan(text string) ([]models.DayPlan, error) {
	raw := jsonArrayRE.FindString(text)
	if raw == "" {
		return nil, ErrNoPlan
	}
	var days []models.DayPlan
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPlan, err)
	}
	for i := range days {
		normalizeDay(&days[i])
	}
	return days, nil
}

func normalizeDay(d *models.DayPlan) {
	if d.Topics == nil {
		d.Topics = []string{}
	}
	if d.Subtopics == nil {
		d.Subtopics = []string{}
	}
	if d.Problems == nil {
		d.Problems = []models.PlanProblem{}
	}
	if d.Revision == nil {
		d.Revision = []string{}
	}
	if d.DailyGoals == nil {
		d.DailyGoals = []string{}
	}
	if d.Resources == nil {
		d.Resources = []models.PlanResource{}
	}
}
