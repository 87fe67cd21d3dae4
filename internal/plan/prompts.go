package plan

import (
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
)

const (
	defaultFocusAreas = "all topics"
	defaultWeakAreas  = "none specified"
)

// BuildDayPlanPrompt renders the chat prompt asking for a day-by-day plan as a JSON array.
func BuildDayPlanPrompt(req models.PlanRequest) string {
	focus := strings.TrimSpace(req.FocusAreas)
	if focus == "" {
		focus = defaultFocusAreas
	}
	weak := strings.TrimSpace(req.WeakAreas)
	if weak == "" {
		weak = defaultWeakAreas
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Act as an expert DSA tutor. Create a comprehensive %d-day study plan for %s learners with:\n\n", req.Days, req.Level)
	b.WriteString("Constraints:\n")
	fmt.Fprintf(&b, "- Daily study time: %d hours\n", req.HoursPerDay)
	fmt.Fprintf(&b, "- Focus areas: %s\n", focus)
	fmt.Fprintf(&b, "- Weak areas to emphasize: %s\n", weak)
	fmt.Fprintf(&b, "- Preferred platform: %s\n", req.Platform)
	b.WriteString("- Include break days every 7th day for rest and light review\n")
	b.WriteString("- Include revision days every 4-5 days to reinforce learning\n\n")
	b.WriteString("Plan Requirements:\n")
	b.WriteString("1. Progressive difficulty from easy to hard problems\n")
	b.WriteString("2. Cover all major DSA topics systematically\n")
	b.WriteString("3. Include specific problem recommendations with real links\n")
	b.WriteString("4. Add concept explanations and learning resources\n")
	b.WriteString("5. Set measurable daily goals\n")
	b.WriteString("6. Balance theory, practice, and revision\n\n")
	b.WriteString("Return the plan as a JSON array where each element has this exact format:\n")
	b.WriteString(`{
  "day": 1,
  "topics": ["Main topic"],
  "subtopics": ["Subtopic 1", "Subtopic 2"],
  "problems": [
    {
      "title": "Problem name",
      "platform": "Platform",
      "difficulty": "Easy|Medium|Hard",
      "url": "https://...",
      "concepts": ["Concept 1"],
      "estimated_time": "20-30 minutes"
    }
  ],
  "revision": ["What to review"],
  "is_break_day": false,
  "daily_goals": ["Goal 1", "Goal 2"],
  "resources": [
    {"type": "article|video", "title": "Resource title", "url": "https://..."}
  ]
}`)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Make it comprehensive, detailed, and practical for a %s level student with clear progression and measurable goals.", req.Level)
	return b.String()
}

// BuildWeekPlanPrompt renders the chat prompt asking for a week-by-week problem plan.
func BuildWeekPlanPrompt(weeks, hoursPerWeek int, difficulties []string) string {
	diff := "Easy, Medium, Hard"
	if len(difficulties) > 0 {
		diff = strings.Join(difficulties, ", ")
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %d-week DSA study plan with:\n", weeks)
	fmt.Fprintf(&b, "- %d hours/week\n", hoursPerWeek)
	fmt.Fprintf(&b, "- Difficulty: %s\n", diff)
	b.WriteString("- Follow Grind 75's progression (Easy → Medium → Hard)\n\n")
	b.WriteString("Return JSON only, in this format:\n")
	b.WriteString(`{
  "weeks": [
    {
      "week": 1,
      "focus": "Topic focus",
      "problems": [
        {"title": "Problem name", "difficulty": "Easy", "topic": "Arrays", "url": "https://...", "estimated_time": "15 mins"}
      ]
    }
  ]
}`)
	return b.String()
}
