package plan

import (
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
)

// PlanTitle is the note title a saved plan is stored under.
func PlanTitle(req models.PlanRequest) string {
	return fmt.Sprintf("%d-Day %s DSA Study Plan", req.Days, req.Level)
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

// RenderMarkdown formats a structured plan as the markdown document saved into a note.
func RenderMarkdown(p *models.StructuredPlan) string {
	req := p.Request
	var b strings.Builder

	fmt.Fprintf(&b, "# %d-Day %s DSA Study Plan\n\n", req.Days, capitalizeFirst(req.Level))
	b.WriteString("## 📋 Plan Overview\n")
	fmt.Fprintf(&b, "- **Duration:** %d days\n", req.Days)
	fmt.Fprintf(&b, "- **Level:** %s\n", req.Level)
	fmt.Fprintf(&b, "- **Hours per day:** %d\n", req.HoursPerDay)
	fmt.Fprintf(&b, "- **Focus areas:** %s\n", orDefault(req.FocusAreas, "All topics"))
	fmt.Fprintf(&b, "- **Weak areas:** %s\n", orDefault(req.WeakAreas, "None specified"))
	fmt.Fprintf(&b, "- **Platform:** %s\n\n", req.Platform)

	b.WriteString("## 📅 Daily Schedule\n\n")
	totalProblems := 0
	for _, d := range p.Days {
		totalProblems += len(d.Problems)
		writeDay(&b, d)
	}

	b.WriteString("## 📈 Progress Tracking\n")
	weeks := (req.Days + 6) / 7
	for i := 1; i <= weeks; i++ {
		fmt.Fprintf(&b, "- [ ] Week %d completed\n", i)
	}
	b.WriteString("\n## 🎯 Weekly Milestones\n")
	b.WriteString("- Week 1: Master fundamentals and basic patterns\n")
	b.WriteString("- Week 2: Build confidence with medium problems\n")
	b.WriteString("- Week 3: Tackle advanced concepts\n")
	b.WriteString("- Week 4: Review, optimize and practice mock interviews\n\n")
	b.WriteString("## 📝 Notes & Reflections\n")
	b.WriteString("_Add your daily reflections, challenges faced, and key learnings here..._\n\n")
	b.WriteString("## 📊 Performance Metrics\n")
	fmt.Fprintf(&b, "- Problems solved: ___/%d\n", totalProblems)
	b.WriteString("- Average time per problem: ___\n")
	b.WriteString("- Topics mastered: ___\n")
	b.WriteString("- Areas needing improvement: ___\n")
	return b.String()
}

func writeDay(b *strings.Builder, d models.DayPlan) {
	fmt.Fprintf(b, "### Day %d", d.Day)
	if d.IsBreakDay {
		b.WriteString(" (Break Day)")
	}
	b.WriteString("\n\n")

	if d.IsBreakDay {
		b.WriteString("**🧘 Rest Day Activities:**\n")
		for _, g := range d.DailyGoals {
			fmt.Fprintf(b, "- %s\n", g)
		}
		b.WriteString("\n---\n\n")
		return
	}

	fmt.Fprintf(b, "**🎯 Topics:** %s\n\n", strings.Join(d.Topics, ", "))
	if len(d.Subtopics) > 0 {
		b.WriteString("**📚 Subtopics:**\n")
		for _, s := range d.Subtopics {
			fmt.Fprintf(b, "- %s\n", s)
		}
		b.WriteString("\n")
	}
	if len(d.DailyGoals) > 0 {
		b.WriteString("**🏆 Daily Goals:**\n")
		for _, g := range d.DailyGoals {
			fmt.Fprintf(b, "- %s\n", g)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(b, "**💻 Problems to solve (%d problems):**\n", len(d.Problems))
	for _, pr := range d.Problems {
		fmt.Fprintf(b, "- [%s](%s) (%s) - %s\n", pr.Title, pr.URL, pr.Difficulty, pr.EstimatedTime)
		if len(pr.Concepts) > 0 {
			fmt.Fprintf(b, "  - Concepts: %s\n", strings.Join(pr.Concepts, ", "))
		}
	}
	b.WriteString("\n")
	if len(d.Revision) > 0 {
		b.WriteString("**🔄 Revision Focus:**\n")
		for _, r := range d.Revision {
			fmt.Fprintf(b, "- %s\n", r)
		}
		b.WriteString("\n")
	}
	if len(d.Resources) > 0 {
		b.WriteString("**📖 Resources:**\n")
		for _, r := range d.Resources {
			fmt.Fprintf(b, "- [%s](%s) (%s)\n", r.Title, r.URL, r.Type)
		}
		b.WriteString("\n")
	}
	b.WriteString("---\n\n")
}
