package models

// PlanSummary aggregates a packed question selection.
type PlanSummary struct {
	TotalQuestions int            `json:"totalQuestions"`
	TotalMinutes   int            `json:"totalMinutes"`
	Difficulty     map[string]int `json:"difficulty"`
	Topics         map[string]int `json:"topics"`
}

// DynamicPlan is the week-wise packing of a question list.
type DynamicPlan struct {
	WeekWise [][]Question `json:"weekWise"`
	Summary  PlanSummary  `json:"summary"`
}

// PlanProblem is a problem entry inside a day plan.
type PlanProblem struct {
	Title         string   `json:"title"`
	Platform      string   `json:"platform"`
	Difficulty    string   `json:"difficulty"`
	URL           string   `json:"url"`
	Concepts      []string `json:"concepts"`
	EstimatedTime string   `json:"estimated_time"`
}

// PlanResource is a reading or video recommendation.
type PlanResource struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// DayPlan is one day of a structured study plan.
type DayPlan struct {
	Day        int            `json:"day"`
	Topics     []string       `json:"topics"`
	Subtopics  []string       `json:"subtopics"`
	Problems   []PlanProblem  `json:"problems"`
	Revision   []string       `json:"revision"`
	IsBreakDay bool           `json:"is_break_day"`
	DailyGoals []string       `json:"daily_goals"`
	Resources  []PlanResource `json:"resources"`
}

// PlanRequest holds the learner's preferences for a structured plan.
type PlanRequest struct {
	Days        int    `json:"days"`
	Level       string `json:"level"`
	HoursPerDay int    `json:"hours_per_day"`
	Platform    string `json:"platform"`
	FocusAreas  string `json:"focus_areas,omitempty"`
	WeakAreas   string `json:"weak_areas,omitempty"`
}

// StructuredPlan is the result of plan generation.
type StructuredPlan struct {
	Request  PlanRequest `json:"request"`
	Days     []DayPlan   `json:"days"`
	Fallback bool        `json:"fallback"`
}

// SavedPlan describes a study plan stored as a note.
type SavedPlan struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	Duration  string `json:"duration"`
	Level     string `json:"level"`
}
