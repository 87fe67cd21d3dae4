package plan

import (
	"fmt"
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
)

// Learner levels.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

var levelTopics = map[string][]string{
	LevelBeginner: {
		"Arrays & Strings", "Linked Lists", "Stacks & Queues", "Trees & BST",
		"Graphs", "Dynamic Programming", "Sorting & Searching",
	},
	LevelIntermediate: {
		"Advanced Arrays", "Tree Algorithms", "Graph Algorithms", "Dynamic Programming",
		"Greedy Algorithms", "Backtracking", "String Algorithms",
	},
	LevelAdvanced: {
		"Advanced DP", "Complex Graph Algorithms", "String Algorithms",
		"Math & Number Theory", "System Design", "Advanced Data Structures",
	},
}

var levelDifficulties = map[string][]string{
	LevelBeginner:     {models.DifficultyEasy, models.DifficultyEasy, models.DifficultyMedium},
	LevelIntermediate: {models.DifficultyEasy, models.DifficultyMedium, models.DifficultyMedium, models.DifficultyHard},
	LevelAdvanced:     {models.DifficultyMedium, models.DifficultyMedium, models.DifficultyHard, models.DifficultyHard},
}

// ValidLevel reports whether level is one of the known learner levels.
func ValidLevel(level string) bool {
	_, ok := levelTopics[strings.ToLower(level)]
	return ok
}

// TopicsFor returns the topic progression for level. Unknown levels get the advanced track.
func TopicsFor(level string) []string {
	if t, ok := levelTopics[strings.ToLower(level)]; ok {
		return t
	}
	return levelTopics[LevelAdvanced]
}

func difficultiesFor(level string) []string {
	if d, ok := levelDifficulties[strings.ToLower(level)]; ok {
		return d
	}
	return levelDifficulties[LevelAdvanced]
}

// SyntheticPlan builds a deterministic day plan from templates. Every
// seventh day is a break; days divisible by 4 or 5 that are not breaks
// carry a revision item. Topics advance in equal blocks of days and the
// problem count grows from 5 to at most 15.
func SyntheticPlan(days int, level string, hoursPerDay int, platform string) []models.DayPlan {
	if days <= 0 {
		return []models.DayPlan{}
	}
	topics := TopicsFor(level)
	difficulties := difficultiesFor(level)
	block := (days + len(topics) - 1) / len(topics)

	conceptHours := hoursPerDay * 3 / 10
	problemHours := hoursPerDay * 6 / 10
	revisionHours := hoursPerDay / 10
	platformURL := "https://" + strings.ToLower(strings.Join(strings.Fields(platform), "")) + ".com"

	plan := make([]models.DayPlan, 0, days)
	for day := 1; day <= days; day++ {
		isBreak := day%7 == 0
		isRevision := (day%5 == 0 || day%4 == 0) && !isBreak
		topicIndex := min((day-1)/block, len(topics)-1)
		topic := topics[topicIndex]

		d := models.DayPlan{
			Day:        day,
			Topics:     []string{},
			Subtopics:  []string{},
			Problems:   []models.PlanProblem{},
			Revision:   []string{},
			IsBreakDay: isBreak,
			DailyGoals: []string{},
			Resources:  []models.PlanResource{},
		}

		if isRevision {
			prev := topics[max(0, topicIndex-1)]
			d.Revision = append(d.Revision, fmt.Sprintf("Review %s concepts and common mistakes", prev))
		}

		if isBreak {
			d.DailyGoals = []string{"Rest and mental recovery", "Light review of previous concepts"}
			plan = append(plan, d)
			continue
		}

		problemCount := min(5+day/5, 15)
		d.Topics = []string{topic}
		d.Subtopics = []string{
			topic + " fundamentals and core concepts",
			"Common patterns and techniques in " + topic,
			"Time and space complexity analysis",
		}
		for i := 0; i < problemCount; i++ {
			d.Problems = append(d.Problems, models.PlanProblem{
				Title:         fmt.Sprintf("%s Practice Problem %d", topic, i+1),
				Platform:      platform,
				Difficulty:    difficulties[i%len(difficulties)],
				URL:           platformURL,
				Concepts:      []string{topic, "Problem Solving"},
				EstimatedTime: fmt.Sprintf("%d-%d minutes", 15+i*5, 25+i*5),
			})
		}
		d.DailyGoals = []string{
			fmt.Sprintf("Master %s core concepts (%dh)", topic, conceptHours),
			fmt.Sprintf("Solve %d problems efficiently (%dh)", problemCount, problemHours),
			fmt.Sprintf("Review and reinforce learning (%dh)", revisionHours),
		}
		d.Resources = []models.PlanResource{
			{Type: "article", Title: topic + " Complete Guide", URL: "https://www.geeksforgeeks.org"},
			{Type: "video", Title: topic + " Video Tutorial", URL: "https://www.youtube.com"},
		}
		plan = append(plan, d)
	}
	return plan
}
