package models

import "time"

// Difficulty levels as stored in the question bank.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question is a practice problem record.
type Question struct {
	ID            int    `json:"id" yaml:"id" db:"id"`
	Week          int    `json:"week" yaml:"week" db:"week"`
	Number        int    `json:"number" yaml:"number" db:"number"`
	Title         string `json:"title" yaml:"title" db:"title"`
	Difficulty    string `json:"difficulty" yaml:"difficulty" db:"difficulty"`
	Topic         string `json:"topic" yaml:"topic" db:"topic"`
	URL           string `json:"url" yaml:"url" db:"url"`
	EstimatedTime string `json:"estimated_time" yaml:"estimated_time" db:"estimated_time"`
}

// QuestionFilter narrows a question listing. Zero values mean no filter.
type QuestionFilter struct {
	Week         int      `json:"week,omitempty"`
	Difficulties []string `json:"difficulty,omitempty"`
	Topics       []string `json:"topic,omitempty"`
}

// Progress tracks completion of one question by one user.
type Progress struct {
	UserID      string     `json:"user_id" db:"user_id"`
	QuestionID  int        `json:"question_id" db:"question_id"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completed_at" db:"completed_at"`
}
