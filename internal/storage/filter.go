package storage

import (
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
)

// questionWhere builds the WHERE clause for a question filter. placeholder
// returns the driver's bind marker for the n-th (1-based) argument.
func questionWhere(f models.QuestionFilter, placeholder func(n int) string) (string, []any) {
	var clauses []string
	var args []any
	next := func(v any) string {
		args = append(args, v)
		return placeholder(len(args))
	}

	if f.Week > 0 {
		clauses = append(clauses, "week = "+next(f.Week))
	}
	if len(f.Difficulties) > 0 {
		marks := make([]string, 0, len(f.Difficulties))
		for _, d := range f.Difficulties {
			marks = append(marks, next(strings.ToLower(strings.TrimSpace(d))))
		}
		clauses = append(clauses, "LOWER(difficulty) IN ("+strings.Join(marks, ", ")+")")
	}
	if len(f.Topics) > 0 {
		marks := make([]string, 0, len(f.Topics))
		for _, t := range f.Topics {
			marks = append(marks, next(strings.TrimSpace(t)))
		}
		clauses = append(clauses, "topic IN ("+strings.Join(marks, ", ")+")")
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// matchQuestion applies the same filter semantics in memory.
func matchQuestion(f models.QuestionFilter, q models.Question) bool {
	if f.Week > 0 && q.Week != f.Week {
		return false
	}
	if len(f.Difficulties) > 0 {
		ok := false
		for _, d := range f.Difficulties {
			if strings.EqualFold(strings.TrimSpace(d), q.Difficulty) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if len(f.Topics) > 0 {
		ok := false
		for _, t := range f.Topics {
			if strings.TrimSpace(t) == q.Topic {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}
