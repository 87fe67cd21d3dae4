// Package questions loads the practice question bank from YAML seed files
// into storage and keeps it in sync with those files.
package questions

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/hyperjump/notegraph/internal/models"
)

//go:embed grind169.yaml
var defaultSeed []byte

// Default returns the built-in question bank.
func Default() ([]models.Question, error) {
	return Parse(defaultSeed)
}

// Parse decodes a YAML list of questions, validates it and sorts it by
// week then number.
func Parse(data []byte) ([]models.Question, error) {
	var qs []models.Question
	if err := yaml.Unmarshal(data, &qs); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	if err := validate(qs); err != nil {
		return nil, err
	}
	sortQuestions(qs)
	return qs, nil
}

// LoadFiles reads and merges every file in paths. A question id may appear only once.
func LoadFiles(paths []string) ([]models.Question, error) {
	var all []models.Question
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read questions: %w", err)
		}
		qs, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", p, err)
		}
		all = append(all, qs...)
	}
	if err := validate(all); err != nil {
		return nil, err
	}
	sortQuestions(all)
	return all, nil
}

func validate(qs []models.Question) error {
	seen := make(map[int]bool, len(qs))
	for i, q := range qs {
		if q.ID <= 0 {
			return fmt.Errorf("question %d: id must be positive", i)
		}
		if seen[q.ID] {
			return fmt.Errorf("question %d: duplicate id", q.ID)
		}
		seen[q.ID] = true
		if strings.TrimSpace(q.Title) == "" {
			return fmt.Errorf("question %d: title is required", q.ID)
		}
	}
	return nil
}

func sortQuestions(qs []models.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		if qs[i].Week != qs[j].Week {
			return qs[i].Week < qs[j].Week
		}
		return qs[i].Number < qs[j].Number
	})
}
