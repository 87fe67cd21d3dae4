// Package search finds notes by substring scan or by ranked keyword index.
package search

import (
	"strings"

	"github.com/hyperjump/notegraph/internal/models"
	"github.com/hyperjump/notegraph/pkg/utils"
)

// MaxResults caps every search response.
const MaxResults = 8

const snippetLen = 100

// Search returns up to MaxResults notes whose title, content or any tag
// contains query, ignoring case. Input order is kept. A blank query
// matches nothing.
func Search(query string, notes []*models.Note) []*models.Note {
	return Linear(query, notes, MaxResults)
}

// Linear is Search with a caller-chosen cap no larger than MaxResults.
func Linear(query string, notes []*models.Note, limit int) []*models.Note {
	out := []*models.Note{}
	if strings.TrimSpace(query) == "" {
		return out
	}
	if limit <= 0 || limit > MaxResults {
		limit = MaxResults
	}
	for _, n := range notes {
		if len(out) == limit {
			break
		}
		if Matches(n, query) {
			out = append(out, n)
		}
	}
	return out
}

// Matches reports whether query occurs in the note's title, content or tags, ignoring case.
func Matches(n *models.Note, query string) bool {
	if utils.ContainsFold(n.Title, query) || utils.ContainsFold(n.Content, query) {
		return true
	}
	for _, tag := range n.Tags {
		if utils.ContainsFold(tag, query) {
			return true
		}
	}
	return false
}

var markupStripper = strings.NewReplacer("#", "", "*", "", "`", "")

// Snippet strips markdown markers from content and returns its first 100
// characters followed by "...".
func Snippet(content string) string {
	plain := []rune(markupStripper.Replace(content))
	if len(plain) > snippetLen {
		plain = plain[:snippetLen]
	}
	return string(plain) + "..."
}

// PreviewTags returns at most the first three tags.
func PreviewTags(tags []string) []string {
	if len(tags) > 3 {
		return tags[:3]
	}
	return tags
}
