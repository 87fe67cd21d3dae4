// Package keyword provides ranked full-text search over notes.
package keyword

import (
	"context"

	"github.com/hyperjump/notegraph/internal/models"
)

// SearchOptions optional parameters for keyword search. Nil means use defaults.
type SearchOptions struct {
	// TitleBoost multiplies the score contribution from matches in the title field.
	TitleBoost float64
	// TagBoost multiplies the score contribution from matches in tags.
	TagBoost float64
	// Fuzziness is the maximum edit distance for typo tolerance (0 disables, max 2).
	Fuzziness int
}

// NoteIndex defines keyword search operations over notes.
type NoteIndex interface {
	Index(ctx context.Context, note *models.Note) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, userID, query string, limit int, opts *SearchOptions) ([]*Result, error)
	// DocCount returns the total number of notes in the index.
	DocCount() (uint64, error)
	Close() error
}

// Result is a single keyword search hit.
type Result struct {
	ID    string
	Score float64
}
