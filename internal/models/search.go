package models

import (
	"fmt"
	"strings"
)

// Search modes.
const (
	SearchModeLinear = "linear"
	SearchModeRanked = "ranked"
)

// SearchQuery represents a note search request.
type SearchQuery struct {
	Query string `json:"query"`
	Mode  string `json:"mode,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Validate normalizes the mode and caps the limit at maxLimit.
// Blank queries are allowed and yield no results.
func (q *SearchQuery) Validate(maxLimit int) error {
	switch q.Mode {
	case "":
		q.Mode = SearchModeLinear
	case SearchModeLinear, SearchModeRanked:
	default:
		return fmt.Errorf("%w: unknown search mode %q", ErrInvalid, q.Mode)
	}
	if q.Limit <= 0 || q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return nil
}

// Blank reports whether the query has no searchable text.
func (q *SearchQuery) Blank() bool {
	return strings.TrimSpace(q.Query) == ""
}

// SearchResult is a single note hit.
type SearchResult struct {
	Note    *Note    `json:"note"`
	Snippet string   `json:"snippet"`
	Tags    []string `json:"tags,omitempty"`
	Score   float64  `json:"score,omitempty"`
}

// SearchResponse is the response for a search request.
type SearchResponse struct {
	Query   string          `json:"query"`
	Mode    string          `json:"mode"`
	Results []*SearchResult `json:"results"`
	Total   int             `json:"total"`
}
